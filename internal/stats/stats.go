// Package stats aggregates classified records into the figures the charts
// and the describe command need.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/untoldecay/fossiluse/internal/types"
)

// Key extracts a grouping label from a record
type Key func(r *types.Record) string

// Value extracts a numeric value from a record
type Value func(r *types.Record) float64

// ByLabel groups by one of the label columns (Organizations, Region, EURU)
// or by Entity.
func ByLabel(column string) Key {
	return func(r *types.Record) string {
		v, _ := r.Label(column)
		return v
	}
}

// Column reads one of the numeric columns
func Column(column string) Value {
	return func(r *types.Record) float64 {
		v, _ := r.Value(column)
		return v
	}
}

// TotalConsumption and TotalProduction sum gas, oil and coal.
var (
	TotalConsumption Value = func(r *types.Record) float64 { return r.TotalConsumption() }
	TotalProduction  Value = func(r *types.Record) float64 { return r.TotalProduction() }
)

// Group is one aggregated bucket
type Group struct {
	Label string
	Value float64
}

// MeanBy averages value per key. Groups come back sorted by label.
func MeanBy(records []types.Record, key Key, value Value) []Group {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range records {
		k := key(&records[i])
		sums[k] += value(&records[i])
		counts[k]++
	}

	out := make([]Group, 0, len(sums))
	for k, s := range sums {
		out = append(out, Group{Label: k, Value: s / float64(counts[k])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// SumBy totals value per key, restricted to the keys in keep and returned
// in keep order. Keys with no records sum to zero.
func SumBy(records []types.Record, key Key, value Value, keep []string) []Group {
	sums := make(map[string]float64, len(keep))
	for _, k := range keep {
		sums[k] = 0
	}
	for i := range records {
		k := key(&records[i])
		if _, ok := sums[k]; ok {
			sums[k] += value(&records[i])
		}
	}

	out := make([]Group, len(keep))
	for i, k := range keep {
		out[i] = Group{Label: k, Value: sums[k]}
	}
	return out
}

// Point is one (year, value) observation
type Point struct {
	Year  int
	Value float64
}

// Series is the yearly history of one entity
type Series struct {
	Entity string
	Points []Point
}

// EntitySeries builds one year-sorted series per entity, in the order the
// entities are given. Several rows for the same (entity, year) are averaged.
// Entities with no rows yield an empty series.
func EntitySeries(records []types.Record, entities []string, value Value) []Series {
	type cell struct {
		sum float64
		n   int
	}
	byEntity := make(map[string]map[int]*cell, len(entities))
	for _, e := range entities {
		byEntity[e] = make(map[int]*cell)
	}
	for i := range records {
		years, ok := byEntity[records[i].Entity]
		if !ok {
			continue
		}
		c := years[records[i].Year]
		if c == nil {
			c = &cell{}
			years[records[i].Year] = c
		}
		c.sum += value(&records[i])
		c.n++
	}

	out := make([]Series, len(entities))
	for i, e := range entities {
		s := Series{Entity: e}
		for year, c := range byEntity[e] {
			s.Points = append(s.Points, Point{Year: year, Value: c.sum / float64(c.n)})
		}
		sort.Slice(s.Points, func(a, b int) bool { return s.Points[a].Year < s.Points[b].Year })
		out[i] = s
	}
	return out
}

// Grid holds a mean per (group, year)
type Grid struct {
	Groups []string
	Years  []int
	// Values[y][g] is the mean for Years[y] and Groups[g]; NaN when empty.
	Values [][]float64
}

// MeanByGroupAndYear averages value per (key, year) for the given years.
// Groups are sorted by label; only groups with at least one row in the
// selected years appear.
func MeanByGroupAndYear(records []types.Record, key Key, value Value, years []int) Grid {
	yearIdx := make(map[int]int, len(years))
	for i, y := range years {
		yearIdx[y] = i
	}

	type acc struct{ sum, n []float64 }
	accs := make(map[string]*acc)
	for i := range records {
		yi, ok := yearIdx[records[i].Year]
		if !ok {
			continue
		}
		k := key(&records[i])
		a := accs[k]
		if a == nil {
			a = &acc{sum: make([]float64, len(years)), n: make([]float64, len(years))}
			accs[k] = a
		}
		a.sum[yi] += value(&records[i])
		a.n[yi]++
	}

	g := Grid{Years: append([]int(nil), years...)}
	for k := range accs {
		g.Groups = append(g.Groups, k)
	}
	sort.Strings(g.Groups)

	g.Values = make([][]float64, len(years))
	for yi := range years {
		g.Values[yi] = make([]float64, len(g.Groups))
		for gi, k := range g.Groups {
			a := accs[k]
			if a.n[yi] == 0 {
				g.Values[yi][gi] = math.NaN()
				continue
			}
			g.Values[yi][gi] = a.sum[yi] / a.n[yi]
		}
	}
	return g
}

// Summary is the describe row of one numeric column
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// DescribeColumns are summarised by Describe, in output order
var DescribeColumns = append([]string{types.ColYear}, types.FuelColumns...)

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max for Year and each fuel column. Quartiles interpolate linearly
// between ranks, see Quantile.
func Describe(records []types.Record) []Summary {
	out := make([]Summary, 0, len(DescribeColumns))
	x := make([]float64, len(records))
	for _, col := range DescribeColumns {
		get := Column(col)
		for i := range records {
			x[i] = get(&records[i])
		}
		out = append(out, summarize(col, x))
	}
	return out
}

func summarize(col string, x []float64) Summary {
	s := Summary{Column: col, Count: len(x)}
	if len(x) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = Quantile(0.25, sorted)
	s.Q50 = Quantile(0.50, sorted)
	s.Q75 = Quantile(0.75, sorted)
	return s
}

// Quantile returns the p-quantile of sorted (ascending), interpolating
// linearly between the two nearest ranks at h = (n-1)p. stat.Quantile only
// offers the empirical step function, which disagrees with describe tables
// on small samples ([1 2 3 4] gives a first quartile of 1 instead of 1.75).
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Log1pSums returns log(1+sum) of each column over the records matching keep.
func Log1pSums(records []types.Record, keep func(r *types.Record) bool, columns []string) []float64 {
	out := make([]float64, len(columns))
	for ci, col := range columns {
		get := Column(col)
		var sum float64
		for i := range records {
			if keep(&records[i]) {
				sum += get(&records[i])
			}
		}
		out[ci] = math.Log1p(sum)
	}
	return out
}
