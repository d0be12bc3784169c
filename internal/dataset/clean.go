package dataset

import (
	"slices"

	"github.com/untoldecay/fossiluse/internal/types"
)

// Default year window: [DefaultYearMin, DefaultYearMax).
const (
	DefaultYearMin = 1980
	DefaultYearMax = 2022
)

// DefaultExcluded lists aggregate and non-sovereign entities that are
// dropped from the dataset.
var DefaultExcluded = []string{
	"Antarctica", "Cook Islands", "Czechoslovakia", "Faeroe Islands",
	"Former Serbia and Montenegro", "Former U.S.S.R.", "Former Yugoslavia",
	"French Polynesia", "Hawaiian Trade Zone", "Macao", "Montserrat",
	"Northern Mariana Islands", "Reunion", "Saint Helena", "U.S. Territories",
	"West Germany", "World",
}

// Filter decides which records survive the clean stage.
type Filter struct {
	YearMin int // inclusive
	YearMax int // exclusive
	Exclude []string
}

// DefaultFilter returns the standard [1980, 2022) window with the default
// exclusion list.
func DefaultFilter() Filter {
	return Filter{
		YearMin: DefaultYearMin,
		YearMax: DefaultYearMax,
		Exclude: append([]string(nil), DefaultExcluded...),
	}
}

// DropReason explains why Filter rejected a record
type DropReason int

const (
	Kept DropReason = iota
	DroppedEntity
	DroppedYear
)

// Check classifies a record against the filter. Entity exclusion is
// checked before the year window.
func (f Filter) Check(r *types.Record) DropReason {
	return f.check(r, slices.Contains(f.Exclude, r.Entity))
}

func (f Filter) check(r *types.Record, excluded bool) DropReason {
	if excluded {
		return DroppedEntity
	}
	if r.Year < f.YearMin || r.Year >= f.YearMax {
		return DroppedYear
	}
	return Kept
}

// CleanStats counts what the clean stage did
type CleanStats struct {
	Read           int `json:"read"`
	Kept           int `json:"kept"`
	DroppedEntity  int `json:"dropped_entity"`
	DroppedOutside int `json:"dropped_year"`
}

// Clean returns a new dataset holding only the records that pass f.
// Missing values have already been filled by Load.
func Clean(ds *types.Dataset, f Filter) (*types.Dataset, CleanStats) {
	out := &types.Dataset{Columns: ds.Columns}
	stats := CleanStats{Read: len(ds.Records)}
	excluded := make(map[string]bool, len(f.Exclude))
	for _, name := range f.Exclude {
		excluded[name] = true
	}
	for i := range ds.Records {
		r := &ds.Records[i]
		switch f.check(r, excluded[r.Entity]) {
		case DroppedEntity:
			stats.DroppedEntity++
		case DroppedYear:
			stats.DroppedOutside++
		default:
			out.Records = append(out.Records, ds.Records[i])
		}
	}
	stats.Kept = len(out.Records)
	return out, stats
}
