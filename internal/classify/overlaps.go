package classify

import "github.com/untoldecay/fossiluse/internal/types"

// Overlap describes a name listed under more than one region. Only the
// first region in priority order is ever returned by Region; the rest are
// shadowed.
type Overlap struct {
	Name     string         `json:"name"`
	Winner   types.Region   `json:"winner"`
	Shadowed []types.Region `json:"shadowed"`
}

// Overlaps reports every region-list name that appears in more than one
// list, in the order the names are first seen.
func Overlaps() []Overlap {
	index := make(map[string]int)
	var out []Overlap
	for _, rule := range regionRules {
		for _, name := range rule.members {
			if i, ok := index[name]; ok {
				out[i].Shadowed = append(out[i].Shadowed, rule.label)
				continue
			}
			index[name] = len(out)
			out = append(out, Overlap{Name: name, Winner: rule.label})
		}
	}

	shadowed := out[:0]
	for _, o := range out {
		if len(o.Shadowed) > 0 {
			shadowed = append(shadowed, o)
		}
	}
	return shadowed
}
