package classify

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/untoldecay/fossiluse/internal/types"
)

// Group is one label and the entity names that map to it
type Group struct {
	Label   string   `yaml:"label" toml:"label" json:"label"`
	Members []string `yaml:"members" toml:"members" json:"members"`
}

// Tables is a snapshot of every membership list, in evaluation order.
type Tables struct {
	Organizations []Group `yaml:"organizations" toml:"organizations" json:"organizations"`
	Regions       []Group `yaml:"regions" toml:"regions" json:"regions"`
	EuroBlocs     []Group `yaml:"euru" toml:"euru" json:"euru"`
}

// Snapshot copies the membership lists so callers can't mutate them.
func Snapshot() Tables {
	var t Tables
	for _, r := range orgRules {
		t.Organizations = append(t.Organizations, Group{Label: string(r.label), Members: clone(r.members)})
	}
	for _, r := range regionRules {
		t.Regions = append(t.Regions, Group{Label: string(r.label), Members: clone(r.members)})
	}
	t.EuroBlocs = []Group{
		{Label: string(types.BlocEU), Members: clone(euMembers)},
		{Label: string(types.BlocRussia), Members: []string{"Russia"}},
		{Label: string(types.BlocUkraine), Members: []string{"Ukraine"}},
	}
	return t
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Format selects the encoding used by WriteTables
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// WriteTables encodes the reference tables to w.
func WriteTables(w io.Writer, format Format) error {
	t := Snapshot()
	switch format {
	case FormatYAML, "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(t); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown table format %q (want yaml or toml)", format)
	}
}

// KnownNames returns every name that appears in at least one membership
// list, sorted and without duplicates.
func KnownNames() []string {
	seen := make(map[string]bool)
	add := func(names []string) {
		for _, n := range names {
			seen[n] = true
		}
	}
	for _, r := range orgRules {
		add(r.members)
	}
	for _, r := range regionRules {
		add(r.members)
	}
	add(euMembers)
	add([]string{"Russia", "Ukraine"})

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
