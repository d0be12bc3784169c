package classify

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/untoldecay/fossiluse/internal/types"
)

func TestOrganization(t *testing.T) {
	for _, name := range opecMembers {
		if got := Organization(name); got != types.OrgOPEC {
			t.Errorf("Organization(%q) = %q, want OPEC", name, got)
		}
	}
	for _, name := range bricsMembers {
		if got := Organization(name); got != types.OrgBRICS {
			t.Errorf("Organization(%q) = %q, want BRICS", name, got)
		}
	}
	for _, name := range g7Members {
		if got := Organization(name); got != types.OrgG7 {
			t.Errorf("Organization(%q) = %q, want G7", name, got)
		}
	}

	tests := []struct {
		name string
		want types.Organization
	}{
		{"Switzerland", types.OrgOther},
		{"", types.OrgOther},
		{"germany", types.OrgOther},
		{"United States", types.OrgOther}, // G7 list spells it USA
		{"Saudi Arabia ", types.OrgOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Organization(tt.name); got != tt.want {
				t.Errorf("Organization(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestOrganizationListSizes(t *testing.T) {
	if len(opecMembers) != 11 || len(bricsMembers) != 5 || len(g7Members) != 7 {
		t.Fatalf("unexpected list sizes: opec=%d brics=%d g7=%d", len(opecMembers), len(bricsMembers), len(g7Members))
	}
}

func TestRegion(t *testing.T) {
	tests := []struct {
		name string
		want types.Region
	}{
		{"Algeria", types.RegionAfrica},
		{"Cote d'Ivoire", types.RegionAfrica},
		{"Qatar", types.RegionMiddleEast},
		{"Iran", types.RegionMiddleEast},
		{"China", types.RegionEastAsia},
		{"Germany", types.RegionEurope},
		{"Russia", types.RegionEurope},
		{"Turkey", types.RegionEurope},
		{"Canada", types.RegionNorthAmerica},
		{"United States", types.RegionNorthAmerica},
		{"Brazil", types.RegionSouthAmerica},
		{"Australia", types.RegionOceania},
		{"Micronesia (country)", types.RegionOceania},
		{"Atlantis", types.RegionOther},
		{"USA", types.RegionOther},
		{"", types.RegionOther},

		// Names listed under two regions resolve to the earlier one.
		{"Georgia", types.RegionEastAsia},
		{"Greenland", types.RegionEurope},
		{"Mexico", types.RegionNorthAmerica},
		{"Honduras", types.RegionNorthAmerica},
		{"Nicaragua", types.RegionNorthAmerica},
		{"Panama", types.RegionNorthAmerica},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Region(tt.name); got != tt.want {
				t.Errorf("Region(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRegionIdempotent(t *testing.T) {
	for _, rule := range regionRules {
		for _, name := range rule.members {
			first := Region(name)
			if second := Region(name); first != second {
				t.Errorf("Region(%q) not stable: %q then %q", name, first, second)
			}
			if first == types.RegionOther {
				t.Errorf("Region(%q) = Other for a listed name", name)
			}
		}
	}
}

func TestEUBloc(t *testing.T) {
	if len(euMembers) != 27 {
		t.Fatalf("EU list has %d members, want 27", len(euMembers))
	}
	for _, name := range euMembers {
		if got := EUBloc(name); got != types.BlocEU {
			t.Errorf("EUBloc(%q) = %q, want EU", name, got)
		}
	}

	tests := []struct {
		name string
		want types.EuroBloc
	}{
		{"Russia", types.BlocRussia},
		{"Ukraine", types.BlocUkraine},
		{"Brazil", types.BlocOther},
		{"United Kingdom", types.BlocOther},
		// Exact matching: substrings of the bloc names are not members.
		{"Russ", types.BlocOther},
		{"", types.BlocOther},
		{"Ukraine (former)", types.BlocOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EUBloc(tt.name); got != tt.want {
				t.Errorf("EUBloc(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want types.Labels
	}{
		{"Germany", types.Labels{Organization: types.OrgG7, Region: types.RegionEurope, EuroBloc: types.BlocEU}},
		{"Saudi Arabia", types.Labels{Organization: types.OrgOPEC, Region: types.RegionMiddleEast, EuroBloc: types.BlocOther}},
		{"Russia", types.Labels{Organization: types.OrgBRICS, Region: types.RegionEurope, EuroBloc: types.BlocRussia}},
		{"Switzerland", types.Labels{Organization: types.OrgOther, Region: types.RegionEurope, EuroBloc: types.BlocOther}},
		{"Nowhere", types.Labels{Organization: types.OrgOther, Region: types.RegionOther, EuroBloc: types.BlocOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Classify(tt.name)); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestApply(t *testing.T) {
	records := []types.Record{{Entity: "France", Year: 2000}, {Entity: "Kenya", Year: 2001}}
	Apply(records)
	if records[0].Organization != types.OrgG7 || records[0].EuroBloc != types.BlocEU {
		t.Errorf("France labels = %+v", records[0].Labels)
	}
	if records[1].Region != types.RegionAfrica || records[1].Organization != types.OrgOther {
		t.Errorf("Kenya labels = %+v", records[1].Labels)
	}
}

func TestOverlaps(t *testing.T) {
	want := []Overlap{
		{Name: "Georgia", Winner: types.RegionEastAsia, Shadowed: []types.Region{types.RegionEurope}},
		{Name: "Greenland", Winner: types.RegionEurope, Shadowed: []types.Region{types.RegionNorthAmerica}},
		{Name: "Honduras", Winner: types.RegionNorthAmerica, Shadowed: []types.Region{types.RegionSouthAmerica}},
		{Name: "Mexico", Winner: types.RegionNorthAmerica, Shadowed: []types.Region{types.RegionSouthAmerica}},
		{Name: "Nicaragua", Winner: types.RegionNorthAmerica, Shadowed: []types.Region{types.RegionSouthAmerica}},
		{Name: "Panama", Winner: types.RegionNorthAmerica, Shadowed: []types.Region{types.RegionSouthAmerica}},
	}
	if diff := cmp.Diff(want, Overlaps()); diff != "" {
		t.Errorf("Overlaps() mismatch (-want +got):\n%s", diff)
	}
	for _, o := range Overlaps() {
		if got := Region(o.Name); got != o.Winner {
			t.Errorf("Region(%q) = %q, overlap report says %q", o.Name, got, o.Winner)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := Snapshot()
	s.Organizations[0].Members[0] = "Mutated"
	if Organization("Saudi Arabia") != types.OrgOPEC {
		t.Fatal("mutating a snapshot changed the classifier")
	}
	if opecMembers[0] != "Saudi Arabia" {
		t.Fatal("snapshot shares backing array with membership list")
	}
}

func TestWriteTables(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteTables(&buf, FormatYAML); err != nil {
			t.Fatalf("WriteTables: %v", err)
		}
		var got Tables
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("decoding yaml: %v", err)
		}
		if len(got.Regions) != 7 || got.Regions[0].Label != "Africa" {
			t.Errorf("regions = %+v", got.Regions)
		}
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteTables(&buf, FormatTOML); err != nil {
			t.Fatalf("WriteTables: %v", err)
		}
		var got Tables
		if _, err := toml.Decode(buf.String(), &got); err != nil {
			t.Fatalf("decoding toml: %v", err)
		}
		if len(got.EuroBlocs) != 3 || len(got.EuroBlocs[0].Members) != 27 {
			t.Errorf("euru = %+v", got.EuroBlocs)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		err := WriteTables(&bytes.Buffer{}, Format("xml"))
		if err == nil || !strings.Contains(err.Error(), "unknown table format") {
			t.Errorf("expected unknown format error, got %v", err)
		}
	})
}

func TestKnownNames(t *testing.T) {
	names := KnownNames()
	if !sort.StringsAreSorted(names) {
		t.Error("KnownNames() not sorted")
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q", n)
		}
		seen[n] = true
	}
	for _, n := range []string{"Germany", "Qatar", "Russia", "Ukraine", "Greenland", "UAE"} {
		if !seen[n] {
			t.Errorf("KnownNames() missing %q", n)
		}
	}
}
