// Package classify maps entity names to organization, region and
// EU/Russia/Ukraine labels.
//
// Every function here is total: a name that appears in no membership list
// is labelled Other. Names are matched exactly (case-sensitive), as spelled
// in the source dataset.
package classify

import "github.com/untoldecay/fossiluse/internal/types"

// Organization returns the economic bloc of name.
func Organization(name string) types.Organization {
	for _, rule := range orgRules {
		if rule.set.has(name) {
			return rule.label
		}
	}
	return types.OrgOther
}

// Region returns the geographic region of name. Regions are tried in
// Africa, Middle East, East Asia, Europe, North America, South America,
// Oceania order.
func Region(name string) types.Region {
	for _, rule := range regionRules {
		if rule.set.has(name) {
			return rule.label
		}
	}
	return types.RegionOther
}

// EUBloc returns EU for the 27 member states, Russia or Ukraine for exactly
// those names, and Other for everything else.
func EUBloc(name string) types.EuroBloc {
	if euSet.has(name) {
		return types.BlocEU
	}
	switch name {
	case "Russia":
		return types.BlocRussia
	case "Ukraine":
		return types.BlocUkraine
	}
	return types.BlocOther
}

// Classify returns all three labels for name
func Classify(name string) types.Labels {
	return types.Labels{
		Organization: Organization(name),
		Region:       Region(name),
		EuroBloc:     EUBloc(name),
	}
}

// Apply labels every record in place and returns the same slice.
func Apply(records []types.Record) []types.Record {
	for i := range records {
		records[i].Labels = Classify(records[i].Entity)
	}
	return records
}
