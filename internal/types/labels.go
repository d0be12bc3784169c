// Package types defines the core data structures of the fossil dataset.
package types

// Organization is the economic bloc an entity belongs to
type Organization string

const (
	OrgOPEC  Organization = "OPEC"
	OrgBRICS Organization = "BRICS"
	OrgG7    Organization = "G7"
	OrgOther Organization = "Other"
)

// Organizations lists every organization label in chart order
var Organizations = []Organization{OrgOPEC, OrgBRICS, OrgG7, OrgOther}

// IsValid checks if the organization value is valid
func (o Organization) IsValid() bool {
	switch o {
	case OrgOPEC, OrgBRICS, OrgG7, OrgOther:
		return true
	}
	return false
}

// Region is the coarse geographic grouping of an entity
type Region string

const (
	RegionAfrica       Region = "Africa"
	RegionMiddleEast   Region = "Middle East"
	RegionEastAsia     Region = "East Asia"
	RegionEurope       Region = "Europe"
	RegionNorthAmerica Region = "North America"
	RegionSouthAmerica Region = "South America"
	RegionOceania      Region = "Oceania"
	RegionOther        Region = "Other"
)

// Regions lists every region label in classification priority order,
// followed by the fallback.
var Regions = []Region{
	RegionAfrica,
	RegionMiddleEast,
	RegionEastAsia,
	RegionEurope,
	RegionNorthAmerica,
	RegionSouthAmerica,
	RegionOceania,
	RegionOther,
}

// IsValid checks if the region value is valid
func (r Region) IsValid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// EuroBloc marks an entity as an EU member, Russia, Ukraine or none of them
type EuroBloc string

const (
	BlocEU      EuroBloc = "EU"
	BlocRussia  EuroBloc = "Russia"
	BlocUkraine EuroBloc = "Ukraine"
	BlocOther   EuroBloc = "Other"
)

// EuroBlocs lists every bloc label in chart order
var EuroBlocs = []EuroBloc{BlocEU, BlocRussia, BlocUkraine, BlocOther}

// IsValid checks if the bloc value is valid
func (b EuroBloc) IsValid() bool {
	switch b {
	case BlocEU, BlocRussia, BlocUkraine, BlocOther:
		return true
	}
	return false
}

// Labels holds the three independent classifications of one entity
type Labels struct {
	Organization Organization `json:"organization" yaml:"organization"`
	Region       Region       `json:"region" yaml:"region"`
	EuroBloc     EuroBloc     `json:"euru" yaml:"euru"`
}

// IsZero reports whether no label has been assigned yet
func (l Labels) IsZero() bool {
	return l.Organization == "" && l.Region == "" && l.EuroBloc == ""
}
