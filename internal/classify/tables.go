package classify

import "github.com/untoldecay/fossiluse/internal/types"

// Membership lists are kept exactly as the reference dataset spells the
// entity names. Region lists overlap in a few places; see Overlaps.

var opecMembers = []string{
	"Saudi Arabia", "Iran", "Iraq", "Venezuela", "Nigeria", "Algeria",
	"Kuwait", "UAE", "Libya", "Gabon", "Congo",
}

var bricsMembers = []string{
	"Brazil", "Russia", "India", "China", "South Africa",
}

var g7Members = []string{
	"USA", "Canada", "Japan", "Germany", "UK", "France", "Italy",
}

var africa = []string{
	"Algeria", "Angola", "Benin", "Botswana", "Burkina Faso", "Burundi",
	"Cameroon", "Cape Verde", "Central African Republic", "Chad", "Comoros",
	"Congo", "Djibouti", "Egypt", "Equatorial Guinea", "Eritrea", "Eswatini",
	"Ethiopia", "Gabon", "Gambia", "Ghana", "Guinea", "Guinea-Bissau", "Tanzania",
	"Cote d'Ivoire", "Kenya", "Lesotho", "Liberia", "Libya", "Tunisia", "Western Sahara",
	"Madagascar", "Malawi", "Mali", "Mauritania", "Mauritius", "Morocco", "Togo",
	"Mozambique", "Namibia", "Niger", "Nigeria", "Rwanda", "Sao Tome and Principe",
	"Senegal", "Seychelles", "Sierra Leone", "Somalia", "South Africa", "Uganda",
	"Zambia", "Zimbabwe", "Democratic Republic of Congo", "South Sudan", "Sudan",
}

var middleEast = []string{
	"Afghanistan", "Armenia", "Azerbaijan", "Bahrain", "Iran", "Iraq", "Israel", "Jordan",
	"Kuwait", "Lebanon", "Oman", "Palestine", "Qatar", "Saudi Arabia", "Syria",
	"United Arab Emirates", "Yemen",
}

var eastAsia = []string{
	"Bangladesh", "Bhutan", "Brunei", "Cambodia", "China", "Georgia", "Hong Kong", "India",
	"Indonesia", "Japan", "Kazakhstan", "Kyrgyzstan", "Laos", "Macau", "Malaysia", "Maldives",
	"Mongolia", "Myanmar", "Nepal", "North Korea", "Pakistan", "Philippines", "Singapore",
	"South Korea", "Sri Lanka", "Taiwan", "Tajikistan", "Thailand", "Timor", "Turkmenistan",
	"Uzbekistan", "Vietnam",
}

var europe = []string{
	"Albania", "Andorra", "Austria", "Belarus", "Belgium",
	"Bosnia and Herzegovina", "Bulgaria", "Croatia", "Cyprus", "Czechia",
	"Denmark", "Estonia", "Faroe Islands", "Finland", "France", "Georgia",
	"Germany", "Gibraltar", "Greece", "Greenland", "Hungary", "Iceland", "Ireland",
	"Italy", "Kosovo", "Latvia", "Liechtenstein", "Lithuania", "Luxembourg",
	"Malta", "Moldova", "Monaco", "Montenegro", "Netherlands", "North Macedonia", "Norway",
	"Poland", "Portugal", "Romania", "Russia", "San Marino", "Serbia",
	"Slovakia", "Slovenia", "Spain", "Svalbard and Jan Mayen", "Sweden",
	"Switzerland", "Ukraine", "United Kingdom", "Vatican City", "Turkey",
}

var northAmerica = []string{
	"American Samoa", "Antigua and Barbuda", "Aruba", "Bahamas", "Barbados", "Belize", "Bermuda",
	"Canada", "Cayman Islands", "Cuba", "Dominica", "Dominican Republic", "East Germany",
	"Greenland", "Grenada", "Guadeloupe", "Guam", "Guatemala", "Haiti", "Honduras",
	"Jamaica", "Martinique", "Mexico", "Netherlands Antilles", "Nicaragua", "Panama",
	"Puerto Rico", "Saint Kitts and Nevis", "Saint Lucia", "Saint Pierre and Miquelon",
	"Saint Vincent and the Grenadines", "Turks and Caicos Islands", "United States",
	"United States Virgin Islands",
}

var southAmerica = []string{
	"Argentina", "Bolivia", "Brazil", "British Virgin Islands", "Chile", "Colombia",
	"Costa Rica", "Ecuador", "El Salvador", "Falkland Islands", "French Guiana", "Guyana",
	"Honduras", "Mexico", "Nicaragua", "Panama", "Paraguay", "Peru", "Suriname",
	"Trinidad and Tobago", "Uruguay", "Venezuela",
}

var oceania = []string{
	"Australia", "Fiji", "Kiribati", "Micronesia (country)", "Nauru",
	"New Caledonia", "New Zealand", "Niue", "Palau", "Papua New Guinea", "Samoa",
	"Solomon Islands", "Tokelau", "Tonga", "Tuvalu", "U.S. Pacific Islands",
	"Vanuatu", "Wake Island",
}

var euMembers = []string{
	"Austria", "Belgium", "Bulgaria", "Croatia", "Cyprus", "Czechia", "Denmark",
	"Estonia", "Finland", "France", "Germany", "Greece", "Hungary", "Ireland", "Italy",
	"Latvia", "Lithuania", "Luxembourg", "Malta", "Netherlands", "Poland", "Portugal",
	"Romania", "Slovakia", "Slovenia", "Spain", "Sweden",
}

// set is a membership lookup built from one of the lists above
type set map[string]struct{}

func newSet(names []string) set {
	s := make(set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s set) has(name string) bool {
	_, ok := s[name]
	return ok
}

type orgRule struct {
	label   types.Organization
	members []string
	set     set
}

type regionRule struct {
	label   types.Region
	members []string
	set     set
}

// Rules are evaluated top to bottom; the first set containing the name wins.
var (
	orgRules = []orgRule{
		{label: types.OrgOPEC, members: opecMembers},
		{label: types.OrgBRICS, members: bricsMembers},
		{label: types.OrgG7, members: g7Members},
	}

	regionRules = []regionRule{
		{label: types.RegionAfrica, members: africa},
		{label: types.RegionMiddleEast, members: middleEast},
		{label: types.RegionEastAsia, members: eastAsia},
		{label: types.RegionEurope, members: europe},
		{label: types.RegionNorthAmerica, members: northAmerica},
		{label: types.RegionSouthAmerica, members: southAmerica},
		{label: types.RegionOceania, members: oceania},
	}

	euSet = newSet(euMembers)
)

func init() {
	for i := range orgRules {
		orgRules[i].set = newSet(orgRules[i].members)
	}
	for i := range regionRules {
		regionRules[i].set = newSet(regionRules[i].members)
	}
}
