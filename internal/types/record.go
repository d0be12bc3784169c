package types

// Column names used by the input and output tables.
const (
	ColEntity          = "Entity"
	ColYear            = "Year"
	ColGasProduction   = "Gas production"
	ColGasConsumption  = "Gas consumption"
	ColOilProduction   = "Oil production"
	ColOilConsumption  = "Oil consumption"
	ColCoalProduction  = "Coal production"
	ColCoalConsumption = "Coal consumption"

	ColOrganizations = "Organizations"
	ColRegion        = "Region"
	ColEURU          = "EURU"
)

// FuelColumns lists the six numeric fuel columns in the order the
// describe table prints them.
var FuelColumns = []string{
	ColGasProduction,
	ColGasConsumption,
	ColOilProduction,
	ColOilConsumption,
	ColCoalProduction,
	ColCoalConsumption,
}

// LabelColumns lists the derived columns appended by classification
var LabelColumns = []string{ColOrganizations, ColRegion, ColEURU}

// Fuel holds production and consumption figures for one (entity, year)
type Fuel struct {
	GasProduction   float64 `json:"gas_production"`
	GasConsumption  float64 `json:"gas_consumption"`
	OilProduction   float64 `json:"oil_production"`
	OilConsumption  float64 `json:"oil_consumption"`
	CoalProduction  float64 `json:"coal_production"`
	CoalConsumption float64 `json:"coal_consumption"`
}

// Record is one row of the dataset: an entity in a given year.
type Record struct {
	Entity string `json:"entity"`
	Year   int    `json:"year"`
	Fuel
	Labels

	// Extra carries input columns the pipeline does not interpret
	// (e.g. "Code"), keyed by column name.
	Extra map[string]string `json:"extra,omitempty"`
}

// Value returns the numeric value of a fuel column by name.
// The second result is false for unknown columns.
func (r *Record) Value(column string) (float64, bool) {
	switch column {
	case ColGasProduction:
		return r.GasProduction, true
	case ColGasConsumption:
		return r.GasConsumption, true
	case ColOilProduction:
		return r.OilProduction, true
	case ColOilConsumption:
		return r.OilConsumption, true
	case ColCoalProduction:
		return r.CoalProduction, true
	case ColCoalConsumption:
		return r.CoalConsumption, true
	case ColYear:
		return float64(r.Year), true
	}
	return 0, false
}

// SetValue stores a fuel value by column name. Unknown columns are ignored
// and reported with false.
func (r *Record) SetValue(column string, v float64) bool {
	switch column {
	case ColGasProduction:
		r.GasProduction = v
	case ColGasConsumption:
		r.GasConsumption = v
	case ColOilProduction:
		r.OilProduction = v
	case ColOilConsumption:
		r.OilConsumption = v
	case ColCoalProduction:
		r.CoalProduction = v
	case ColCoalConsumption:
		r.CoalConsumption = v
	default:
		return false
	}
	return true
}

// TotalConsumption is the sum of gas, oil and coal consumption
func (r *Record) TotalConsumption() float64 {
	return r.GasConsumption + r.OilConsumption + r.CoalConsumption
}

// TotalProduction is the sum of gas, oil and coal production
func (r *Record) TotalProduction() float64 {
	return r.GasProduction + r.OilProduction + r.CoalProduction
}

// Label returns the label stored under one of the derived column names
func (r *Record) Label(column string) (string, bool) {
	switch column {
	case ColOrganizations:
		return string(r.Organization), true
	case ColRegion:
		return string(r.Region), true
	case ColEURU:
		return string(r.EuroBloc), true
	case ColEntity:
		return r.Entity, true
	}
	return "", false
}

// Dataset is an ordered set of records together with the column layout
// they were read with.
type Dataset struct {
	// Columns is the input header, in input order, without label columns.
	Columns []string
	Records []Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}
