package types

import "slices"

// SemanticType is the target type a raw result cell is coerced into.
type SemanticType string

const (
	TypeFloat         SemanticType = "float"
	TypeDateTime      SemanticType = "datetime"
	TypeString        SemanticType = "string"
	TypeNullableFloat SemanticType = "nullable_float"
)

// ChartName identifies one of the dashboard charts.
type ChartName string

func (c ChartName) String() string {
	return string(c)
}

const (
	ChartHourly          ChartName = "hourly"
	ChartPayment         ChartName = "payment"
	ChartRateCode        ChartName = "ratecode"
	ChartDistance        ChartName = "distance"
	ChartRateCodePayment ChartName = "ratecode_payment"
)

// Charts lists dashboard charts in page order.
var Charts = []ChartName{
	ChartHourly,
	ChartPayment,
	ChartRateCode,
	ChartDistance,
	ChartRateCodePayment,
}

// Valid reports whether c names a dashboard chart.
func (c ChartName) Valid() bool {
	return slices.Contains(Charts, c)
}
