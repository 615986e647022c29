package models

import "github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"

// Column names as selected by the trips statement.
const (
	FieldTripDistance   = "trip_distance"
	FieldTotalAmount    = "Total_Amt"
	FieldPickupDateTime = "Trip_Pickup_DateTime"
	FieldPaymentType    = "Payment_Type"
	FieldRateCode       = "Rate_Code"
)

// Field is one column of a result set: its name and the type its cells are coerced into.
type Field struct {
	Name string             `json:"name"`
	Type types.SemanticType `json:"type"`
}

// Schema is the ordered list of result set columns. Row cells follow the same order.
type Schema []Field

// Names returns column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// TripSchema is the declared schema of the trips statement.
func TripSchema() Schema {
	return Schema{
		{Name: FieldTripDistance, Type: types.TypeFloat},
		{Name: FieldTotalAmount, Type: types.TypeFloat},
		{Name: FieldPickupDateTime, Type: types.TypeDateTime},
		{Name: FieldPaymentType, Type: types.TypeString},
		{Name: FieldRateCode, Type: types.TypeNullableFloat},
	}
}
