package models

import (
	"cmp"
	"strconv"

	"cloud.google.com/go/civil"
)

// Trip is a coerced trip record.
type Trip struct {
	TripDistance float64
	TotalAmount  float64
	PickupAt     civil.DateTime // wall clock, offset discarded
	PaymentType  string
	RateCode     RateCode
}

// RateCode is a nullable rate code. Missing and unparseable codes share the
// single MissingRateCode value so that rate codes stay comparable map keys.
type RateCode struct {
	Value   float64
	Missing bool
}

// MissingRateCode replaces null or unparseable rate codes.
var MissingRateCode = RateCode{Missing: true}

const missingRateCodeLabel = "missing"

func NewRateCode(v float64) RateCode {
	return RateCode{Value: v}
}

func (r RateCode) String() string {
	if r.Missing {
		return missingRateCodeLabel
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r RateCode) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// CompareRateCodes orders rate codes by value with the missing code last.
func CompareRateCodes(a, b RateCode) int {
	switch {
	case a.Missing && b.Missing:
		return 0
	case a.Missing:
		return 1
	case b.Missing:
		return -1
	}
	return cmp.Compare(a.Value, b.Value)
}
