package models

import "cmp"

// Series is a grouped summary: group keys and the mean fare of each group,
// as parallel slices in key order.
type Series[K comparable] struct {
	Keys   []K       `json:"keys"`
	Values []float64 `json:"values"`
	Counts []int     `json:"counts"`
}

func NewSeries[K comparable](capacity int) Series[K] {
	return Series[K]{
		Keys:   make([]K, 0, capacity),
		Values: make([]float64, 0, capacity),
		Counts: make([]int, 0, capacity),
	}
}

func (s *Series[K]) Append(key K, value float64, count int) {
	s.Keys = append(s.Keys, key)
	s.Values = append(s.Values, value)
	s.Counts = append(s.Counts, count)
}

func (s Series[K]) Len() int {
	return len(s.Keys)
}

// Value returns the mean stored for key.
func (s Series[K]) Value(key K) (float64, bool) {
	for i, k := range s.Keys {
		if k == key {
			return s.Values[i], true
		}
	}
	return 0, false
}

// RatePaymentKey is the composite key of the rate code by payment type grouping.
type RatePaymentKey struct {
	RateCode    RateCode `json:"rate_code"`
	PaymentType string   `json:"payment_type"`
}

func CompareRatePaymentKeys(a, b RatePaymentKey) int {
	if c := CompareRateCodes(a.RateCode, b.RateCode); c != 0 {
		return c
	}
	return cmp.Compare(a.PaymentType, b.PaymentType)
}

// PaymentSeries is the rate code series of a single payment type.
type PaymentSeries struct {
	PaymentType string           `json:"payment_type"`
	Series      Series[RateCode] `json:"series"`
}

// Scatter holds unaggregated distance and fare pairs as parallel slices.
type Scatter struct {
	Distances []float64 `json:"distances"`
	Fares     []float64 `json:"fares"`
}

func (s Scatter) Len() int {
	return len(s.Distances)
}

// Aggregates is everything the dashboard charts are built from.
type Aggregates struct {
	ByHour               Series[int]            `json:"by_hour"`
	ByPaymentType        Series[string]         `json:"by_payment_type"`
	ByRateCode           Series[RateCode]       `json:"by_rate_code"`
	ByRateCodeAndPayment Series[RatePaymentKey] `json:"by_rate_code_and_payment"`
	Scatter              Scatter                `json:"scatter"`

	TotalRows    int `json:"total_rows"`
	FilteredRows int `json:"filtered_rows"`
}

// SplitByPayment reshapes the composite grouping into one rate code series
// per payment type. Payment types come out in order of first appearance in
// the composite series, rate codes keep its order.
func (a *Aggregates) SplitByPayment() []PaymentSeries {
	index := make(map[string]int)
	out := []PaymentSeries{}

	for i, key := range a.ByRateCodeAndPayment.Keys {
		pos, ok := index[key.PaymentType]
		if !ok {
			pos = len(out)
			index[key.PaymentType] = pos
			out = append(out, PaymentSeries{
				PaymentType: key.PaymentType,
				Series:      NewSeries[RateCode](0),
			})
		}
		out[pos].Series.Append(key.RateCode, a.ByRateCodeAndPayment.Values[i], a.ByRateCodeAndPayment.Counts[i])
	}

	return out
}
