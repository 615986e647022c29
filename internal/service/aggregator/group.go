package aggregator

import (
	"cmp"
	"maps"
	"slices"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
)

// Filter keeps trips with a positive total amount. Other trips are dropped
// without being reported.
func Filter(trips []models.Trip) []models.Trip {
	kept := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.TotalAmount > 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// meanAcc keeps a running mean, so large fares cannot overflow a sum.
type meanAcc struct {
	mean float64
	n    int
}

// groupMean averages total amounts per key and returns the groups in the
// order given by compare.
func groupMean[K comparable](trips []models.Trip, key func(models.Trip) K, compare func(a, b K) int) models.Series[K] {
	groups := make(map[K]*meanAcc)
	for _, t := range trips {
		k := key(t)
		acc, ok := groups[k]
		if !ok {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.n++
		acc.mean += (t.TotalAmount - acc.mean) / float64(acc.n)
	}

	keys := slices.SortedFunc(maps.Keys(groups), compare)

	series := models.NewSeries[K](len(keys))
	for _, k := range keys {
		acc := groups[k]
		series.Append(k, acc.mean, acc.n)
	}
	return series
}

// ByHour groups by pickup hour (0-23). Hours without trips are absent.
func ByHour(trips []models.Trip) models.Series[int] {
	return groupMean(trips, func(t models.Trip) int {
		return t.PickupAt.Time.Hour
	}, cmp.Compare[int])
}

func ByPaymentType(trips []models.Trip) models.Series[string] {
	return groupMean(trips, func(t models.Trip) string {
		return t.PaymentType
	}, cmp.Compare[string])
}

// ByRateCode groups by rate code. The missing rate code forms its own group,
// ordered after every known code.
func ByRateCode(trips []models.Trip) models.Series[models.RateCode] {
	return groupMean(trips, func(t models.Trip) models.RateCode {
		return t.RateCode
	}, models.CompareRateCodes)
}

func ByRateCodeAndPayment(trips []models.Trip) models.Series[models.RatePaymentKey] {
	return groupMean(trips, func(t models.Trip) models.RatePaymentKey {
		return models.RatePaymentKey{RateCode: t.RateCode, PaymentType: t.PaymentType}
	}, models.CompareRatePaymentKeys)
}

// DistanceVsFare returns the unaggregated distance and fare of every trip in input order.
func DistanceVsFare(trips []models.Trip) models.Scatter {
	s := models.Scatter{
		Distances: make([]float64, 0, len(trips)),
		Fares:     make([]float64, 0, len(trips)),
	}
	for _, t := range trips {
		s.Distances = append(s.Distances, t.TripDistance)
		s.Fares = append(s.Fares, t.TotalAmount)
	}
	return s
}
