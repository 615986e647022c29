package types

import "errors"

var (
	ErrMalformedResponse = errors.New("malformed query service response")
	ErrCoercion          = errors.New("failed to coerce column")
	ErrQueryService      = errors.New("query service request failed")
	ErrStatementFailed   = errors.New("sql statement did not succeed")

	ErrUnknownChart = errors.New("unknown chart")
	ErrNoChartData  = errors.New("chart has no data")
)
