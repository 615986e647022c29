package aggregator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
)

var errNullValue = errors.New("null value")

// coerceFunc casts one raw cell to the Go value of a semantic type.
type coerceFunc func(models.Cell) (any, error)

// setFunc stores a coerced value into its trip field. It reports false when
// the value has the wrong Go type for the field.
type setFunc func(*models.Trip, any) bool

// column is a typed column descriptor: where the column is in the row,
// how its cells are cast and which trip field receives them.
type column struct {
	index  int
	field  models.Field
	coerce coerceFunc
	set    setFunc
}

var coercers = map[types.SemanticType]coerceFunc{
	types.TypeFloat: func(c models.Cell) (any, error) {
		return parseFloat(c)
	},
	types.TypeDateTime: func(c models.Cell) (any, error) {
		return parseDateTime(c)
	},
	types.TypeString: func(c models.Cell) (any, error) {
		if !c.Valid {
			return nil, errNullValue
		}
		return c.Value, nil
	},
	types.TypeNullableFloat: func(c models.Cell) (any, error) {
		return parseRateCode(c), nil
	},
}

var setters = map[string]setFunc{
	models.FieldTripDistance: func(t *models.Trip, v any) (ok bool) {
		t.TripDistance, ok = v.(float64)
		return ok
	},
	models.FieldTotalAmount: func(t *models.Trip, v any) (ok bool) {
		t.TotalAmount, ok = v.(float64)
		return ok
	},
	models.FieldPickupDateTime: func(t *models.Trip, v any) (ok bool) {
		t.PickupAt, ok = v.(civil.DateTime)
		return ok
	},
	models.FieldPaymentType: func(t *models.Trip, v any) (ok bool) {
		t.PaymentType, ok = v.(string)
		return ok
	},
	models.FieldRateCode: func(t *models.Trip, v any) bool {
		switch x := v.(type) {
		case models.RateCode:
			t.RateCode = x
		case float64:
			t.RateCode = rateCodeOf(x)
		default:
			return false
		}
		return true
	},
}

// columns resolves the declared schema into column descriptors. Every trip
// field has to be declared exactly once.
func columns(schema models.Schema) ([]column, error) {
	cols := make([]column, 0, len(schema))
	seen := make(map[string]struct{}, len(schema))

	for i, f := range schema {
		coerce, ok := coercers[f.Type]
		if !ok {
			return nil, fmt.Errorf("%w: column %q has unknown type %q", types.ErrMalformedResponse, f.Name, f.Type)
		}
		set, ok := setters[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unexpected column %q", types.ErrMalformedResponse, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", types.ErrMalformedResponse, f.Name)
		}
		seen[f.Name] = struct{}{}

		cols = append(cols, column{index: i, field: f, coerce: coerce, set: set})
	}

	for name := range setters {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", types.ErrMalformedResponse, name)
		}
	}

	return cols, nil
}

// Coerce casts a raw result set into trip records, column by column. Every
// row must have exactly one cell per schema field. A single cell that cannot
// be cast fails the whole column, and with it the whole call.
func Coerce(rows []models.RawRow, schema models.Schema) ([]models.Trip, error) {
	for i, row := range rows {
		if len(row) != len(schema) {
			return nil, fmt.Errorf("%w: row %d has %d values, schema has %d columns", types.ErrMalformedResponse, i, len(row), len(schema))
		}
	}

	cols, err := columns(schema)
	if err != nil {
		return nil, err
	}

	trips := make([]models.Trip, len(rows))
	for _, col := range cols {
		for i, row := range rows {
			v, err := col.coerce(row[col.index])
			if err != nil {
				return nil, fmt.Errorf("%w %q to %s: row %d: %v", types.ErrCoercion, col.field.Name, col.field.Type, i, err)
			}
			if !col.set(&trips[i], v) {
				return nil, fmt.Errorf("%w %q: declared type %s does not fit the field", types.ErrCoercion, col.field.Name, col.field.Type)
			}
		}
	}

	return trips, nil
}

func parseFloat(c models.Cell) (float64, error) {
	if !c.Valid {
		return 0, errNullValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", c.Value)
	}
	return v, nil
}

// parseRateCode substitutes null with the missing code before casting, and
// maps values that do not parse to the same missing code.
func parseRateCode(c models.Cell) models.RateCode {
	if !c.Valid {
		return models.MissingRateCode
	}
	v, err := parseFloat(c)
	if err != nil {
		return models.MissingRateCode
	}
	return rateCodeOf(v)
}

func rateCodeOf(v float64) models.RateCode {
	if math.IsNaN(v) {
		return models.MissingRateCode
	}
	return models.NewRateCode(v)
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseDateTime keeps the wall clock of the value. Offsets are dropped, not converted.
func parseDateTime(c models.Cell) (civil.DateTime, error) {
	if !c.Valid {
		return civil.DateTime{}, errNullValue
	}

	s := strings.TrimSpace(c.Value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateTimeOf(t), nil
		}
	}

	return civil.DateTime{}, fmt.Errorf("unsupported timestamp %q", s)
}
