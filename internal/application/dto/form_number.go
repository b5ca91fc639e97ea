package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/hapkiduki/loadplan-go/internal/domain/valueobject"
)

// ErrNotANumber is returned when a numeric field holds a bool, object or array.
var ErrNotANumber = errors.New("value must be a number or numeric string")

// FormNumber is a numeric request field that also accepts a string, the way
// values arrive from an HTML form. Strings go through the shared
// parse-or-default rule: blank or unparsable text becomes 0.
type FormNumber float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FormNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*n = 0
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FormNumber(valueobject.ParseOrDefault(s, 0))
		return nil
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			// Out-of-range literals such as 1e999.
			*n = 0
			return nil
		}
		*n = FormNumber(f)
		return nil
	}
	return ErrNotANumber
}

// Float returns the value as float64.
func (n FormNumber) Float() float64 {
	return float64(n)
}

// Int truncates toward zero. Negative and non-finite values become 0.
func (n FormNumber) Int() int {
	f := valueobject.NonNegative(float64(n))
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// Number returns a pointer to a FormNumber, for optional fields in tests
// and client code.
func Number(v float64) *FormNumber {
	n := FormNumber(v)
	return &n
}

// FloatOr resolves an optional field: def when the field was absent.
func (n *FormNumber) FloatOr(def float64) float64 {
	if n == nil {
		return def
	}
	return valueobject.FiniteOr(n.Float(), def)
}
