package core

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Decimal is a monetary/score amount. Browsers post these either as JSON
// numbers or as strings ("49.99"); both coerce to the same stored value and
// serialize back as a number.
type Decimal float64

func (d Decimal) Float64() float64 { return float64(d) }

func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "parsing decimal %q", s)
	}
	*d = Decimal(f)
	return nil
}

// Scan implements sql.Scanner; pq returns NUMERIC columns as []byte.
func (d *Decimal) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case float64:
		*d = Decimal(v)
	case int64:
		*d = Decimal(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return errors.Wrapf(err, "scanning decimal %q", v)
		}
		*d = Decimal(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "scanning decimal %q", v)
		}
		*d = Decimal(f)
	default:
		return errors.Errorf("scanning decimal: unsupported type %T", src)
	}
	return nil
}

func (d Decimal) Value() (driver.Value, error) {
	return float64(d), nil
}

func (d Decimal) String() string {
	return fmt.Sprintf("%.2f", float64(d))
}
