package backend

import (
	"bytes"
	"fmt"
	"time"
)

// dateLayout is what the backends emit for DateTime values: no zone, no
// fractional seconds.
const dateLayout = "2006-01-02T15:04:05"

var dateLayouts = []string{
	time.RFC3339Nano,
	dateLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006",
}

// Date is a timestamp that tolerates the zone-less formats of the backends.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("backend: unrecognised date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalText lets form decoding fill Date fields from <input type=date>.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// InputValue formats the date for an <input type=date> element.
func (d *Date) InputValue() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}
