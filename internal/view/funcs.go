package view

import (
	"fmt"
	"html/template"
	"reflect"
	"strconv"
	"time"

	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Turkish)

var funcs = template.FuncMap{
	"money":    Money,
	"number":   Number,
	"maskGSM":  MaskGSM,
	"date":     FormatDate,
	"deref":    Deref,
	"decimal":  Decimal,
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}

// Money formats an amount in Turkish lira, 12500.5 becomes "12.500,50 TL".
func Money(v any) string {
	f, ok := toFloat(Deref(v))
	if !ok {
		return "-"
	}
	return printer.Sprintf("%.2f TL", f)
}

func Number(v any) string {
	f, ok := toFloat(Deref(v))
	if !ok {
		return "-"
	}
	return printer.Sprintf("%d", int64(f))
}

// Decimal renders an amount for an input value, without exponent and without
// grouping. Nil pointers become the empty string.
func Decimal(v any) string {
	f, ok := toFloat(Deref(v))
	if !ok {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// MaskGSM hides the middle of a ten digit mobile number.
func MaskGSM(gsm string) string {
	if len(gsm) != 10 {
		return gsm
	}
	return fmt.Sprintf("0 (%cXX) XXX XX %s", gsm[0], gsm[8:])
}

func FormatDate(v any, layout string) string {
	switch t := Deref(v).(type) {
	case time.Time:
		if !t.IsZero() {
			return t.Format(layout)
		}
	case backend.Date:
		if !t.IsZero() {
			return t.Format(layout)
		}
	}
	return "-"
}

// Deref follows pointers, nil pointers become the empty string.
func Deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	return rv.Interface()
}
