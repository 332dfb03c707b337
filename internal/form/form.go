// Package form decodes and validates the HTML forms posted by the pages.
package form

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode fills dst from the posted form of r. With a non-empty prefix only
// fields named "<prefix>.<field>" are considered. Blank values are skipped so
// pointer fields stay nil.
func Decode(r *http.Request, prefix string, dst any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return DecodeValues(r.PostForm, prefix, dst)
}

func DecodeValues(values map[string][]string, prefix string, dst any) error {
	input := map[string]any{}
	for key, vs := range values {
		if prefix != "" {
			var ok bool
			if key, ok = strings.CutPrefix(key, prefix+"."); !ok {
				continue
			}
		}
		for _, v := range vs {
			// the first non-blank value wins, a checkbox is followed by its
			// hidden "false" companion
			if v = strings.TrimSpace(v); v != "" {
				input[key] = v
				break
			}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			checkboxHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// thousandsGrouped matches whole amounts with dot separated thousands, such
// as 12.500 or 1.250.000.
var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

func decimalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		s := strings.ReplaceAll(data.(string), " ", "")
		switch {
		case strings.Contains(s, ","):
			// 1.250,50 is how the amounts are typed in Turkish
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		case thousandsGrouped.MatchString(s):
			s = strings.ReplaceAll(s, ".", "")
		}
		return s, nil
	}
	return data, nil
}

func checkboxHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Bool && strings.EqualFold(data.(string), "on") {
		return true, nil
	}
	return data, nil
}
