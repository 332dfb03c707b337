package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	tr_translations "github.com/go-playground/validator/v10/translations/tr"
)

// Errors maps a struct field name to its Turkish error message.
type Errors map[string]string

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string { return e[field] }

var patterns = map[string]struct {
	re      *regexp.Regexp
	message string
}{
	"tckn": {regexp.MustCompile(`^\d{11}$`), "{0} 11 haneli olmalıdır."},
	"gsm":  {regexp.MustCompile(`^5\d{9}$`), "{0} 5 ile başlayan 10 haneli bir numara olmalıdır."},
	"otp":  {regexp.MustCompile(`^\d{6}$`), "Lütfen 6 haneli SMS şifresini giriniz."},
}

type validation struct {
	validate   *validator.Validate
	translator ut.Translator
}

var std = mustValidation()

func mustValidation() *validation {
	locale := tr.New()
	translator, _ := ut.New(locale, locale).GetTranslator("tr")

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	if err := tr_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	for tag, p := range patterns {
		re := p.re
		if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		message := p.message
		if err := validate.RegisterTranslation(tag, translator,
			func(ut ut.Translator) error { return ut.Add(tag, message, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			},
		); err != nil {
			panic(err)
		}
	}

	if err := validate.RegisterTranslation("required_if", translator,
		func(ut ut.Translator) error { return ut.Add("required_if", "{0} zorunlu bir alandır", true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), fe.Field())
			return t
		},
	); err != nil {
		panic(err)
	}

	return &validation{validate: validate, translator: translator}
}

// Validate checks v against its validate tags. It returns nil when v is valid.
func Validate(v any) Errors {
	err := std.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"": err.Error()}
	}
	out := Errors{}
	for _, fe := range fieldErrs {
		key := fe.StructNamespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		if _, seen := out[key]; !seen {
			out[key] = fe.Translate(std.translator)
		}
	}
	return out
}
