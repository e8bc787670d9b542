package http

import (
	"errors"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	estrans "github.com/go-playground/validator/v10/translations/es"
	"github.com/shopspring/decimal"
)

var errValidation = errors.New("validation failed")

// fieldErrors maps a form field name to its message.
type fieldErrors map[string]string

func (fe fieldErrors) Lines(labels map[string]string) []string {
	out := make([]string, 0, len(fe))
	for field, msg := range fe {
		label := labels[field]
		if label == "" {
			label = field
		}
		out = append(out, label+": "+msg)
	}
	sort.Strings(out)
	return out
}

// formValidator validates decoded forms and reports messages in Spanish.
type formValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newFormValidator() *formValidator {
	locale := es.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("es")

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	_ = estrans.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !d.IsNegative()
	})
	_ = v.RegisterTranslation("decimal", trans, func(t ut.Translator) error {
		return t.Add("decimal", "{0} debe ser un número mayor o igual a cero", true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T("decimal", fe.Field())
		return msg
	})

	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	})
	_ = v.RegisterTranslation("positive", trans, func(t ut.Translator) error {
		return t.Add("positive", "{0} debe ser un número mayor que cero", true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T("positive", fe.Field())
		return msg
	})

	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := parseDay(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterTranslation("day", trans, func(t ut.Translator) error {
		return t.Add("day", "{0} debe ser una fecha válida (AAAA-MM-DD)", true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T("day", fe.Field())
		return msg
	})

	return &formValidator{validate: v, trans: trans}
}

// Check validates dst and returns the failures keyed by form field name.
func (f *formValidator) Check(dst any) fieldErrors {
	err := f.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fieldErrors{"": err.Error()}
	}

	rt := reflect.TypeOf(dst)
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	out := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		name := fe.StructField()
		if sf, ok := rt.FieldByName(fe.StructField()); ok {
			if tag := sf.Tag.Get("form"); tag != "" {
				name = tag
			}
		}
		out[name] = fe.Translate(f.trans)
	}
	return out
}

var formDecoder = newFormDecoder()

// newFormDecoder reads form-tagged fields; every string value is trimmed.
func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")
	return d
}

// decodeForm fills dst from values. Fields whose value does not parse into
// the field type are reported by form name.
func decodeForm(values url.Values, dst any) fieldErrors {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}
	var derrs form.DecodeErrors
	if !errors.As(err, &derrs) {
		return fieldErrors{"": err.Error()}
	}
	out := make(fieldErrors, len(derrs))
	for name := range derrs {
		out[name] = "Valor inválido"
	}
	return out
}

// nonBlank drops the empty entries a multi-value field can carry.
func nonBlank(vs []string) []string {
	out := vs[:0]
	for _, v := range vs {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "si", "sí":
		return true
	default:
		return false
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}
