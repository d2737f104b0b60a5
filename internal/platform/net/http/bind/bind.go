// Package bind decodes and validates request payloads with go-playground/validator
// and maps failures onto project errors
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "snipjar/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tags
type FieldLevel = validator.FieldLevel

// ValidatorSvc is the process validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var get = sync.OnceValue(func() *ValidatorSvc {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	svc := &ValidatorSvc{Validator: v, Translator: trans}
	svc.message("min", "{0} must be at least {1}", true)
	svc.message("max", "{0} must be at most {1}", true)
	return svc
})

// Get returns the process validator
func Get() *ValidatorSvc { return get() }

func (s *ValidatorSvc) message(tag, text string, withParam bool) {
	_ = s.Validator.RegisterTranslation(tag, s.Translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			if withParam {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			}
			msg, _ := t.T(tag, fe.Field())
			return msg
		},
	)
}

// RegisterValidation adds a custom tag whose failures read "<field> <message>"
func RegisterValidation(tag string, fn validator.Func, message string) error {
	s := Get()
	if err := s.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	s.message(tag, "{0} "+message, false)
	return nil
}

// JSONOptions controls ParseJSON
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
}

// DefaultMaxBytes caps request bodies when JSONOptions does not
const DefaultMaxBytes = 1 << 20

// ParseJSON decodes exactly one JSON value into T and validates it.
// Oversized bodies map to ErrorCodeTooLarge, decode failures to ErrorCodeJSON,
// and validation failures to ErrorCodeValidation with the offending field
func ParseJSON[T any](w http.ResponseWriter, r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := JSONOptions{MaxBytes: DefaultMaxBytes, DisallowUnknown: true}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	body := http.MaxBytesReader(w, r.Body, o.MaxBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		if e, ok := perr.As(err); ok {
			// coded errors come from UnmarshalJSON on domain types
			return zero, e
		}
		switch {
		case errors.As(err, &tooBig):
			return zero, perr.TooLargef("request body exceeds %d bytes", o.MaxBytes)
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		default:
			return zero, perr.JSONErrf("invalid JSON: %v", err)
		}
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct validation and returns a project error
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}

// ValidationFieldAndMessage returns the first failing field and its translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fe.Translate(Get().Translator)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

// QueryInt reads an integer query parameter clamped to [lo, hi]; blank yields def
func QueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", key), key)
	}
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	return n, nil
}
