// Package validate owns the request validator shared by gin bindings and services.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"
)

func init() {
	Validate = validator.New()
	Validate.SetTagName("binding")

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Report JSON field names instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(notBlankTag, notBlankText)
}

// RegisterCustomTranslation registers an English message for a validation tag.
func RegisterCustomTranslation(tag, text string) {
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates s and returns validator.ValidationErrors on failure.
func Struct(s interface{}) error {
	return Validate.Struct(s)
}

// Var validates a single value against tag.
func Var(field interface{}, tag string) error {
	return Validate.Var(field, tag)
}

// Errors turns a validation failure into a field -> message map.
// It returns nil when err is not a validator.ValidationErrors.
func Errors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(Translator)
	}
	return out
}

// ginValidator adapts Validate to gin's binding.StructValidator.
type ginValidator struct{}

func (ginValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return Validate.Struct(v.Interface())
}

func (ginValidator) Engine() interface{} {
	return Validate
}

// RegisterWithGin makes gin's ShouldBind* use Validate, so binding tags get
// the custom tags and translated messages.
func RegisterWithGin() {
	binding.Validator = ginValidator{}
}
