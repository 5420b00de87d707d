// Package validation holds the process-wide struct validator used by request
// DTOs and configuration.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/robfig/cron/v3"
)

type Service struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Service
)

// Get returns the validator singleton, initializing on first use.
func Get() *Service {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// report json / yaml names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "yaml"} {
				tag := fld.Tag.Get(key)
				if idx := strings.Index(tag, ","); idx >= 0 {
					tag = tag[:idx]
				}
				if tag != "" && tag != "-" {
					return tag
				}
			}
			return fld.Name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerCronSpec(v, trans)

		svc = &Service{Validator: v, Translator: trans}
	})
	return svc
}

// Struct validates s and returns the first failure as a readable error.
func Struct(s any) error {
	err := Get().Validator.Struct(s)
	if err == nil {
		return nil
	}
	_, msg := FieldAndMessage(err)
	return errors.New(msg)
}

// FieldAndMessage returns the first failing field and its translated message.
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return "", inv.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// registerCronSpec adds the "cron" tag: a standard five-field schedule.
func registerCronSpec(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
		_, err := cronParser.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterTranslation("cron", trans,
		func(ut ut.Translator) error {
			return ut.Add("cron", "{0} must be a five-field cron schedule", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("cron", fe.Field())
			return t
		},
	)
}
