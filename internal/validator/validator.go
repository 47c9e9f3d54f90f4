package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// trans is the singleton English translator for validation errors.
	trans     ut.Translator
	setupOnce sync.Once
)

// Setup registers the validator with English translations on Gin's binding engine.
// Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Report fields by their query/json name rather than the Go name.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	})
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// BindQuery binds and validates the query string into dst.
// Returns nil on success or a translated field error map on failure.
func BindQuery(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindQuery(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
