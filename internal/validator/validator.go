package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/go-playground/validator/v10"
)

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterValidation("not_blank", validateNotBlank)

	return &CustomValidator{validator: v}
}

// Validate checks struct tags and reports failures as a *models.ValidationError
// keyed by the JSON field path, e.g. "care_recipients.0.name".
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := models.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return verr
}

// FieldErrors is Validate narrowed to the field map, for callers that keep
// collecting their own checks into the same error.
func (cv *CustomValidator) FieldErrors(i interface{}) (*models.ValidationError, error) {
	err := cv.Validate(i)
	if err == nil {
		return models.NewValidationError(), nil
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr, nil
	}
	return nil, err
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func fieldPath(namespace string) string {
	// drop the root struct name
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func message(fe validator.FieldError) string {
	attr := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "not_blank":
		return fmt.Sprintf("The %s field must not be blank.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s field must not have more than %s items.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s field must have at least %s items.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}
