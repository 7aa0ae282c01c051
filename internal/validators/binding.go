package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
)

// Register adds the clock, isodate and weekday rules to gin's binding
// validator. It must run before the router serves requests.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"clock":   validateClock,
		"isodate": validateISODate,
		"weekday": validateWeekday,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// validateClock accepts HH:MM or HH:MM:SS.
func validateClock(fl validator.FieldLevel) bool {
	_, err := clock.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := clock.ParseDate(fl.Field().String())
	return err == nil
}

// validateWeekday accepts 0 (Monday) through 6 (Sunday).
func validateWeekday(fl validator.FieldLevel) bool {
	return clock.Weekday(fl.Field().Int()).Valid()
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Describe turns a binding error into per-field messages. Errors that do
// not come from the validator yield a single entry with an empty field.
func Describe(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "clock":
		return "must be a time as HH:MM or HH:MM:SS"
	case "isodate":
		return "must be a date as YYYY-MM-DD"
	case "weekday":
		return "must be 0 (Monday) to 6 (Sunday)"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
