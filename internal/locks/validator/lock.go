package validator

import (
	"errors"
	"fmt"
	"shiftboard/pkg/calendar"
	"shiftboard/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type LockValidator struct {
	validate *validator.Validate
}

func NewLockValidator() *LockValidator {
	v := validator.New()
	_ = v.RegisterValidation("month_key", validateMonthKey)

	return &LockValidator{
		validate: v,
	}
}

// validateMonthKey accepts YYYY-MM or any valid date inside the month.
func validateMonthKey(fl validator.FieldLevel) bool {
	_, err := calendar.NormalizeMonth(fl.Field().String())
	return err == nil
}

func (v *LockValidator) ValidateUpdate(update *model.LockUpdate) error {
	if update == nil {
		return ValidationErrors{{Field: "body", Message: "request body is required"}}
	}
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *LockValidator) ValidateMonth(monthStart string) error {
	if err := v.validate.Var(monthStart, "required,month_key"); err != nil {
		return ValidationErrors{{Field: "month_start", Message: "must be YYYY-MM or YYYY-MM-DD"}}
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		msg := err.Error()
		switch err.Tag() {
		case "required":
			msg = "is required"
		case "month_key":
			msg = "must be YYYY-MM or YYYY-MM-DD"
		}
		out = append(out, ValidationError{Field: fieldName(err), Message: msg})
	}
	return out
}

func fieldName(err validator.FieldError) string {
	switch err.Field() {
	case "IsLocked":
		return "is_locked"
	}
	return err.Field()
}

// Details renders errors for an AppError details map.
func Details(err error) map[string]any {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			fields[e.Field] = e.Message
		}
		return map[string]any{"fields": fields}
	}
	return map[string]any{"error": err.Error()}
}
