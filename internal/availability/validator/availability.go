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

// ChangeKey identifies the cell a change targets. Both come from the path.
type ChangeKey struct {
	DoctorID string `validate:"required,max=128"`
	Date     string `validate:"required,calendar_date"`
}

type AvailabilityValidator struct {
	validate *validator.Validate
}

func NewAvailabilityValidator() *AvailabilityValidator {
	v := validator.New()
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)

	return &AvailabilityValidator{
		validate: v,
	}
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := calendar.ParseDate(fl.Field().String())
	return err == nil
}

func (v *AvailabilityValidator) ValidateKey(doctorID, date string) error {
	return v.check(&ChangeKey{DoctorID: doctorID, Date: date})
}

func (v *AvailabilityValidator) ValidateUpdate(update *model.AvailabilityUpdate) error {
	if update == nil {
		return ValidationErrors{{Field: "body", Message: "request body is required"}}
	}
	return v.check(update)
}

func (v *AvailabilityValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
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
		case "max":
			msg = fmt.Sprintf("must be at most %s characters", err.Param())
		case "calendar_date":
			msg = "must be a valid YYYY-MM-DD date"
		case "oneof":
			msg = "must be vacation, blocked or null"
		}
		out = append(out, ValidationError{Field: fieldName(err), Message: msg})
	}
	return out
}

func fieldName(err validator.FieldError) string {
	switch err.Field() {
	case "DoctorID":
		return "doctor_id"
	case "Date":
		return "date"
	case "Status":
		return "status"
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
