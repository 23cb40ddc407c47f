package validation

// ValidationSeverity represents the severity level of a validation issue
type ValidationSeverity int

const (
	ValidationSeverityError ValidationSeverity = iota
	ValidationSeverityWarning
)

// ValidationErrorCode represents specific validation error types
type ValidationErrorCode int

const (
	ErrorNameRequired ValidationErrorCode = iota
	ErrorNameTooLong
	ErrorInvalidEmail
	ErrorInvalidPhone
	ErrorDuplicateName
	ErrorTitleRequired
	ErrorTitleTooLong
	ErrorStartRequired
	ErrorInvalidStart
	ErrorStartInPast
	ErrorLocationTooLong
)

// ValidationError represents a specific validation issue on one form field
type ValidationError struct {
	Field    string
	Code     ValidationErrorCode
	Message  string
	Severity ValidationSeverity
}

// ValidationResult collects the issues found on a form. Warnings never block
// a save.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Field returns the first error message for field, or "".
func (r ValidationResult) Field(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (r *ValidationResult) addError(field string, code ValidationErrorCode, message string) {
	r.Errors = append(r.Errors, ValidationError{
		Field:    field,
		Code:     code,
		Message:  message,
		Severity: ValidationSeverityError,
	})
}

func (r *ValidationResult) addWarning(field string, code ValidationErrorCode, message string) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:    field,
		Code:     code,
		Message:  message,
		Severity: ValidationSeverityWarning,
	})
}
