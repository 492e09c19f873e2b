package errors

// NewBadRequest creates an invalid-argument AppError, used when a caller passes
// a value the form cannot accept (wrong kind, malformed path).
func NewBadRequest(message string, underlyingErr error, details ...interface{}) *AppError {
	if message == "" {
		message = "The form could not accept the provided input."
	}
	return NewAppError(CodeInvalidArgument, message, underlyingErr, details...)
}

// NewNotFound creates a not-found AppError, used for unknown fields, groups and identities.
func NewNotFound(message string, underlyingErr error, details ...interface{}) *AppError {
	if message == "" {
		message = "The requested field could not be found."
	}
	return NewAppError(CodeNotFound, message, underlyingErr, details...)
}

// NewConflict creates a conflict AppError, used for duplicate declarations.
func NewConflict(message string, underlyingErr error, details ...interface{}) *AppError {
	if message == "" {
		message = "The declaration conflicts with an existing one."
	}
	return NewAppError(CodeConflict, message, underlyingErr, details...)
}

// NewInternalServerError creates an internal AppError.
func NewInternalServerError(message string, underlyingErr error, details ...interface{}) *AppError {
	if message == "" {
		message = "An unexpected error occurred."
	}
	return NewAppError(CodeInternal, message, underlyingErr, details...)
}

// NewValidationFailed creates a validation AppError. The formatted validation errors are
// appended to the details, so a blocked submission carries its ErrorMap.
func NewValidationFailed(message string, underlyingErr error, details ...interface{}) *AppError {
	formattedValidationErrors := FormatValidationErrors(underlyingErr)
	if formattedValidationErrors != nil {
		details = append(details, formattedValidationErrors)
	}
	if message == "" {
		message = "Input validation failed."
	}
	return NewAppError(CodeValidationFailed, message, underlyingErr, details...)
}
