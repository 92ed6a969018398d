package util

import "errors"

var (
	ErrValidation            = errors.New("answers must be an array")
	ErrNotAssigned           = errors.New("student is not assigned to any batch")
	ErrProfileIncomplete     = errors.New("complete your profile before submitting assessment")
	ErrDuplicateAttempt      = errors.New("assessment already submitted. One attempt only")
	ErrAssessmentUnavailable = errors.New("assessment not available for this batch")
	ErrAssessmentExists      = errors.New("assessment already exists for this batch")
	ErrResultNotAvailable    = errors.New("result not available yet")

	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInstitutionClosed  = errors.New("institution not found or inactive")
	ErrBatchNotFound      = errors.New("batch not found")
	ErrBatchMismatch      = errors.New("institution mismatch")
	ErrBatchLevel         = errors.New("batch not available for your education level")
	ErrBatchFull          = errors.New("batch student limit reached")
	ErrPermissionDenied   = errors.New("permission denied")
)
