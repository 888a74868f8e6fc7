package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrRateUnavailable indicates that a fresh exchange rate could not be
// obtained from the remote provider.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrMalformedResponse indicates that the rate provider returned a body
// that could not be decoded or carried an unusable rate.
var ErrMalformedResponse = errors.New("malformed provider response")
