package apperrors

import "errors"

// ErrSourceUnavailable indicates the remote record source could not be reached
// (network failure, timeout, or a non-2xx transport response).
var ErrSourceUnavailable = errors.New("record source unavailable")

// ErrSourceData indicates the record source responded but flagged an
// application-level error (e.g. a GraphQL errors array).
var ErrSourceData = errors.New("record source data error")

// ErrUnknownStatus indicates an invoice carried a status outside the
// enumerated set. This guards against schema drift in the source.
var ErrUnknownStatus = errors.New("unknown invoice status")

// ErrModelUnavailable indicates the risk classifier artifact is missing or
// incompatible. Fatal for any risk-scoring request.
var ErrModelUnavailable = errors.New("risk model unavailable")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")
