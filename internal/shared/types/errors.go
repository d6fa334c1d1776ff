package types

import (
	"errors"
	"net/http"

	"github.com/aws/smithy-go"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
)

// ErrorKind is the failure taxonomy exposed by the API.
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindAuthenticationFailure ErrorKind = "authentication_failure"
	KindAuthorizationFailure  ErrorKind = "authorization_failure"
	KindUpstreamFailure       ErrorKind = "upstream_failure"
)

// BillingError is a classified failure carrying everything the HTTP layer
// needs to build an error response: the taxonomy kind, the status code, and
// the machine-readable/human-readable message pair of the legacy contract.
type BillingError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
	cause      error
}

func (e *BillingError) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *BillingError) Unwrap() error {
	return e.cause
}

// NewInvalidMonthError builds the client error for a malformed month
// parameter.
func NewInvalidMonthError(cause error) *BillingError {
	return &BillingError{
		Kind:       KindInvalidInput,
		StatusCode: http.StatusBadRequest,
		Code:       "Invalid month format",
		Message:    "Month must be in YYYY-MM format",
		cause:      cause,
	}
}

// ClassifyAWSError maps an upstream failure onto the error taxonomy. Cost
// Explorer reports credential problems as UnrecognizedClientException and a
// missing ce:GetCostAndUsage permission as AccessDeniedException; everything
// else is a generic upstream failure with the message passed through.
func ClassifyAWSError(err error) *BillingError {
	var be *BillingError
	if errors.As(err, &be) {
		return be
	}
	if errors.Is(err, entity.ErrInvalidMonth) {
		return NewInvalidMonthError(err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException":
			return &BillingError{
				Kind:       KindAuthenticationFailure,
				StatusCode: http.StatusUnauthorized,
				Code:       "Authentication failed",
				Message:    "Invalid AWS credentials. Please check your AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.",
				cause:      err,
			}
		case "AccessDeniedException":
			return &BillingError{
				Kind:       KindAuthorizationFailure,
				StatusCode: http.StatusForbidden,
				Code:       "Access denied",
				Message:    "Insufficient permissions. Your AWS credentials don't have access to Cost Explorer API.",
				cause:      err,
			}
		}
	}

	return &BillingError{
		Kind:       KindUpstreamFailure,
		StatusCode: http.StatusInternalServerError,
		Code:       "Failed to retrieve billing data",
		Message:    err.Error(),
		cause:      err,
	}
}
