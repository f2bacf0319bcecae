// Package serverError is the failure taxonomy shared by every operation the
// server exposes. Callers branch on Kind, never on the message text.
package serverError

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindValidation   Kind = "Validation"
	KindSolanaClient Kind = "SolanaClient"
	KindCrypto       Kind = "Crypto"
	KindToken        Kind = "Token"
	KindEncoding     Kind = "Encoding"
	KindInternal     Kind = "Internal"
	KindRateLimited  Kind = "RateLimited"
)

// messagePrefixes is the human readable prefix each kind renders with. The
// client package relies on it to recover the kind from an error envelope.
var messagePrefixes = map[Kind]string{
	KindValidation:   "Invalid input: ",
	KindSolanaClient: "Solana client error: ",
	KindCrypto:       "Cryptographic error: ",
	KindToken:        "Token program error: ",
	KindEncoding:     "Encoding error: ",
}

const (
	internalMessage    = "Internal server error"
	rateLimitedMessage = "Too many requests"
)

// ServerError carries a Kind, the caller facing message and an optional cause.
// The cause is for logs only and is never rendered by Error().
type ServerError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ServerError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindInternal:
		return internalMessage
	case KindRateLimited:
		return rateLimitedMessage
	}
	return messagePrefixes[e.Kind] + e.Message
}

func (e *ServerError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// HTTPStatus maps the kind onto the status code the transport must use.
func (e *ServerError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindCrypto, KindToken, KindEncoding:
		return http.StatusBadRequest
	case KindSolanaClient:
		return http.StatusBadGateway
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, msg string, cause error) *ServerError {
	return &ServerError{Kind: kind, Message: msg, Cause: cause}
}

func NewValidationError(format string, args ...interface{}) *ServerError {
	return newError(KindValidation, fmt.Sprintf(format, args...), nil)
}

func NewCryptoError(cause error) *ServerError {
	return newError(KindCrypto, cause.Error(), cause)
}

func NewTokenError(cause error) *ServerError {
	return newError(KindToken, cause.Error(), cause)
}

func NewEncodingError(format string, args ...interface{}) *ServerError {
	return newError(KindEncoding, fmt.Sprintf(format, args...), nil)
}

func NewSolanaClientError(cause error) *ServerError {
	return newError(KindSolanaClient, cause.Error(), cause)
}

// NewRateLimitedError is returned to clients that exceed their request budget.
func NewRateLimitedError() *ServerError {
	return newError(KindRateLimited, rateLimitedMessage, nil)
}

func NewInternalError(cause error) *ServerError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return newError(KindInternal, msg, cause)
}

// KindOf returns the kind of the first *ServerError in err's chain.
// Errors outside the taxonomy are reported as KindInternal.
func KindOf(err error) Kind {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// AsServerError classifies any error, wrapping foreign errors as internal.
func AsServerError(err error) *ServerError {
	var se *ServerError
	if errors.As(err, &se) {
		return se
	}
	return NewInternalError(err)
}

// Parse rebuilds a ServerError from a rendered message and the status code it
// was served with. Unknown prefixes fall back to the status code.
func Parse(status int, message string) *ServerError {
	for kind, prefix := range messagePrefixes {
		if strings.HasPrefix(message, prefix) {
			return newError(kind, strings.TrimPrefix(message, prefix), nil)
		}
	}
	switch {
	case status == http.StatusBadGateway:
		return newError(KindSolanaClient, message, nil)
	case status == http.StatusTooManyRequests:
		return newError(KindRateLimited, message, nil)
	case status >= 400 && status < 500:
		return newError(KindValidation, message, nil)
	default:
		return newError(KindInternal, message, nil)
	}
}
