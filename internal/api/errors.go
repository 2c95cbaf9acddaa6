package api

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies request failures so callers can branch without parsing
// messages: local rejections, missing resources, and everything else.
type Kind int

const (
	KindRemote Kind = iota
	KindUnauthenticated
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "remote"
	}
}

type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-provided message when available
}

func (e *Error) Error() string { return e.Message }

func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// Unauthenticated builds a local rejection raised before any network call.
func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Validation builds a local rejection for bad input, raised before any
// network call.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindRemote
	}
}

// The upstream reports a missing cart with a plain-text message whose
// phrasing depends on the server locale. Matching these strings is a
// compatibility shim until the API grows a structured error code.
var cartNotFoundPhrases = []string{
	"not found",
	"не найдена",
}

// IsCartNotFound reports whether err is the server telling us the current
// user has no cart yet. A 404 counts, and so does any error response whose
// message matches a known phrasing of the condition.
func IsCartNotFound(err error) bool {
	var ae *Error
	if !errors.As(err, &ae) {
		return false
	}
	if ae.Kind == KindNotFound {
		return true
	}
	msg := strings.ToLower(ae.Message)
	for _, phrase := range cartNotFoundPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
