// Package apperr defines the error taxonomy shared by every layer.
// Each error carries a stable Kind that handlers map to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers and transports.
type Kind int

const (
	Internal Kind = iota
	InvalidArgument
	Unauthenticated
	PermissionDenied
	NotFound
	Conflict
	UploadFailed
	RemoteDeleteFailed
	AssetIDResolutionFailed
	PersistFailed
)

var kindNames = map[Kind]string{
	Internal:                "internal_error",
	InvalidArgument:         "invalid_argument",
	Unauthenticated:         "unauthenticated",
	PermissionDenied:        "permission_denied",
	NotFound:                "not_found",
	Conflict:                "conflict",
	UploadFailed:            "upload_failed",
	RemoteDeleteFailed:      "remote_delete_failed",
	AssetIDResolutionFailed: "asset_id_resolution_failed",
	PersistFailed:           "persist_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Internal]
}

// HTTPStatus returns the status code equivalent of the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case InvalidArgument:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case UploadFailed, RemoteDeleteFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the kind is a 4xx-class failure.
func (k Kind) IsClientError() bool {
	status := k.HTTPStatus()
	return status >= 400 && status < 500
}

// Kind sentinels. errors.Is(err, ErrNotFound) matches any *Error of kind NotFound.
var (
	ErrInternal                = errors.New(Internal.String())
	ErrInvalidArgument         = errors.New(InvalidArgument.String())
	ErrUnauthenticated         = errors.New(Unauthenticated.String())
	ErrPermissionDenied        = errors.New(PermissionDenied.String())
	ErrNotFound                = errors.New(NotFound.String())
	ErrConflict                = errors.New(Conflict.String())
	ErrUploadFailed            = errors.New(UploadFailed.String())
	ErrRemoteDeleteFailed      = errors.New(RemoteDeleteFailed.String())
	ErrAssetIDResolutionFailed = errors.New(AssetIDResolutionFailed.String())
	ErrPersistFailed           = errors.New(PersistFailed.String())
)

var sentinels = map[Kind]error{
	Internal:                ErrInternal,
	InvalidArgument:         ErrInvalidArgument,
	Unauthenticated:         ErrUnauthenticated,
	PermissionDenied:        ErrPermissionDenied,
	NotFound:                ErrNotFound,
	Conflict:                ErrConflict,
	UploadFailed:            ErrUploadFailed,
	RemoteDeleteFailed:      ErrRemoteDeleteFailed,
	AssetIDResolutionFailed: ErrAssetIDResolutionFailed,
	PersistFailed:           ErrPersistFailed,
}

// Error is a classified error.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "upload thumbnail".
	Op string
	// Msg is the user-facing message.
	Msg string
	Err error
}

// New returns an *Error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap classifies err under kind. The op is prefixed to the message.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrapf is Wrap with a formatted user-facing message.
func Wrapf(kind Kind, op string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	msg := e.Message()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil && e.Msg != "" {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Message returns the user-facing message without the cause chain.
func (e *Error) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel of e.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// KindOf returns the kind of the first *Error in err's chain.
// Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the user-facing message for err.
// Internal errors never leak their cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message()
	}
	return "An unexpected error occurred"
}
