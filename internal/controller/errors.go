package controller

import (
	"encoding/json"
	"fmt"
)

// ErrorKind tags an ErrorDescriptor.
type ErrorKind int

// Error kinds. The set is closed.
const (
	KindMissingParam ErrorKind = iota + 1
	KindInvalidParam
	KindServerError
)

// String returns the name the kind is serialized under.
func (k ErrorKind) String() string {
	switch k {
	case KindMissingParam:
		return "MissingParamError"
	case KindInvalidParam:
		return "InvalidParamError"
	case KindServerError:
		return "ServerError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrorDescriptor is the body of every non-200 envelope.
// Param is set for the missing and invalid param kinds only.
type ErrorDescriptor struct {
	Kind  ErrorKind
	Param string
}

// MissingParam reports a required field that was absent or empty.
func MissingParam(field string) ErrorDescriptor {
	return ErrorDescriptor{Kind: KindMissingParam, Param: field}
}

// InvalidParam reports a field that broke a semantic rule.
func InvalidParam(field string) ErrorDescriptor {
	return ErrorDescriptor{Kind: KindInvalidParam, Param: field}
}

// InternalError reports an unexpected collaborator fault.
// It never carries the fault itself.
func InternalError() ErrorDescriptor {
	return ErrorDescriptor{Kind: KindServerError}
}

// Message renders the human-readable message for the descriptor.
func (e ErrorDescriptor) Message() string {
	switch e.Kind {
	case KindMissingParam:
		return "Missing param: " + e.Param
	case KindInvalidParam:
		return "Invalid param: " + e.Param
	default:
		return "Internal server error"
	}
}

// Error implements error.
func (e ErrorDescriptor) Error() string {
	return e.Message()
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// MarshalJSON renders {"error": kind, "message": msg, "param": field}.
func (e ErrorDescriptor) MarshalJSON() ([]byte, error) {
	body := errorBody{
		Error:   e.Kind.String(),
		Message: e.Message(),
	}
	if e.Kind != KindServerError {
		body.Param = e.Param
	}
	return json.Marshal(body)
}
