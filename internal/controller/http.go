package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Signup request field names, in validation order.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "passwordConfirmation"
)

// Param is one optional request field as received on the wire.
type Param struct {
	Value string
	// Present is false when the key was absent, null, false or zero.
	Present bool
	// NotString is set when the value was truthy but not a JSON string.
	NotString bool
}

// StringParam returns a present string Param.
func StringParam(value string) Param {
	return Param{Value: value, Present: true}
}

func (p Param) missing() bool {
	return !p.Present || (!p.NotString && p.Value == "")
}

// SignupRequest is the signup body. Any field may be absent or malformed;
// nothing is enforced until the controller validates it.
type SignupRequest struct {
	Name                 Param
	Email                Param
	Password             Param
	PasswordConfirmation Param
}

type namedParam struct {
	name  string
	param Param
}

// ordered lists the required fields in the fixed validation order.
func (r SignupRequest) ordered() []namedParam {
	return []namedParam{
		{FieldName, r.Name},
		{FieldEmail, r.Email},
		{FieldPassword, r.Password},
		{FieldPasswordConfirmation, r.PasswordConfirmation},
	}
}

// UnmarshalJSON decodes a JSON object into presence-tracked params.
// Unknown keys are ignored.
func (r *SignupRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Name = decodeParam(raw[FieldName])
	r.Email = decodeParam(raw[FieldEmail])
	r.Password = decodeParam(raw[FieldPassword])
	r.PasswordConfirmation = decodeParam(raw[FieldPasswordConfirmation])
	return nil
}

func decodeParam(raw json.RawMessage) Param {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Param{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		if isFalsy(raw) {
			return Param{}
		}
		return Param{Present: true, NotString: true}
	}
	return StringParam(s)
}

// isFalsy reports whether a non-string JSON value is false or zero.
// Such values count as missing, like null and "".
func isFalsy(raw json.RawMessage) bool {
	if bytes.Equal(raw, []byte("false")) {
		return true
	}
	var n float64
	return json.Unmarshal(raw, &n) == nil && n == 0
}

// Request is the transport-agnostic request handed to a controller.
type Request struct {
	Body SignupRequest
}

// Response is the envelope every controller call produces exactly once.
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// BadRequest wraps err in a 400 envelope.
func BadRequest(err ErrorDescriptor) Response {
	return Response{StatusCode: http.StatusBadRequest, Body: err}
}

// OK wraps data in a 200 envelope.
func OK(data any) Response {
	return Response{StatusCode: http.StatusOK, Body: data}
}

// ServerError wraps err in a 500 envelope.
func ServerError(err ErrorDescriptor) Response {
	return Response{StatusCode: http.StatusInternalServerError, Body: err}
}
