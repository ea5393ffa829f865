package function

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// NoPayload is what PayloadText reports when the function returned nothing.
const NoPayload = "<no payload>"

// Invoker calls a named remote function synchronously.
//
// A non-nil error always means the call itself did not complete (network,
// permission, throttling, context expiry) and is an *InvocationError. A
// function that ran and reported a failure comes back as a Result with a
// non-empty FunctionError and a nil error.
type Invoker interface {
	Invoke(ctx context.Context, name string, payload []byte) (*Result, error)
}

// Result is the outcome of a completed invocation.
type Result struct {
	StatusCode    int32
	Payload       []byte
	FunctionError string
}

// PayloadText returns the payload as text, or NoPayload when it is empty.
func (r *Result) PayloadText() string {
	if r == nil || len(r.Payload) == 0 {
		return NoPayload
	}
	return string(r.Payload)
}

// Err converts a reported function failure into a *FunctionError. It returns
// nil when the function succeeded.
func (r *Result) Err(name string) error {
	if r == nil || r.FunctionError == "" {
		return nil
	}
	return &FunctionError{Function: name, Kind: r.FunctionError, Payload: r.PayloadText()}
}

// InvocationError is a transport or infrastructure failure.
type InvocationError struct {
	Function string
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Function, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Code returns the AWS API error code (e.g. TooManyRequestsException) when
// the cause carries one.
func (e *InvocationError) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// FunctionError is an application-level failure reported by the function
// along with whatever payload it returned.
type FunctionError struct {
	Function string
	Kind     string
	Payload  string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function %s failed: %s payload=%s", e.Function, e.Kind, e.Payload)
}
