package loader

import (
	"errors"
	"fmt"
)

// ErrFetch is the single error kind a forecast request can settle with.
// Transport failures, non-2xx statuses and unreadable bodies all wrap it.
var ErrFetch = errors.New("forecast fetch failed")

// FetchError wraps the underlying cause of a failed forecast request.
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string {
	if e.Cause == nil {
		return ErrFetch.Error()
	}
	return fmt.Sprintf("%s: %v", ErrFetch, e.Cause)
}

func (e *FetchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Cause}
}

// Outcome is the terminal result of one forecast request: either a
// success carrying the response payload or a failure carrying its reason.
// The zero value is not a valid Outcome; use Succeeded or Failed.
type Outcome struct {
	ok      bool
	content []byte
	err     error
}

// Succeeded returns a successful Outcome carrying content.
func Succeeded(content []byte) Outcome {
	return Outcome{ok: true, content: content}
}

// Failed returns a failed Outcome. A nil or non-FetchError cause is wrapped
// in a FetchError.
func Failed(cause error) Outcome {
	var fe *FetchError
	if !errors.As(cause, &fe) {
		fe = &FetchError{Cause: cause}
	}
	return Outcome{err: fe}
}

// Match calls exactly one of the two handlers. Both must be provided.
func (o Outcome) Match(onSuccess func(content []byte), onFailure func(err error)) {
	if o.ok {
		onSuccess(o.content)
		return
	}
	err := o.err
	if err == nil {
		err = &FetchError{}
	}
	onFailure(err)
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.ok }

// Status strings reported by jQuery-style completion handlers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OutcomeFromStatus maps a textual completion status onto an Outcome.
// Any status other than "success" or "error" reports ok=false and callers
// must leave the UI untouched.
func OutcomeFromStatus(status string, payload []byte) (Outcome, bool) {
	switch status {
	case StatusSuccess:
		return Succeeded(payload), true
	case StatusError:
		return Failed(fmt.Errorf("status %q", status)), true
	default:
		return Outcome{}, false
	}
}
