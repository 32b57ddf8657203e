package dom

import (
	"fmt"

	"github.com/heathj/domcore/webidl"
	"github.com/pkg/errors"
)

// Exception names, https://webidl.spec.whatwg.org/#idl-DOMException-error-names
const (
	HierarchyRequestError webidl.DOMString = "HierarchyRequestError"
	NotFoundError         webidl.DOMString = "NotFoundError"
	InvalidStateError     webidl.DOMString = "InvalidStateError"
	NotSupportedError     webidl.DOMString = "NotSupportedError"
	IndexSizeError        webidl.DOMString = "IndexSizeError"
)

// DOMException is https://webidl.spec.whatwg.org/#idl-DOMException. All
// expected failures of the mutation APIs are reported as *DOMException
// values; the core never panics on a validation failure.
type DOMException struct {
	Name    webidl.DOMString
	Message string
}

func (e *DOMException) Error() string {
	return string(e.Name) + ": " + e.Message
}

func domError(name webidl.DOMString, format string, args ...interface{}) error {
	return errors.WithStack(&DOMException{
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	})
}

func hierarchyRequestError(format string, args ...interface{}) error {
	return domError(HierarchyRequestError, format, args...)
}

func notFoundError(format string, args ...interface{}) error {
	return domError(NotFoundError, format, args...)
}

func notSupportedError(format string, args ...interface{}) error {
	return domError(NotSupportedError, format, args...)
}

func indexSizeError(format string, args ...interface{}) error {
	return domError(IndexSizeError, format, args...)
}

// IsDOMException reports whether err is (or wraps) a DOMException with the
// given name.
func IsDOMException(err error, name webidl.DOMString) bool {
	if err == nil {
		return false
	}
	if e, ok := errors.Cause(err).(*DOMException); ok {
		return e.Name == name
	}
	return false
}
