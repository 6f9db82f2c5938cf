package mpdict

import "fmt"

// KeyError reports a key absent from a dictionary on a lookup that cannot
// create it.
type KeyError struct {
	Key string
	Msg string
}

func keyErrf(key string, format string, args ...any) *KeyError {
	return &KeyError{Key: key, Msg: fmt.Sprintf(format, args...)}
}

func (e *KeyError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("key %q not found", e.Key)
	}
	return fmt.Sprintf("key %q not found: %s", e.Key, e.Msg)
}

// TypeError reports a mismatch between a stored value's type and the type it
// is being accessed or deserialized as, or a structural misuse such as
// indexing into a value. Key is set when the failure is attributable to a
// specific dictionary key; nested update/extend failures wrap the inner
// error with the offending key.
type TypeError struct {
	Key string
	Msg string
	Err error
}

func typeErrf(key string, format string, args ...any) *TypeError {
	return &TypeError{Key: key, Msg: fmt.Sprintf(format, args...)}
}

// typeErrAt wraps a failure from a child operation with the key it happened
// under, so that deep update errors read top-down.
func typeErrAt(key string, err error) *TypeError {
	return &TypeError{Key: key, Err: err}
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

func (e *TypeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("at key %q: %v", e.Key, e.Err)
	}
	return e.Msg
}
