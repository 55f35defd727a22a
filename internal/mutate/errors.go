package mutate

import "fmt"

// ValidationError means a required field was empty. The submission is
// rejected whole: no partial record is created and no store write happens.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("required field is empty: %s", e.Field)
}

// UnauthorizedError means a password comparison failed. The action is a
// no-op; the message never includes the stored password.
type UnauthorizedError struct {
	Kind string // "project" or "comment"
	Ref  string
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("wrong password for %s %q", e.Kind, e.Ref)
}

// NotFoundError means the referenced title/index is no longer present,
// typically because a concurrent delete raced this operation.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}
