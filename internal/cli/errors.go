package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidInputError struct {
	field string
	msg   string
}

func (e invalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.field, e.msg)
}

func invalidInput(field, msg string) error {
	return invalidInputError{field: field, msg: msg}
}
