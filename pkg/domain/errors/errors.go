// Typed errors shared across the domain.
//
// Handlers map these to HTTP statuses; background tasks record their
// messages as the task's failure reason. Every constructor wraps with
// caller information via pkg/errors.
package errors

import (
	"errors"
	"fmt"

	xe "github.com/modelplane/modelplane/pkg/errors"
)

type wrappingError struct {
	message  string
	causedBy error
}

func as[E error](err error) bool {
	if err == nil {
		return false
	}
	p := new(E)
	return errors.As(err, p)
}

func format(e wrappingError) string {
	if e.causedBy == nil {
		return e.message
	}
	if e.message == "" {
		return fmt.Sprintf("caused by: %+v", e.causedBy)
	}
	return fmt.Sprintf("%s / caused by: %+v", e.message, e.causedBy)
}

// The caller's project role does not allow the requested action.
type ErrUnauthorized struct {
	Action  string
	Project string
}

var AsUnauthorized = as[*ErrUnauthorized]

func NewUnauthorized(action string, project string) error {
	return xe.WrapAsOuter(&ErrUnauthorized{Action: action, Project: project}, 1)
}

func (e *ErrUnauthorized) Error() string {
	if e.Project == "" {
		return fmt.Sprintf("user cannot perform %s", e.Action)
	}
	return fmt.Sprintf("user cannot perform %s for project %s", e.Action, e.Project)
}

// Requested entity (project, user, model, task, ...) does not exist.
type ErrNotFound wrappingError

var AsNotFound = as[*ErrNotFound]

func NewNotFound(message string) error {
	return xe.WrapAsOuter(&ErrNotFound{message: message}, 1)
}

func NewNotFoundCausedBy(message string, err error) error {
	return xe.WrapAsOuter(&ErrNotFound{message: message, causedBy: err}, 1)
}

func (e *ErrNotFound) Error() string {
	return format(wrappingError(*e))
}

func (e *ErrNotFound) Unwrap() error {
	return e.causedBy
}

// Entity with the same identity already exists.
type ErrAlreadyExists wrappingError

var AsAlreadyExists = as[*ErrAlreadyExists]

func NewAlreadyExists(message string) error {
	return xe.WrapAsOuter(&ErrAlreadyExists{message: message}, 1)
}

func NewAlreadyExistsCausedBy(message string, err error) error {
	return xe.WrapAsOuter(&ErrAlreadyExists{message: message, causedBy: err}, 1)
}

func (e *ErrAlreadyExists) Error() string {
	return format(wrappingError(*e))
}

func (e *ErrAlreadyExists) Unwrap() error {
	return e.causedBy
}

// The container image build exited non-zero.
type ErrBuildFailed wrappingError

var AsBuildFailed = as[*ErrBuildFailed]

func NewBuildFailed(message string) error {
	return xe.WrapAsOuter(&ErrBuildFailed{message: message}, 1)
}

func NewBuildFailedCausedBy(message string, err error) error {
	return xe.WrapAsOuter(&ErrBuildFailed{message: message, causedBy: err}, 1)
}

func (e *ErrBuildFailed) Error() string {
	return format(wrappingError(*e))
}

func (e *ErrBuildFailed) Unwrap() error {
	return e.causedBy
}

// A cluster API call failed with a status other than "not found" on a
// delete path.
type ErrCluster wrappingError

var AsClusterError = as[*ErrCluster]

func NewClusterError(message string) error {
	return xe.WrapAsOuter(&ErrCluster{message: message}, 1)
}

func NewClusterErrorCausedBy(message string, err error) error {
	return xe.WrapAsOuter(&ErrCluster{message: message, causedBy: err}, 1)
}

func (e *ErrCluster) Error() string {
	return format(wrappingError(*e))
}

func (e *ErrCluster) Unwrap() error {
	return e.causedBy
}

// The artifact registry could not be reached.
//
// Pool construction failures carry this; they are never cached, so the
// next call retries construction.
type ErrRegistryUnreachable wrappingError

var AsRegistryUnreachable = as[*ErrRegistryUnreachable]

func NewRegistryUnreachable(message string) error {
	return xe.WrapAsOuter(&ErrRegistryUnreachable{message: message}, 1)
}

func NewRegistryUnreachableCausedBy(message string, err error) error {
	return xe.WrapAsOuter(&ErrRegistryUnreachable{message: message, causedBy: err}, 1)
}

func (e *ErrRegistryUnreachable) Error() string {
	return format(wrappingError(*e))
}

func (e *ErrRegistryUnreachable) Unwrap() error {
	return e.causedBy
}
