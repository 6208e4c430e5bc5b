package services

import (
	"fmt"
	"time"

	"github.com/wtorkanorka/BlogSynergy/errors"
)

const reasonInconsistent = "inconsistent"

// errPostNotFound returns a 404 for when a post could not be found.
func errPostNotFound(id string) error {
	return errors.New(fmt.Sprintf("No post for id %s", id), errors.NotFound())
}

// errStore wraps a failure of a storage collaborator in a 500.
func errStore(msg string, cause error) error {
	return errors.New(msg, errors.WithCause(cause))
}

// errInconsistent reports a write that went through on the store but not on
// one of the indexes.
func errInconsistent(msg string, cause error) error {
	return errors.New(msg, errors.WithCause(cause), errors.WithReason(reasonInconsistent))
}

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
