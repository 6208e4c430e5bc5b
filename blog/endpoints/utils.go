package endpoints

import (
	"github.com/wtorkanorka/BlogSynergy/errors"
)

// Variables and functions for specific errors
var (
	errInvalidRequest = errors.New("invalid request", errors.BadRequest())
)

func data(v interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": v,
	}
}
