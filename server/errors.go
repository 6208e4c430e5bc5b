package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/log"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorEncoder writes errors as {"error": {...}} with the status code they
// carry. Internal errors are logged. The cause chain is only sent when debug
// is set.
func ErrorEncoder(logger log.Logger, debug bool) kithttp.ErrorEncoder {
	return func(_ context.Context, err error, w http.ResponseWriter) {
		body := errorBody{
			Kind:    errors.Kind(err),
			Message: err.Error(),
		}

		code := errors.Code(err)
		var e errors.Error
		if stderrors.As(err, &e) {
			body.Reason = e.Reason()
			body.Message = e.Message()
			if debug && e.Cause() != nil {
				body.Detail = e.Cause().Error()
			}
		}

		if body.Kind == errors.KindInternal {
			logger.Errorf("internal error: %v", err)
			if !debug {
				body.Message = "internal error"
			}
			code = http.StatusInternalServerError
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": body,
		})
	}
}
