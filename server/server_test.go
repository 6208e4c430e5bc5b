package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/log"
)

func TestServer_RegisterHandler(t *testing.T) {
	srv := New(log.Discard(), false)
	srv.RegisterHandler("/things/:id/parts/:part", "GET", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := Params(r.Context())
		fmt.Fprintf(w, "%s-%s", params["id"], params["part"])
	}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/things/42/parts/wheel", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42-wheel", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/things/42/parts/wheel", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_PingAndMetrics(t *testing.T) {
	srv := New(log.Discard(), false)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": "ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParams_Missing(t *testing.T) {
	assert.NotNil(t, Params(context.Background()))
}

func TestErrorEncoder(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	var tts = map[string]struct {
		Err      error
		Debug    bool
		Code     int
		Expected errorBody
	}{
		"not found": {
			Err:      errors.New("No post for id 1", errors.NotFound()),
			Code:     http.StatusNotFound,
			Expected: errorBody{Kind: "not_found", Message: "No post for id 1"},
		},
		"conflict with reason": {
			Err:      errors.New("already there", errors.Conflict(), errors.WithReason("already_subscribed")),
			Code:     http.StatusConflict,
			Expected: errorBody{Kind: "conflict", Reason: "already_subscribed", Message: "already there"},
		},
		"internal hides the cause": {
			Err:      errors.New("could not get post", errors.WithCause(cause)),
			Code:     http.StatusInternalServerError,
			Expected: errorBody{Kind: "internal", Message: "internal error"},
		},
		"internal in debug": {
			Err:      errors.New("could not get post", errors.WithCause(cause)),
			Debug:    true,
			Code:     http.StatusInternalServerError,
			Expected: errorBody{Kind: "internal", Message: "could not get post", Detail: "connection refused"},
		},
		"plain error": {
			Err:      fmt.Errorf("boom"),
			Code:     http.StatusInternalServerError,
			Expected: errorBody{Kind: "internal", Message: "internal error"},
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorEncoder(log.Discard(), tt.Debug)(context.Background(), tt.Err, rec)

			assert.Equal(t, tt.Code, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body struct {
				Error errorBody `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.Expected, body.Error)
		})
	}
}
