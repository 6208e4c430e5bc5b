package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/jwt"
	"github.com/wtorkanorka/BlogSynergy/log"
	"github.com/wtorkanorka/BlogSynergy/server"
)

func TestRegisterHTTPRoutes_Me(t *testing.T) {
	key := []byte("test-key")
	repo := NewInMemRepository()
	alice := User{ID: "u-alice", FirstName: "Alice", Role: RoleAuthor}
	require.NoError(t, repo.Upsert(context.Background(), &alice))

	srv := server.New(log.Discard(), false)
	RegisterHTTPRoutes(srv, NewAuthenticator(repo, 0, time.Minute), key, log.Discard(), false)

	token, err := jwt.NewEncodeDecoder(key).Encode(alice.ID)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/auth/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, alice, body.Data)

	// No token
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token for somebody else's key
	forged, err := jwt.NewEncodeDecoder([]byte("other-key")).Encode(alice.ID)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/auth/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
