package approval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"steward/core"
	"steward/service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/boards/board-1/approvals", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "a", "status": "pending", "created_at": "2024-01-01T00:00:00Z", "confidence": 95},
			{"id": "b", "status": "approved", "created_at": "junk", "confidence": 60},
		})
	}))
	defer srv.Close()

	api := New(Config{APIBase: srv.URL}, session.Static("test-token"))

	approvals, err := api.List(context.Background(), "board-1")
	require.Nil(t, err)
	require.Len(t, approvals, 2)
	assert.Equal(t, "a", approvals[0].ID)
	assert.True(t, approvals[0].CreatedAt.Valid())
	assert.False(t, approvals[1].CreatedAt.Valid(), "junk timestamp decodes as invalid")
	assert.Equal(t, "95", approvals[0].Confidence.String())
}

func TestListEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ", r.Header.Get("Authorization"))
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	api := New(Config{APIBase: srv.URL}, nil)

	approvals, err := api.List(context.Background(), "board-1")
	require.Nil(t, err)
	assert.Len(t, approvals, 0)
}

func TestUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/api/v1/boards/board-1/approvals/a", r.URL.Path)

		var body map[string]string
		require.Nil(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "approved", body["status"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "a",
			"status":      "approved",
			"resolved_at": "2024-01-05T00:00:00Z",
		})
	}))
	defer srv.Close()

	api := New(Config{APIBase: srv.URL}, session.Static("test-token"))

	updated, err := api.Update(context.Background(), "board-1", "a", core.ApprovalStatusApproved)
	require.Nil(t, err)
	assert.Equal(t, core.ApprovalStatusApproved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Valid())
}

func TestUpdateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{"code": 100103, "msg": "approval already resolved"})
	}))
	defer srv.Close()

	api := New(Config{APIBase: srv.URL}, session.Static("test-token"))

	_, err := api.Update(context.Background(), "board-1", "a", core.ApprovalStatusApproved)
	require.NotNil(t, err)

	terr, ok := err.(twirp.Error)
	require.True(t, ok)
	assert.Equal(t, twirp.FailedPrecondition, terr.Code())
	assert.Equal(t, "approval already resolved", terr.Msg())
}

func TestListFailureWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := New(Config{APIBase: srv.URL}, session.Static("test-token"))

	_, err := api.List(context.Background(), "board-1")
	require.NotNil(t, err)

	terr, ok := err.(twirp.Error)
	require.True(t, ok)
	assert.Equal(t, twirp.Internal, terr.Code())
	assert.Equal(t, "", terr.Msg(), "no server envelope means no message")
}
