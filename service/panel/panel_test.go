package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"steward/core"
	"steward/service/approval"
	"steward/service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

type fakeAPI struct {
	list   func(ctx context.Context, boardID string) ([]*core.Approval, error)
	update func(ctx context.Context, boardID, approvalID string, status core.ApprovalStatus) (*core.Approval, error)
	calls  int
}

func (f *fakeAPI) List(ctx context.Context, boardID string) ([]*core.Approval, error) {
	f.calls++
	return f.list(ctx, boardID)
}

func (f *fakeAPI) Create(ctx context.Context, boardID string, approval *core.Approval) (*core.Approval, error) {
	return approval, nil
}

func (f *fakeAPI) Update(ctx context.Context, boardID, approvalID string, status core.ApprovalStatus) (*core.Approval, error) {
	f.calls++
	return f.update(ctx, boardID, approvalID, status)
}

func queue() []*core.Approval {
	return []*core.Approval{
		{ID: "a", Status: core.ApprovalStatusPending, CreatedAt: core.ParseTimestamp("2024-01-01T00:00:00Z")},
		{ID: "b", Status: core.ApprovalStatusPending, CreatedAt: core.ParseTimestamp("2024-01-02T00:00:00Z")},
	}
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{
		list: func(ctx context.Context, boardID string) ([]*core.Approval, error) {
			assert.Equal(t, "board-1", boardID)
			return queue(), nil
		},
	}

	p := New("board-1", api, session.Static("token"))
	require.Nil(t, p.Refresh(ctx))

	snapshot := p.Snapshot()
	assert.Len(t, snapshot.Approvals, 2)
	assert.False(t, snapshot.Loading)
	assert.Equal(t, "", snapshot.Err)
}

func TestRefreshFailureKeepsData(t *testing.T) {
	ctx := context.Background()

	healthy := true
	api := &fakeAPI{}
	api.list = func(ctx context.Context, boardID string) ([]*core.Approval, error) {
		if healthy {
			return queue(), nil
		}
		return nil, twirp.NewError(twirp.Internal, "")
	}

	p := New("board-1", api, session.Static("token"))
	require.Nil(t, p.Refresh(ctx))

	healthy = false
	require.NotNil(t, p.Refresh(ctx))

	snapshot := p.Snapshot()
	assert.Len(t, snapshot.Approvals, 2, "previous data untouched")
	assert.Equal(t, MsgLoadFailed, snapshot.Err)
	assert.False(t, snapshot.Loading)
}

func TestRefreshSignedOutIsNoop(t *testing.T) {
	api := &fakeAPI{}

	p := New("board-1", api, session.Static(""))
	require.Nil(t, p.Refresh(context.Background()))
	assert.Equal(t, 0, api.calls)

	p = New("", api, session.Static("token"))
	require.Nil(t, p.Refresh(context.Background()))
	assert.Equal(t, 0, api.calls)
}

func TestDecideReplacesOnlyTarget(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{
		list: func(ctx context.Context, boardID string) ([]*core.Approval, error) {
			return queue(), nil
		},
		update: func(ctx context.Context, boardID, approvalID string, status core.ApprovalStatus) (*core.Approval, error) {
			resolved := core.ParseTimestamp("2024-01-03T00:00:00Z")
			return &core.Approval{
				ID:         approvalID,
				Status:     status,
				CreatedAt:  core.ParseTimestamp("2024-01-01T00:00:00Z"),
				ResolvedAt: &resolved,
			}, nil
		},
	}

	p := New("board-1", api, session.Static("token"))
	require.Nil(t, p.Refresh(ctx))
	require.Nil(t, p.Decide(ctx, "a", core.ApprovalStatusApproved))

	snapshot := p.Snapshot()
	require.Len(t, snapshot.Approvals, 2)
	assert.Equal(t, core.ApprovalStatusApproved, snapshot.Approvals[0].Status)
	require.NotNil(t, snapshot.Approvals[0].ResolvedAt)
	assert.Equal(t, core.ApprovalStatusPending, snapshot.Approvals[1].Status, "untargeted record untouched")
	assert.Equal(t, "", snapshot.Err)
	assert.False(t, p.Updating("a"))
}

func TestDecideFailure(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{
		list: func(ctx context.Context, boardID string) ([]*core.Approval, error) {
			return queue(), nil
		},
		update: func(ctx context.Context, boardID, approvalID string, status core.ApprovalStatus) (*core.Approval, error) {
			return nil, twirp.NewError(twirp.Internal, "")
		},
	}

	p := New("board-1", api, session.Static("token"))
	require.Nil(t, p.Refresh(ctx))
	require.NotNil(t, p.Decide(ctx, "a", core.ApprovalStatusRejected))

	snapshot := p.Snapshot()
	assert.Equal(t, MsgUpdateFailed, snapshot.Err)
	assert.Equal(t, core.ApprovalStatusPending, snapshot.Approvals[0].Status, "state unchanged")
	assert.False(t, p.Updating("a"), "marker cleared on failure")
}

func TestDecideServerMessagePreferred(t *testing.T) {
	api := &fakeAPI{
		list: func(ctx context.Context, boardID string) ([]*core.Approval, error) {
			return queue(), nil
		},
		update: func(ctx context.Context, boardID, approvalID string, status core.ApprovalStatus) (*core.Approval, error) {
			return nil, twirp.NewError(twirp.FailedPrecondition, "approval already resolved")
		},
	}

	p := New("board-1", api, session.Static("token"))
	require.NotNil(t, p.Decide(context.Background(), "a", core.ApprovalStatusApproved))
	assert.Equal(t, "approval already resolved", p.Snapshot().Err)
}

func TestFallbackMessages(t *testing.T) {
	// a server that fails without the {code, msg} envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx := context.Background()
	api := approval.New(approval.Config{APIBase: srv.URL}, session.Static("token"))
	p := New("board-1", api, session.Static("token"))

	require.NotNil(t, p.Refresh(ctx))
	assert.Equal(t, MsgLoadFailed, p.Snapshot().Err)

	require.NotNil(t, p.Decide(ctx, "a", core.ApprovalStatusApproved))
	assert.Equal(t, MsgUpdateFailed, p.Snapshot().Err)
}

func TestDecideDelegates(t *testing.T) {
	api := &fakeAPI{}

	var gotID string
	var gotStatus core.ApprovalStatus
	p := New("board-1", api, session.Static("token"), WithDecisionHandler(
		func(ctx context.Context, approvalID string, status core.ApprovalStatus) error {
			gotID, gotStatus = approvalID, status
			return nil
		}))

	require.Nil(t, p.Decide(context.Background(), "a", core.ApprovalStatusApproved))
	assert.Equal(t, "a", gotID)
	assert.Equal(t, core.ApprovalStatusApproved, gotStatus)
	assert.Equal(t, 0, api.calls, "no network call of its own")
}
