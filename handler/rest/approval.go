package rest

import (
	"context"
	"net/http"
	"time"

	"steward/core"
	"steward/handler/param"
	"steward/handler/render"
	"steward/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

func requireUser(ctx context.Context) (*core.User, error) {
	user, ok := request.NewContext(ctx).GetUser()
	if !ok {
		return nil, twirp.NewError(twirp.Unauthenticated, "authentication required").
			WithMeta("code", core.ErrUnauthorized.String())
	}

	return user, nil
}

func fetchBoard(ctx context.Context, boardStore core.BoardStore, boardID string, user *core.User) (*core.Board, error) {
	board, notfound, err := boardStore.Find(ctx, boardID)
	if err != nil {
		if notfound {
			return nil, twirp.NewError(twirp.NotFound, "board not found").
				WithMeta("code", core.ErrBoardNotFound.String())
		}

		return nil, err
	}

	if !user.AllowBoard(board.ID) {
		return nil, twirp.NewError(twirp.PermissionDenied, "board access denied").
			WithMeta("code", core.ErrOperationForbidden.String())
	}

	return board, nil
}

func listApprovalsHandler(boardStore core.BoardStore, approvalStore core.ApprovalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Status string `json:"status" valid:"in(pending|approved|rejected),optional"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		user, err := requireUser(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		board, err := fetchBoard(ctx, boardStore, chi.URLParam(r, "boardID"), user)
		if err != nil {
			render.Error(w, err)
			return
		}

		approvals, err := approvalStore.List(ctx, board.ID, core.ApprovalStatus(params.Status))
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("approvals.List")
			render.Error(w, err)
			return
		}

		render.JSON(w, approvals)
	}
}

func createApprovalHandler(boardStore core.BoardStore, approvalStore core.ApprovalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			ActionType   string          `json:"action_type" valid:"required"`
			Payload      types.JSONText  `json:"payload"`
			Confidence   decimal.Decimal `json:"confidence"`
			RubricScores types.JSONText  `json:"rubric_scores"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		user, err := requireUser(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		board, err := fetchBoard(ctx, boardStore, chi.URLParam(r, "boardID"), user)
		if err != nil {
			render.Error(w, err)
			return
		}

		approval := &core.Approval{
			ID:           uuid.New(),
			BoardID:      board.ID,
			ActionType:   body.ActionType,
			Payload:      body.Payload,
			Confidence:   body.Confidence,
			RubricScores: body.RubricScores,
			Status:       core.ApprovalStatusPending,
			CreatedAt:    core.NewTimestamp(time.Now()),
			Version:      1,
		}

		if err := approvalStore.Create(ctx, approval); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("approvals.Create")
			render.Error(w, err)
			return
		}

		render.JSON(w, approval)
	}
}

func updateApprovalHandler(boardStore core.BoardStore, approvalStore core.ApprovalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Status core.ApprovalStatus `json:"status" valid:"required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if !body.Status.IsResolved() {
			render.Error(w, twirp.InvalidArgumentError("status", "must be approved or rejected").
				WithMeta("code", core.ErrInvalidStatus.String()))
			return
		}

		user, err := requireUser(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		// agents propose, humans decide
		if user.IsAgent() {
			render.Error(w, twirp.NewError(twirp.PermissionDenied, "agents cannot decide approvals").
				WithMeta("code", core.ErrOperationForbidden.String()))
			return
		}

		board, err := fetchBoard(ctx, boardStore, chi.URLParam(r, "boardID"), user)
		if err != nil {
			render.Error(w, err)
			return
		}

		approval, notfound, err := approvalStore.Find(ctx, chi.URLParam(r, "approvalID"))
		if err != nil && !notfound {
			render.Error(w, err)
			return
		}

		if notfound || approval.BoardID != board.ID {
			render.Error(w, twirp.NewError(twirp.NotFound, "approval not found").
				WithMeta("code", core.ErrApprovalNotFound.String()))
			return
		}

		if approval.Status.IsResolved() {
			render.Error(w, twirp.NewError(twirp.FailedPrecondition, "approval already resolved").
				WithMeta("code", core.ErrApprovalResolved.String()))
			return
		}

		resolvedAt := core.NewTimestamp(time.Now())
		approval.Status = body.Status
		approval.ResolvedAt = &resolvedAt

		if err := approvalStore.Update(ctx, approval, approval.Version+1); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("approvals.Update")
			render.Error(w, err)
			return
		}

		render.JSON(w, approval)
	}
}
