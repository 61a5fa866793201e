package rest

import (
	"errors"
	"net/http"

	"steward/core"
	"steward/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(boardStore core.BoardStore, approvalStore core.ApprovalStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, errors.New("not found"))
	})

	router.Route("/v1/boards/{boardID}", func(r chi.Router) {
		r.Get("/", boardHandler(boardStore))
		r.Get("/approvals", listApprovalsHandler(boardStore, approvalStore))
		r.Post("/approvals", createApprovalHandler(boardStore, approvalStore))
		r.Patch("/approvals/{approvalID}", updateApprovalHandler(boardStore, approvalStore))
	})

	return router
}
