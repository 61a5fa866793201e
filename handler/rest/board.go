package rest

import (
	"net/http"

	"steward/core"
	"steward/handler/render"

	"github.com/go-chi/chi"
)

func boardHandler(boardStore core.BoardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

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

		render.JSON(w, board)
	}
}
