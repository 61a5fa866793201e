package core

import (
	"context"
	"time"
)

type (
	// Board a task board agents work on
	Board struct {
		ID        string    `sql:"size:36;PRIMARY_KEY" json:"id,omitempty"`
		Name      string    `sql:"size:255" json:"name,omitempty"`
		CreatedAt time.Time `json:"created_at,omitempty"`
	}

	// BoardStore boards persistence
	BoardStore interface {
		Create(ctx context.Context, board *Board) error
		Find(ctx context.Context, id string) (*Board, bool, error)
		List(ctx context.Context) ([]*Board, error)
	}
)
