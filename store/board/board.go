package board

import (
	"context"

	"steward/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Board{})

		if err := tx.AutoMigrate(core.Board{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// New new board store
func New(db *db.DB) core.BoardStore {
	return &boardStore{db: db}
}

type boardStore struct {
	db *db.DB
}

func (s *boardStore) Create(ctx context.Context, board *core.Board) error {
	return s.db.Update().Where("id = ?", board.ID).FirstOrCreate(board).Error
}

func (s *boardStore) Find(ctx context.Context, id string) (*core.Board, bool, error) {
	var board core.Board
	if err := s.db.View().Where("id = ?", id).First(&board).Error; err != nil {
		return nil, gorm.IsRecordNotFoundError(err), err
	}

	return &board, false, nil
}

func (s *boardStore) List(ctx context.Context) ([]*core.Board, error) {
	var boards []*core.Board
	if err := s.db.View().Find(&boards).Error; err != nil {
		return nil, err
	}

	return boards, nil
}
