package approval

import (
	"context"
	"time"

	"steward/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Approval{})

		if err := tx.AutoMigrate(core.Approval{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_approvals_board_status", "board_id", "status").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new approval store
func New(db *db.DB) core.ApprovalStore {
	return &approvalStore{db: db}
}

type approvalStore struct {
	db *db.DB
}

func (s *approvalStore) Create(ctx context.Context, approval *core.Approval) error {
	return s.db.Update().Where("id = ?", approval.ID).FirstOrCreate(approval).Error
}

func (s *approvalStore) Find(ctx context.Context, id string) (*core.Approval, bool, error) {
	var approval core.Approval
	if err := s.db.View().Where("id = ?", id).First(&approval).Error; err != nil {
		return nil, gorm.IsRecordNotFoundError(err), err
	}

	return &approval, false, nil
}

func (s *approvalStore) List(ctx context.Context, boardID string, status core.ApprovalStatus) ([]*core.Approval, error) {
	query := s.db.View().Where("board_id = ?", boardID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var approvals []*core.Approval
	// created_at is stored as RFC3339 UTC, lexical order matches time order
	if err := query.Order("created_at DESC").Find(&approvals).Error; err != nil {
		return nil, err
	}

	return approvals, nil
}

func toUpdateParams(approval *core.Approval) map[string]interface{} {
	return map[string]interface{}{
		"status":      approval.Status,
		"resolved_at": approval.ResolvedAt,
	}
}

func (s *approvalStore) Update(ctx context.Context, approval *core.Approval, version int64) error {
	updates := toUpdateParams(approval)
	updates["version"] = version

	tx := s.db.Update().Model(approval).Where("version = ?", approval.Version).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	approval.Version = version
	return nil
}

func (s *approvalStore) DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := s.db.Update().
		Where("status <> ? AND resolved_at < ?", core.ApprovalStatusPending, before.UTC().Format(time.RFC3339)).
		Delete(core.Approval{})

	return tx.RowsAffected, tx.Error
}
