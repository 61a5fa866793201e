package cmd

import (
	"steward/core"
	approvalservice "steward/service/approval"
	"steward/service/panel"
	"steward/service/session"
	"steward/store/approval"
	"steward/store/board"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func provideBoardStore(db *db.DB) core.BoardStore {
	return board.New(db)
}

func provideApprovalStore(db *db.DB) core.ApprovalStore {
	return approval.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideServerSession() core.Session {
	return session.New(session.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		Issuers:   cfg.Auth.Issuers,
		Admins:    cfg.Admins,
		Capacity:  cfg.Auth.SessionCapacity,
	})
}

func provideReviewerSession() core.ReviewerSession {
	if cfg.Auth.OAuth.TokenURL != "" {
		return session.OAuth(session.OAuthConfig{
			TokenURL:     cfg.Auth.OAuth.TokenURL,
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
		})
	}

	return session.Static(cfg.Auth.Token)
}

func provideApprovalAPI(reviewerSession core.ReviewerSession) core.ApprovalAPI {
	return approvalservice.New(approvalservice.Config{
		APIBase: cfg.API.Base,
	}, reviewerSession)
}

func providePanel(boardID string) *panel.Panel {
	reviewerSession := provideReviewerSession()
	return panel.New(boardID, provideApprovalAPI(reviewerSession), reviewerSession)
}
