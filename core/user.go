package core

import "context"

// UserRole authenticated principal kind
type UserRole string

const (
	// UserRoleReviewer a human reviewer
	UserRoleReviewer UserRole = "reviewer"
	// UserRoleAgent an automated agent
	UserRoleAgent UserRole = "agent"
)

type (
	// User authenticated principal, either a human reviewer or an agent
	User struct {
		ID      string   `json:"id,omitempty"`
		Name    string   `json:"name,omitempty"`
		Role    UserRole `json:"role,omitempty"`
		BoardID string   `json:"board_id,omitempty"`
		IsAdmin bool     `json:"is_admin,omitempty"`
	}

	// Session server side login from a bearer token
	Session interface {
		Login(ctx context.Context, accessToken string) (*User, error)
	}

	// ReviewerSession client side auth provider for the review panel
	ReviewerSession interface {
		SignedIn() bool
		Token(ctx context.Context) (string, error)
	}
)

// IsAgent check the user is an automated agent
func (u *User) IsAgent() bool {
	return u.Role == UserRoleAgent
}

// AllowBoard check the user may touch the given board
func (u *User) AllowBoard(boardID string) bool {
	if u.IsAgent() && u.BoardID != "" {
		return u.BoardID == boardID
	}

	return true
}
