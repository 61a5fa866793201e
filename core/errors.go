package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrUnauthorized authentication required
	ErrUnauthorized ErrorCode = 100002

	// ErrBoardNotFound no board
	ErrBoardNotFound ErrorCode = 100100
	// ErrApprovalNotFound no approval
	ErrApprovalNotFound ErrorCode = 100101
	// ErrInvalidStatus status is not a decision
	ErrInvalidStatus ErrorCode = 100102
	// ErrApprovalResolved approval already carries a decision
	ErrApprovalResolved ErrorCode = 100103
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
