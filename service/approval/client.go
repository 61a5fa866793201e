package approval

import (
	"context"
	"fmt"
	"strings"

	"steward/core"
	"steward/pkg/resthttp"

	"github.com/fox-one/pkg/uuid"
	"github.com/go-resty/resty/v2"
)

// Config approvals api client config
type Config struct {
	APIBase string
}

// New new approvals api client bound to a reviewer session
func New(cfg Config, session core.ReviewerSession) core.ApprovalAPI {
	return &approvalAPI{
		base:    strings.TrimSuffix(cfg.APIBase, "/"),
		session: session,
	}
}

type approvalAPI struct {
	base    string
	session core.ReviewerSession
}

func (c *approvalAPI) request(ctx context.Context) *resty.Request {
	// token or empty string; a failed token lookup degrades to anonymous
	var token string
	if c.session != nil {
		token, _ = c.session.Token(ctx)
	}

	return resthttp.WithRequestID(ctx, uuid.New()).
		SetHeader("Authorization", "Bearer "+token)
}

func (c *approvalAPI) List(ctx context.Context, boardID string) ([]*core.Approval, error) {
	url := fmt.Sprintf("%s/api/v1/boards/%s/approvals", c.base, boardID)

	var approvals []*core.Approval
	if err := resthttp.Execute(c.request(ctx), "GET", url, nil, &approvals); err != nil {
		return nil, err
	}

	return approvals, nil
}

func (c *approvalAPI) Create(ctx context.Context, boardID string, approval *core.Approval) (*core.Approval, error) {
	url := fmt.Sprintf("%s/api/v1/boards/%s/approvals", c.base, boardID)

	body := map[string]interface{}{
		"action_type":   approval.ActionType,
		"payload":       approval.Payload,
		"confidence":    approval.Confidence,
		"rubric_scores": approval.RubricScores,
	}

	var created core.Approval
	if err := resthttp.Execute(c.request(ctx), "POST", url, body, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *approvalAPI) Update(ctx context.Context, boardID, approvalID string, status core.ApprovalStatus) (*core.Approval, error) {
	url := fmt.Sprintf("%s/api/v1/boards/%s/approvals/%s", c.base, boardID, approvalID)

	body := map[string]interface{}{
		"status": status,
	}

	var updated core.Approval
	if err := resthttp.Execute(c.request(ctx), "PATCH", url, body, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}
