package present

import (
	"testing"

	"steward/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approval(id string, status core.ApprovalStatus, createdAt string) *core.Approval {
	return &core.Approval{
		ID:        id,
		Status:    status,
		CreatedAt: core.ParseTimestamp(createdAt),
	}
}

func TestPartition(t *testing.T) {
	approvals := []*core.Approval{
		approval("a", core.ApprovalStatusPending, "2024-01-01T00:00:00Z"),
		approval("b", core.ApprovalStatusApproved, "2024-01-02T00:00:00Z"),
		approval("c", core.ApprovalStatusRejected, "2024-01-03T00:00:00Z"),
		approval("d", core.ApprovalStatusPending, "2024-01-04T00:00:00Z"),
	}

	pending, resolved := Partition(approvals)
	require.Len(t, pending, 2)
	require.Len(t, resolved, 2)

	// strict complement: every record in exactly one group
	assert.Equal(t, len(approvals), len(pending)+len(resolved))
	for _, a := range pending {
		assert.Equal(t, core.ApprovalStatusPending, a.Status)
	}
	for _, a := range resolved {
		assert.NotEqual(t, core.ApprovalStatusPending, a.Status)
	}
}

func TestSortByCreatedAt(t *testing.T) {
	approvals := []*core.Approval{
		approval("old", core.ApprovalStatusPending, "2024-01-01T00:00:00Z"),
		approval("junk", core.ApprovalStatusPending, "not a time"),
		approval("new", core.ApprovalStatusPending, "2024-03-01T00:00:00Z"),
		approval("mid", core.ApprovalStatusPending, "2024-02-01T00:00:00Z"),
	}

	sorted := SortByCreatedAt(approvals)
	require.Len(t, sorted, 4)

	assert.Equal(t, "new", sorted[0].ID)
	assert.Equal(t, "mid", sorted[1].ID)
	assert.Equal(t, "old", sorted[2].ID)
	assert.Equal(t, "junk", sorted[3].ID)

	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i].CreatedAt, sorted[i+1].CreatedAt
		if a.Valid() && b.Valid() {
			assert.False(t, a.Time.Before(b.Time))
		}
	}

	// input untouched
	assert.Equal(t, "old", approvals[0].ID)
}

func TestActionTitle(t *testing.T) {
	cases := map[string]string{
		"task.assign_role":  "Task · Assign Role",
		"task.assign":       "Task · Assign",
		"board.rename":      "Board · Rename",
		"memory.add_note":   "Memory · Add Note",
		"deploy":            "Deploy",
		"task..assign_role": "Task · Assign Role",
		"":                  "",
	}

	for in, want := range cases {
		assert.Equal(t, want, ActionTitle(in), "title %q", in)
	}

	assert.Equal(t, "task assign role", ActionLabel("task.assign_role"))
	assert.Equal(t, "task assign role", ActionLabel("task..assign_role"))
}

func TestSummary(t *testing.T) {
	a := &core.Approval{
		ActionType: "task.assign_role",
		Payload:    []byte(`{"task_id":"t-42","assigneeId":"agent-7","role":"lead","reason":"best rubric fit","noise":1}`),
	}

	fields := Summary(a)
	require.Len(t, fields, 4)
	assert.Equal(t, Field{Label: "Task", Value: "t-42"}, fields[0])
	assert.Equal(t, Field{Label: "Assignee", Value: "agent-7"}, fields[1])
	assert.Equal(t, Field{Label: "Role", Value: "lead"}, fields[2])
	assert.Equal(t, Field{Label: "Reason", Value: "best rubric fit"}, fields[3])

	// numeric values are stringified, absent fields are skipped
	a = &core.Approval{
		ActionType: "task.assign",
		Payload:    []byte(`{"taskId":7,"title":"triage inbox"}`),
	}
	fields = Summary(a)
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Label: "Task", Value: "7"}, fields[0])
	assert.Equal(t, Field{Label: "Title", Value: "triage inbox"}, fields[1])

	// non assignment actions carry no summary
	assert.Nil(t, Summary(&core.Approval{ActionType: "board.rename"}))
}

func TestDetailJSON(t *testing.T) {
	a := &core.Approval{
		Payload:      []byte(`{"k":"v"}`),
		RubricScores: []byte(`{"clarity":92}`),
	}

	assert.Equal(t, "{\n  \"k\": \"v\"\n}", PayloadJSON(a))
	assert.Equal(t, "{\n  \"clarity\": 92\n}", RubricJSON(a))
	assert.Equal(t, "", PayloadJSON(&core.Approval{}))
}
