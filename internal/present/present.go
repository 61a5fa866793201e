// Package present derives display values from approval records. Every
// function here is a pure transformation of its input; panel state never
// leaks in, so hosts owning their own state can reuse this package alone.
package present

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"steward/core"

	"github.com/spf13/cast"
)

// Partition splits approvals into the pending queue and everything
// already resolved. Each record lands in exactly one group.
func Partition(approvals []*core.Approval) (pending, resolved []*core.Approval) {
	pending = make([]*core.Approval, 0, len(approvals))
	resolved = make([]*core.Approval, 0, len(approvals))

	for _, a := range approvals {
		if a.Status == core.ApprovalStatusPending {
			pending = append(pending, a)
		} else {
			resolved = append(resolved, a)
		}
	}

	return pending, resolved
}

// SortByCreatedAt orders approvals most recent first without touching
// the input slice. Records whose timestamps failed to parse sink to the
// end; their relative order is unspecified.
func SortByCreatedAt(approvals []*core.Approval) []*core.Approval {
	sorted := make([]*core.Approval, len(approvals))
	copy(sorted, approvals)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		if a.Valid() != b.Valid() {
			return a.Valid()
		}

		return a.Time.After(b.Time)
	})

	return sorted
}

// ActionTitle humanizes a dot delimited action type:
// "task.assign_role" becomes "Task · Assign Role".
func ActionTitle(actionType string) string {
	segments := strings.Split(actionType, ".")
	titles := make([]string, 0, len(segments))

	for _, seg := range segments {
		words := strings.Fields(strings.ReplaceAll(seg, "_", " "))
		for i, w := range words {
			words[i] = capitalize(w)
		}

		if len(words) > 0 {
			titles = append(titles, strings.Join(words, " "))
		}
	}

	return strings.Join(titles, " · ")
}

// ActionLabel the plain variant: "task.assign_role" becomes
// "task assign role"
func ActionLabel(actionType string) string {
	return strings.Join(strings.FieldsFunc(actionType, func(r rune) bool {
		return r == '.' || r == '_'
	}), " ")
}

func capitalize(w string) string {
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Field one line of a payload summary
type Field struct {
	Label string
	Value string
}

var summaryKeys = []struct {
	label string
	keys  []string
}{
	{"Task", []string{"task_id", "taskId"}},
	{"Assignee", []string{"assignee_id", "assigneeId", "agent_id", "agentId"}},
	{"Title", []string{"title"}},
	{"Role", []string{"role"}},
	{"Reason", []string{"reason"}},
}

// Summary extracts a short description from the payload of assignment
// type actions. Only fields actually present show up; other action
// types yield no summary.
func Summary(a *core.Approval) []Field {
	if !strings.Contains(a.ActionType, "assign") {
		return nil
	}

	payload := a.PayloadMap()
	fields := make([]Field, 0, len(summaryKeys))

	for _, entry := range summaryKeys {
		for _, key := range entry.keys {
			v, ok := payload[key]
			if !ok {
				continue
			}

			if s := cast.ToString(v); s != "" {
				fields = append(fields, Field{Label: entry.label, Value: s})
				break
			}
		}
	}

	return fields
}

// PayloadJSON indented payload for the expandable detail view, empty
// string when there is nothing to show
func PayloadJSON(a *core.Approval) string {
	return indentJSON(a.Payload)
}

// RubricJSON indented rubric scores for the expandable detail view
func RubricJSON(a *core.Approval) string {
	return indentJSON(a.RubricScores)
}

func indentJSON(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}

	return buf.String()
}
