package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"steward/core"
	"steward/internal/present"
	"steward/service/panel"
	"steward/worker/poller"

	"github.com/spf13/cobra"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "review pending approvals from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p := providePanel(panelBoardID(cmd))
		_ = p.Refresh(ctx)

		renderPanel(cmd.OutOrStdout(), p)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "poll the queue and re-render on every refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p := providePanel(panelBoardID(cmd))
		out := cmd.OutOrStdout()

		w := poller.New(cfg.Panel.PollInterval(), poller.RefreshFunc(func(ctx context.Context) error {
			err := p.Refresh(ctx)
			renderPanel(out, p)
			return err
		}))

		return w.Run(ctx)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "approve one pending action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, args[0], core.ApprovalStatusApproved)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "reject one pending action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, args[0], core.ApprovalStatusRejected)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "show the payload and rubric of one approval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p := providePanel(panelBoardID(cmd))
		if err := p.Refresh(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, a := range p.Snapshot().Approvals {
			if a.ID != args[0] {
				continue
			}

			fmt.Fprintln(out, present.ActionTitle(a.ActionType))
			if body := present.PayloadJSON(a); body != "" {
				fmt.Fprintln(out, "payload:")
				fmt.Fprintln(out, body)
			}
			if body := present.RubricJSON(a); body != "" {
				fmt.Fprintln(out, "rubric:")
				fmt.Fprintln(out, body)
			}

			return nil
		}

		return fmt.Errorf("approval %s not found", args[0])
	},
}

func decide(cmd *cobra.Command, approvalID string, status core.ApprovalStatus) error {
	ctx := cmd.Context()

	p := providePanel(panelBoardID(cmd))
	if err := p.Decide(ctx, approvalID, status); err != nil {
		if hint := p.Snapshot().Err; hint != "" {
			return errors.New(hint)
		}

		return err
	}

	cmd.Println(approvalID, status)
	return nil
}

func panelBoardID(cmd *cobra.Command) string {
	if board, _ := cmd.Flags().GetString("board"); board != "" {
		return board
	}

	return cfg.Panel.BoardID
}

func renderPanel(out io.Writer, p *panel.Panel) {
	state := p.Snapshot()
	if state.Err != "" {
		fmt.Fprintln(out, state.Err)
	}

	pending, resolved := present.Partition(state.Approvals)

	fmt.Fprintf(out, "Pending (%d)\n", len(pending))
	renderList(out, present.SortByCreatedAt(pending), state.Updating)

	fmt.Fprintf(out, "Resolved (%d)\n", len(resolved))
	renderList(out, present.SortByCreatedAt(resolved), state.Updating)
}

func renderList(out io.Writer, approvals []*core.Approval, updating map[string]bool) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, a := range approvals {
		mark := ""
		if updating[a.ID] {
			mark = "*"
		}

		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n",
			a.ID, mark,
			present.ActionTitle(a.ActionType),
			present.StatusBadge(a.Status),
			present.ConfidenceBadge(a.Confidence),
			summaryLine(a),
		)
	}
	_ = w.Flush()
}

func summaryLine(a *core.Approval) string {
	fields := present.Summary(a)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Label+": "+f.Value)
	}

	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(panelCmd)
	panelCmd.AddCommand(watchCmd, approveCmd, rejectCmd, showCmd)
	panelCmd.PersistentFlags().String("board", "", "board id. default from config")
}
