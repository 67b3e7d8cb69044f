package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/projectdeck/internal/controller"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

var errOperationFailed = errors.New("operation failed")

var (
	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45")).Padding(0, 1)
	cell       = lipgloss.NewStyle().Padding(0, 1)
	dim        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List all projects held by the remote service, in server order.

Examples:
  projectdeck list
  projectdeck list --json
  projectdeck list --server http://projects.internal:5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()
			a.printNotices(cmd.ErrOrStderr())

			if outcome := a.ctrl.Load(ctxOf(cmd)); outcome != controller.OutcomeSucceeded {
				return fmt.Errorf("list: %w", errOperationFailed)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), a.cache.Current())
			}
			writeView(cmd.OutOrStdout(), a.renderer.Snapshot())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print projects as JSON")
	return cmd
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <command>",
		Short: "Create a project from a natural-language command",
		Long: `Ask the remote service to generate a new project.

Examples:
  projectdeck create "build a todo app with a REST API"
  projectdeck create build a todo app`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()
			a.printNotices(cmd.ErrOrStderr())

			outcome := a.ctrl.Create(ctxOf(cmd), strings.Join(args, " "))
			if err := outcomeError("create", outcome); err != nil {
				return err
			}
			writeView(cmd.OutOrStdout(), a.renderer.Snapshot())
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <command>",
		Short: "Apply a change command to a completed project",
		Long: `Ask the remote service to change an existing project. Only projects
in the Completed status can be edited.

Examples:
  projectdeck edit 42 "add dark mode"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()
			a.printNotices(cmd.ErrOrStderr())

			ctx := ctxOf(cmd)
			id := project.ID(args[0])
			if outcome := a.ctrl.Load(ctx); outcome != controller.OutcomeSucceeded {
				return fmt.Errorf("edit: %w", errOperationFailed)
			}
			p, err := a.cache.Find(id)
			if err != nil {
				return fmt.Errorf("edit %s: %w", id, err)
			}
			if !p.Status.Editable() {
				return fmt.Errorf("edit %s: project is %s; only %s projects can be edited",
					id, p.Status, project.StatusCompleted)
			}

			outcome := a.ctrl.Edit(ctx, id, strings.Join(args[1:], " "))
			if err := outcomeError("edit", outcome); err != nil {
				return err
			}
			writeView(cmd.OutOrStdout(), a.renderer.Snapshot())
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Long: `Delete a project after confirmation.

Examples:
  projectdeck delete 42
  projectdeck delete 42 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()
			a.printNotices(cmd.ErrOrStderr())

			var confirm controller.Confirmer = controller.Confirmed(true)
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
			}

			outcome := a.ctrl.Delete(ctxOf(cmd), project.ID(args[0]), confirm)
			if outcome == controller.OutcomeDeclined {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return nil
			}
			if err := outcomeError("delete", outcome); err != nil {
				return err
			}
			writeView(cmd.OutOrStdout(), a.renderer.Snapshot())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirmer asks on out and reads one answer line from in.
func promptConfirmer(in io.Reader, out io.Writer) controller.Confirmer {
	return controller.ConfirmFunc(func(_ context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

func outcomeError(op string, outcome controller.Outcome) error {
	switch outcome {
	case controller.OutcomeSucceeded:
		return nil
	case controller.OutcomeRejected:
		return fmt.Errorf("%s: command must not be empty", op)
	default:
		return fmt.Errorf("%s: %w", op, errOperationFailed)
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeJSON(w io.Writer, projects []project.Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(projects)
}

// writeView prints counters and the project table.
func writeView(w io.Writer, v render.View) {
	fmt.Fprintf(w, "Total: %d  Completed: %d  Failed: %d\n",
		v.Counters.Total, v.Counters.Completed, v.Counters.Failed)

	if v.PlaceholderVisible() {
		fmt.Fprintln(w, dim.Render("No projects yet. Create your first project with: projectdeck create <command>"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dim).
		Headers("ID", "NAME", "STATUS", "CREATED", "COMMAND", "CODE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		})
	for _, r := range v.Rows {
		status := r.Status.String()
		if g := r.Icon.Glyph(); g != "" {
			status = g + " " + status
		}
		t.Row(r.ID.String(), r.Name, status, r.Created, r.Command, r.CodeURL)
	}
	fmt.Fprintln(w, t.Render())
}
