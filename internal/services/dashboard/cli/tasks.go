package cli

import (
	"fmt"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/mutation"
	"github.com/spf13/cobra"
)

func newTaskCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskCreateCommand(rt),
		newTaskUpdateCommand(rt),
		newTaskDeleteCommand(rt),
	)
	return cmd
}

func bindTaskFlags(cmd *cobra.Command, input *mutation.TaskInput) {
	cmd.Flags().StringVar(&input.Title, "title", "", "task title")
	cmd.Flags().StringVar(&input.Description, "description", "", "task description")
	cmd.Flags().StringVar(&input.DueDate, "due", "", "due date, e.g. 2025-04-20 or 2025-04-20T17:00:00Z")
	cmd.Flags().Int64Var(&input.GroupID, "group", 0, "group id")
	cmd.Flags().StringSliceVar(&input.AssignedTo, "assign", nil, "assignee emails")
	cmd.Flags().StringVar(&input.Status, "status", "", "task status")
}

func newTaskCreateCommand(rt *runtime) *cobra.Command {
	var input mutation.TaskInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in one of your groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.Refresh(cmd.Context(), domain.KindGroups); err != nil {
				return err
			}
			task, err := rt.dashboard.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("created task %d %q", task.ID, task.Title))
		},
	}
	bindTaskFlags(cmd, &input)
	return cmd
}

func newTaskUpdateCommand(rt *runtime) *cobra.Command {
	var input mutation.TaskInput
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Replace a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.Refresh(cmd.Context(), domain.KindGroups); err != nil {
				return err
			}
			task, err := rt.dashboard.UpdateTask(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("updated task %d %q", task.ID, task.Title))
		},
	}
	bindTaskFlags(cmd, &input)
	return cmd
}

func newTaskDeleteCommand(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.Refresh(cmd.Context(), domain.KindTasks); err != nil {
				return err
			}
			confirmation, err := rt.dashboard.RequestDeleteTask(id)
			if err != nil {
				return err
			}
			if !yes {
				answer, err := rt.prompt(confirmation.Prompt() + " [y/N] ")
				if err != nil {
					return err
				}
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					return fmt.Errorf("delete task %d: %w", id, errAborted)
				}
			}
			if err := rt.dashboard.CommitDeleteTask(cmd.Context(), confirmation); err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("deleted task %d", id))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
