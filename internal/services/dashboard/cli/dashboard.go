package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/app"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/culater/internal/services/dashboard/view"
	"github.com/spf13/cobra"
)

func newDashboardCommand(rt *runtime) *cobra.Command {
	var (
		search, group string
		parallel      bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Load and show tasks, groups and pending invitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := view.ParseGroupFilter(group)
			if err != nil {
				return err
			}
			if parallel {
				// Failures other than a lost session stay on their collection.
				if err := rt.dashboard.Reload(cmd.Context()); apperrors.Is(err, apperrors.KindUnauthenticated) {
					return err
				}
			} else if _, err := rt.dashboard.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			snap := rt.dashboard.Snapshot(cmd.Context())
			warnings := loadWarnings(snap)
			out := dashboardOut{
				Subject:     snap.Session.SubjectID,
				Groups:      groupsOut(snap.Groups.Items),
				Tasks:       tasksOut(snap.TaskRows(search, filter)),
				Invitations: invitationsOut(snap.PendingInvitations()),
				Warnings:    warnings,
			}
			return rt.render(out, func(w io.Writer) {
				renderDashboard(w, snap, out)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive title filter")
	cmd.Flags().StringVar(&group, "group", "all", `group id to show, or "all"`)
	cmd.Flags().BoolVar(&parallel, "parallel", false, "load every collection at once instead of groups first")
	return cmd
}

func loadWarnings(snap app.Snapshot) []string {
	failures := []error{snap.Groups.LastError, snap.Tasks.LastError, snap.Invitations.LastError}
	var warnings []string
	for i, kind := range domain.Kinds {
		if failures[i] != nil {
			warnings = append(warnings, fmt.Sprintf("%s could not be loaded: %v", kind, failures[i]))
		}
	}
	return warnings
}

func renderDashboard(w io.Writer, snap app.Snapshot, out dashboardOut) {
	for _, warning := range out.Warnings {
		fmt.Fprintf(w, "! %s\n", warning)
	}
	fmt.Fprintln(w, "TASKS")
	if len(out.Tasks) == 0 {
		if len(snap.Groups.Items) == 0 {
			fmt.Fprintln(w, "  no tasks yet: create a group first")
		} else {
			fmt.Fprintln(w, "  no tasks")
		}
	} else {
		writeTasks(w, out.Tasks)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "GROUPS")
	writeGroups(w, out.Groups)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "INVITATIONS")
	if len(out.Invitations) == 0 {
		fmt.Fprintln(w, "  no pending invitations")
		return
	}
	writeInvitations(w, out.Invitations)
}

func writeTasks(w io.Writer, tasks []taskOut) {
	fmt.Fprintln(w, "ID\tTITLE\tGROUP\tDUE\tSTATUS\tASSIGNED")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			task.ID, task.Title, task.Group, dashOr(task.Due), dashOr(task.Status), dashOr(strings.Join(task.AssignedTo, ",")))
	}
}

func writeGroups(w io.Writer, groups []groupOut) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "  no groups")
		return
	}
	fmt.Fprintln(w, "ID\tNAME\tMEMBERS\tDESCRIPTION")
	for _, group := range groups {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", group.ID, group.Name, group.Members, dashOr(group.Description))
	}
}

func writeInvitations(w io.Writer, invitations []invitationOut) {
	fmt.Fprintln(w, "GROUP ID\tGROUP\tFROM\tSENT\tSTATUS")
	for _, inv := range invitations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", inv.GroupID, inv.Group, dashOr(inv.From), dashOr(inv.Sent), inv.Status)
	}
}

func tasksOut(rows []view.TaskRow) []taskOut {
	out := make([]taskOut, 0, len(rows))
	for _, row := range rows {
		out = append(out, taskOut{
			ID:          row.Task.ID,
			Title:       row.Task.Title,
			Description: row.Task.Description,
			Group:       row.GroupName,
			GroupID:     row.Task.GroupID,
			Due:         row.Due,
			Status:      row.Task.Status,
			AssignedTo:  []string(row.Task.AssignedTo),
		})
	}
	return out
}

func groupsOut(groups []domain.Group) []groupOut {
	out := make([]groupOut, 0, len(groups))
	for _, group := range groups {
		out = append(out, groupOut{
			ID:          group.ID,
			Name:        view.GroupNameOf(groups, group.ID),
			Description: group.Description,
			Members:     len(group.Members),
		})
	}
	return out
}

func invitationsOut(invitations []domain.Invitation) []invitationOut {
	out := make([]invitationOut, 0, len(invitations))
	for _, inv := range invitations {
		sent := ""
		if !inv.InviteDate.IsZero() {
			sent = inv.InviteDate.UTC().Format("2006-01-02")
		}
		out = append(out, invitationOut{
			ID:      inv.ID,
			GroupID: inv.GroupID,
			Group:   inv.DisplayGroupName(),
			From:    inv.InviterEmail,
			Sent:    sent,
			Status:  string(inv.Status),
		})
	}
	return out
}
