package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/spf13/cobra"
)

func parseID(value, what string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, value)
	}
	return id, nil
}

func newGroupCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}
	cmd.AddCommand(
		newGroupListCommand(rt),
		newGroupCreateCommand(rt),
		newGroupUpdateCommand(rt),
		newGroupLeaveCommand(rt),
		newGroupMembersCommand(rt),
	)
	return cmd
}

func newGroupListCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.Refresh(cmd.Context(), domain.KindGroups); err != nil {
				return err
			}
			groups := groupsOut(rt.dashboard.Snapshot(cmd.Context()).Groups.Items)
			return rt.render(groups, func(w io.Writer) { writeGroups(w, groups) })
		},
	}
}

func newGroupCreateCommand(rt *runtime) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			group, err := rt.dashboard.CreateGroup(cmd.Context(), name, description)
			if err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("created group %d %q", group.ID, group.Name))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")
	return cmd
}

func newGroupUpdateCommand(rt *runtime) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "update <group-id>",
		Short: "Rename or re-describe a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "group")
			if err != nil {
				return err
			}
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			group, err := rt.dashboard.UpdateGroup(cmd.Context(), id, name, description)
			if err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("updated group %d %q", group.ID, group.Name))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")
	return cmd
}

func newGroupLeaveCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "leave <group-id>",
		Short: "Leave a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "group")
			if err != nil {
				return err
			}
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.LeaveGroup(cmd.Context(), id); err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("left group %d", id))
		},
	}
}

func newGroupMembersCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "members <group-id>",
		Short: "Show the members of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "group")
			if err != nil {
				return err
			}
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			members, err := rt.dashboard.GroupMembers(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := make([]memberOut, 0, len(members))
			for _, member := range members {
				out = append(out, memberOut{Email: member.Email, Role: string(member.Role)})
			}
			return rt.render(out, func(w io.Writer) {
				fmt.Fprintln(w, "EMAIL\tROLE")
				for _, member := range out {
					fmt.Fprintf(w, "%s\t%s\n", member.Email, dashOr(member.Role))
				}
			})
		},
	}
}
