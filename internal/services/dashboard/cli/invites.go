package cli

import (
	"fmt"
	"io"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/spf13/cobra"
)

func newInviteCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Send and answer group invitations",
	}
	cmd.AddCommand(
		newInviteListCommand(rt),
		newInviteSendCommand(rt),
		newInviteAnswerCommand(rt, "accept", "Join the group you were invited to"),
		newInviteAnswerCommand(rt, "decline", "Decline an invitation"),
	)
	return cmd
}

func newInviteListCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending invitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.Refresh(cmd.Context(), domain.KindInvitations); err != nil {
				return err
			}
			out := invitationsOut(rt.dashboard.Snapshot(cmd.Context()).PendingInvitations())
			return rt.render(out, func(w io.Writer) {
				if len(out) == 0 {
					fmt.Fprintln(w, "no pending invitations")
					return
				}
				writeInvitations(w, out)
			})
		},
	}
}

func newInviteSendCommand(rt *runtime) *cobra.Command {
	var (
		groupID     int64
		email, role string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Invite someone into a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.dashboard.SendInvitation(cmd.Context(), groupID, email, role); err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("invited %s to group %d", email, groupID))
		},
	}
	cmd.Flags().Int64Var(&groupID, "group", 0, "group id")
	cmd.Flags().StringVar(&email, "email", "", "invitee email")
	cmd.Flags().StringVar(&role, "role", "reader", "admin, contributor or reader")
	return cmd
}

func newInviteAnswerCommand(rt *runtime, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <group-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID(args[0], "group")
			if err != nil {
				return err
			}
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			answer := rt.dashboard.AcceptInvitation
			if verb == "decline" {
				answer = rt.dashboard.DeclineInvitation
			}
			if err := answer(cmd.Context(), groupID); err != nil {
				return err
			}
			return rt.message(fmt.Sprintf("%sd invitation to group %d", verb, groupID))
		},
	}
}
