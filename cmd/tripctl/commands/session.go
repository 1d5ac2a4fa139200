package commands

import (
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/session"
	"github.com/mmynk/tripsplit/pkg/api"
)

// use <name>: select the participant this device acts as.
func useCmd() *cobra.Command {
	var addNew bool

	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Pick the participant this device acts as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			extra := current.Extra
			if addNew && !contains(extra, name) {
				extra = append(extra, name)
			}

			ctx, cancel := rpcContext(cmd)
			defer cancel()
			resp, err := clients.session.SelectParticipant(ctx, connect.NewRequest(&api.SelectParticipantRequest{
				Name:  name,
				Extra: extra,
			}))
			if err != nil {
				return err
			}

			if err := sessions.Save(&session.Session{
				CurrentUser: &session.CurrentUser{Name: resp.Msg.Participant},
				Token:       resp.Msg.Token,
				Server:      serverURL,
				Extra:       extra,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hi, %s!\n", resp.Msg.Participant)
			return nil
		},
	}
	cmd.Flags().BoolVar(&addNew, "new", false, "add the name to the roster on this device")
	return optional(cmd)
}

// logout: forget the current participant.
func logoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the current participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
	return optional(cmd)
}

// whoami: print the current participant.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the current participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), current.CurrentUser.Name)
			return nil
		},
	}
}

// participants: list the roster, including names added on this device.
func participantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "List the trip roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			resp, err := clients.session.ListParticipants(ctx, connect.NewRequest(&api.ListParticipantsRequest{}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range resp.Msg.Participants {
				fmt.Fprintln(out, participantLine(name))
			}
			for _, name := range current.Extra {
				if !contains(resp.Msg.Participants, name) {
					fmt.Fprintln(out, participantLine(name)+" (this device)")
				}
			}
			return nil
		},
	}
	return optional(cmd)
}

func participantLine(name string) string {
	if current.SignedIn() && current.CurrentUser.Name == name {
		return "* " + name
	}
	return "  " + name
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
