package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/session"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

const (
	defaultServer = "http://localhost:8080"
	rpcTimeout    = 30 * time.Second

	// sessionOptional marks commands that run without a selected participant.
	sessionOptional = "session-optional"
)

var (
	home      string
	serverURL string

	sessions *session.FileStore
	current  *session.Session
	clients  *apiClients
)

type apiClients struct {
	session     apiconnect.SessionServiceClient
	expenses    apiconnect.ExpenseServiceClient
	inventory   apiconnect.InventoryServiceClient
	settlements apiconnect.SettlementServiceClient
}

func newClients(baseURL, token string) *apiClients {
	var opts []connect.ClientOption
	if token != "" {
		opts = append(opts, connect.WithInterceptors(apiconnect.WithSessionToken(token)))
	}
	return &apiClients{
		session:     apiconnect.NewSessionServiceClient(http.DefaultClient, baseURL, opts...),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, baseURL, opts...),
		inventory:   apiconnect.NewInventoryServiceClient(http.DefaultClient, baseURL, opts...),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, baseURL, opts...),
	}
}

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Track and split shared trip expenses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := session.DefaultDir()
				if err != nil {
					return err
				}
				home = dir
			}
			sessions = session.NewFileStore(home)

			sess, err := sessions.Load()
			if err != nil {
				return err
			}
			current = sess

			if serverURL == "" {
				serverURL = os.Getenv("TRIPSPLIT_SERVER")
			}
			if serverURL == "" {
				serverURL = current.Server
			}
			if serverURL == "" {
				serverURL = defaultServer
			}
			clients = newClients(serverURL, current.Token)

			if cmd.Annotations[sessionOptional] == "" && cmd.Name() != "help" && !current.SignedIn() {
				return errors.New("no participant selected, run `tripctl use <name>` first")
			}
			return nil
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.tripsplit)")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "server base URL (default $TRIPSPLIT_SERVER or "+defaultServer+")")

	root.AddCommand(
		useCmd(), logoutCmd(), whoamiCmd(), participantsCmd(),
		expenseCmd(), itemCmd(), settleCmd(), historyCmd(), watchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		return err
	}
	return nil
}

func optional(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[sessionOptional] = "true"
	return cmd
}

func rpcContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), rpcTimeout)
}

// describe turns a Connect error into a short message for the terminal.
func describe(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err.Error()
	}
	switch connectErr.Code() {
	case connect.CodeUnauthenticated:
		return "session expired or invalid, run `tripctl use <name>` again"
	case connect.CodeUnavailable:
		return "server unavailable: " + connectErr.Message()
	default:
		return connectErr.Message()
	}
}
