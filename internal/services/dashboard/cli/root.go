// Package cli is the terminal presentation of the dashboard: one cobra
// command per user intent, rendering snapshots as tables, JSON or YAML.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/culater/internal/platform/requestctx"
	"github.com/louisbranch/culater/internal/services/dashboard/app"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/culater/internal/services/dashboard/session"
	"github.com/louisbranch/culater/internal/services/dashboard/session/sqlite"
	"github.com/spf13/cobra"
)

// MemorySession selects an in-memory credential store.
const MemorySession = "memory"

// Settings are the defaults the root flags start from.
type Settings struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	// SessionPath is the sqlite file holding the credential. Empty uses
	// DefaultSessionPath; MemorySession keeps it in memory.
	SessionPath string
	StepDelay   time.Duration
	SignupPath  string
	Output      string
	// RequestID, when set, is sent as X-Request-ID on every call.
	RequestID string
}

// Streams are the command's terminal handles.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultSessionPath is ~/.culater/session.db.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".culater", "session.db"), nil
}

// runtime is the per-invocation state shared by subcommands.
type runtime struct {
	settings  Settings
	streams   Streams
	dashboard *app.Dashboard
	closeFn   func() error
}

func (r *runtime) open(ctx context.Context) error {
	if _, err := parseFormat(r.settings.Output); err != nil {
		return err
	}
	var store session.CredentialStore
	path := strings.TrimSpace(r.settings.SessionPath)
	if path != MemorySession {
		if path == "" {
			var err error
			if path, err = DefaultSessionPath(); err != nil {
				return err
			}
		}
		sqliteStore, err := sqlite.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		store = sqliteStore
		r.closeFn = sqliteStore.Close
	}
	dashboard, err := app.New(app.Config{
		Gateway: gateway.Config{
			BaseURL:    r.settings.APIBaseURL,
			HTTPClient: &http.Client{Timeout: r.settings.HTTPTimeout},
			SignupPath: r.settings.SignupPath,
		},
		Credentials: store,
		StepDelay:   r.settings.StepDelay,
	})
	if err != nil {
		r.close()
		return err
	}
	r.dashboard = dashboard
	return nil
}

func (r *runtime) close() {
	if r.closeFn == nil {
		return
	}
	if err := r.closeFn(); err != nil {
		fmt.Fprintf(r.streams.Err, "warning: close session store: %v\n", err)
	}
	r.closeFn = nil
}

// newRootCommand builds the culater command tree and the runtime its
// commands share.
func newRootCommand(settings Settings, streams Streams) (*cobra.Command, *runtime) {
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}
	if settings.Output == "" {
		settings.Output = string(formatTable)
	}
	rt := &runtime{settings: settings, streams: streams}

	root := &cobra.Command{
		Use:           "culater",
		Short:         "Manage groups, tasks and invitations from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if id := strings.TrimSpace(rt.settings.RequestID); id != "" {
				cmd.SetContext(requestctx.WithRequestID(cmd.Context(), id))
			}
			return rt.open(cmd.Context())
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&rt.settings.APIBaseURL, "api", rt.settings.APIBaseURL, "API base URL")
	flags.StringVar(&rt.settings.SessionPath, "session", rt.settings.SessionPath, `session database path ("memory" keeps it in memory)`)
	flags.StringVarP(&rt.settings.Output, "output", "o", rt.settings.Output, "output format: table, json or yaml")
	flags.StringVar(&rt.settings.RequestID, "request-id", rt.settings.RequestID, "correlation id sent with every API call")

	root.AddCommand(
		newLoginCommand(rt),
		newSignupCommand(rt),
		newLogoutCommand(rt),
		newDashboardCommand(rt),
		newGroupCommand(rt),
		newTaskCommand(rt),
		newInviteCommand(rt),
	)
	return root, rt
}

// Execute runs the command tree with args and reports failures on the error
// stream in user terms.
func Execute(ctx context.Context, settings Settings, streams Streams, args []string) error {
	root, rt := newRootCommand(settings, streams)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	rt.close()
	if err != nil {
		reportError(root.ErrOrStderr(), err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	message := err.Error()
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		message = apperrors.UserMessage(err)
		if appErr.Kind == apperrors.KindClientValidation && appErr.Message == "" {
			message = "invalid input"
		}
	}
	fmt.Fprintf(w, "error: %s\n", message)
	fields := apperrors.FieldErrors(err)
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %s\n", key, fields[key])
	}
	if apperrors.Is(err, apperrors.KindUnauthenticated) {
		fmt.Fprintln(w, "run `culater login` to sign in")
	}
}

// requireSession is the pre-flight for commands behind the login gate.
func (r *runtime) requireSession(ctx context.Context) error {
	if !r.dashboard.Authenticated(ctx) {
		return apperrors.Unauthenticated("not logged in")
	}
	return nil
}

var errAborted = errors.New("aborted")
