package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/culater/internal/platform/cmd"
	"github.com/louisbranch/culater/internal/platform/otel"
	"github.com/louisbranch/culater/internal/platform/timeouts"
	"github.com/louisbranch/culater/internal/services/dashboard/cli"
)

// Config holds the dashboard command configuration. Every field reads a
// CULATER_-prefixed variable; command-line flags override it.
type Config struct {
	APIBaseURL         string        `env:"API_BASE_URL" envDefault:"http://localhost:5000"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT"`
	SessionPath        string        `env:"SESSION_PATH"`
	BootstrapStepDelay time.Duration `env:"BOOTSTRAP_STEP_DELAY"`
	SignupPath         string        `env:"SIGNUP_PATH"`
	Output             string        `env:"OUTPUT" envDefault:"table"`
	Telemetry          otel.Config
}

// ParseConfig reads Config from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = timeouts.HTTPRequest
	}
	if cfg.BootstrapStepDelay < 0 {
		return Config{}, fmt.Errorf("bootstrap step delay must not be negative")
	}
	if cfg.BootstrapStepDelay == 0 {
		cfg.BootstrapStepDelay = timeouts.BootstrapStep
	}
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	return cfg, nil
}

// Run executes one culater invocation.
func Run(ctx context.Context, cfg Config, args []string, in io.Reader, out, errOut io.Writer) error {
	settings := cli.Settings{
		APIBaseURL:  cfg.APIBaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
		SessionPath: cfg.SessionPath,
		StepDelay:   cfg.BootstrapStepDelay,
		SignupPath:  cfg.SignupPath,
		Output:      cfg.Output,
	}
	streams := cli.Streams{In: in, Out: out, Err: errOut}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDashboard, entrypoint.RunOptions{Telemetry: cfg.Telemetry}, func(ctx context.Context) error {
		return cli.Execute(ctx, settings, streams, args)
	})
}
