// Package timeouts defines shared durations for the dashboard client so the
// command layer and tests agree on the same defaults.
package timeouts

import "time"

// HTTPRequest caps a single outbound API request. Exceeding it surfaces as a
// network failure.
const HTTPRequest = 10 * time.Second

// TelemetryShutdown limits how long span export may block process exit.
const TelemetryShutdown = 5 * time.Second

// BootstrapStep is the default pause between ordered bootstrap fetches.
const BootstrapStep = 0 * time.Second
