// Package main runs culater, the terminal dashboard for groups, tasks and
// invitations.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	dashboardcmd "github.com/louisbranch/culater/internal/cmd/dashboard"
)

func main() {
	log.SetPrefix("[DASHBOARD] ")
	cfg, err := dashboardcmd.ParseConfig()
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dashboardcmd.Run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
