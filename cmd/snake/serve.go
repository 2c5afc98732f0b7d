package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/platform/web"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server where every connection plays its own round.
All players share one leaderboard stored in the scores database.
With --http, the leaderboard is also served as JSON:

  GET /health          - liveness and database check
  GET /scores          - best rounds on any field size (?limit=N)
  GET /scores/{size}   - best rounds on one field size (?limit=N)
  GET /stats           - per-size round counts and averages

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --http :8080              # Also serve the JSON leaderboard
  snake serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP leaderboard address (disabled when empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", def.IdleTimeout, "Idle time before a session is disconnected")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		if flagHTTPAddr != "" {
			return err
		}
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = flagIdleTimeout
	sshCfg.Seed = flagSeed
	sshServer, err := tui.NewSSHServer(sshCfg, cfg, store, logger.WithPrefix("snake-ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	servers := 1
	go func() { errCh <- sshServer.ListenAndServe(ctx) }()

	if flagHTTPAddr != "" {
		servers++
		httpServer := web.New(store, cfg.Field.Sizes, logger.WithPrefix("snake-http"))
		go func() { errCh <- httpServer.ListenAndServe(ctx, flagHTTPAddr) }()
	}

	fmt.Printf("Snake SSH server on %s\n", sshServer.Addr())
	if flagHTTPAddr != "" {
		fmt.Printf("Leaderboard on http://%s/scores\n", flagHTTPAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	// The first server to stop takes the other down with it.
	var errs []error
	for i := 0; i < servers; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
		stop()
	}
	return errors.Join(errs...)
}
