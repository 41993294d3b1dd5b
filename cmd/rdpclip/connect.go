package main

import (
	"context"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glamberson/IronRDP/internal/clipsync"
	"github.com/glamberson/IronRDP/internal/focus"
	"github.com/glamberson/IronRDP/internal/ipc"
	"github.com/glamberson/IronRDP/internal/platform"
	"github.com/glamberson/IronRDP/internal/session"
)

func newConnectCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a session broker and sync the local clipboard",
		Long: `Connects to a remote desktop session broker and keeps the local
clipboard in sync with the session's clipboard channel. Reconnects
automatically on disconnect.

Config file search order:
  /etc/rdpclip/rdpclip.toml
  $HOME/.config/rdpclip/rdpclip.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → RDPCLIP_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runConnect(v) },
	}

	f := cmd.Flags()
	f.String("server", "localhost:8753", "session broker address (host:port)")
	f.String("token", "", "shared secret (empty = no auth, no encryption)")
	f.String("source", defaultSource(), "identifier shown in broker peer lists")
	f.Duration("poll-interval", 100*time.Millisecond, "clipboard poll period (standard mode)")
	f.Duration("retry-interval", 100*time.Millisecond, "gesture retry-wait period (degraded mode)")
	f.Int("retry-budget", 30, "gesture retry-wait firings (degraded mode)")
	f.Duration("postpone-timeout", time.Second, "paste-key buffer release deadline (degraded mode)")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runConnect(v *viper.Viper) error {
	setupLogging(v)

	clip := platform.New()
	defer clip.Close()
	mode := clipsync.DetectMode(clip)

	slog.Info("rdpclip starting",
		"version", Version,
		"server", v.GetString("server"),
		"backend", clip.Name(),
		"mode", mode,
		"encrypted", v.GetString("token") != "",
	)

	channel, err := session.New(session.Config{
		Addr:   v.GetString("server"),
		Token:  v.GetString("token"),
		Source: v.GetString("source"),
	})
	if err != nil {
		return err
	}

	// A headless client has no window, so the focus gate never defers.
	syncer := clipsync.New(mode, clip, channel, focus.Always{}, nil, clipsync.Config{
		PollInterval:    v.GetDuration("poll-interval"),
		RetryInterval:   v.GetDuration("retry-interval"),
		RetryBudget:     v.GetInt("retry-budget"),
		PostponeTimeout: v.GetDuration("postpone-timeout"),
	})
	defer syncer.Close()
	channel.SetHandler(syncer)
	syncer.Start()

	if ipcLn, err := ipc.Listen(); err != nil {
		slog.Warn("IPC socket unavailable", "err", err)
	} else {
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
		defer ipcLn.Close()
		go serveIPC(ipcLn, syncer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	channel.Run(ctx)
	return nil
}

// serveIPC answers status queries from CLI sub-commands.
func serveIPC(ln net.Listener, syncer *clipsync.Syncer) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go func() {
			defer conn.Close()
			sc := session.NewConn(conn, nil)
			msg, err := sc.ReadMsg()
			if err != nil || msg.Type != session.TypeStatus {
				return
			}
			st := syncer.Status()
			_ = sc.WriteMsg(&session.Message{
				Type:   session.TypeStatusResponse,
				Status: &st,
			})
		}()
	}
}
