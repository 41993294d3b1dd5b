// rdpclip: clipboard synchronization client for remote desktop sessions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glamberson/IronRDP/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "rdpclip",
		Short: "Clipboard synchronization for remote desktop sessions",
		Long: `rdpclip keeps the local system clipboard in sync with the clipboard
channel of a remote desktop session.

At startup the local clipboard backend is probed and one strategy is chosen:
full bidirectional polling sync where clipboard read access exists, or a
degraded paste-event/gesture bridge where it does not.

Run "rdpclip connect" to join a session broker. Use "rdpclip status" to
inspect a running client.

Config file search order (first found wins):
  /etc/rdpclip/rdpclip.toml
  $HOME/.config/rdpclip/rdpclip.toml
  path supplied via --config

All flags can be set via RDPCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newConnectCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("rdpclip %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(formatStr, levelStr string) {
	logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr))
}

func defaultSource() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
