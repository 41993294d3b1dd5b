package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glamberson/IronRDP/internal/ipc"
	"github.com/glamberson/IronRDP/internal/session"
)

func newStatusCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of a running rdpclip client",
		Long: `Queries the local rdpclip client over its IPC Unix socket and prints
the active sync mode, clipboard backend, and last transferred MIME types.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error { return runStatus(jsonOut) },
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output raw JSON")
	return cmd
}

func runStatus(jsonOut bool) error {
	conn, err := ipc.Dial()
	if err != nil {
		return fmt.Errorf("no rdpclip client running (%s): %w", ipc.SocketPath(), err)
	}
	defer conn.Close()

	sc := session.NewConn(conn, nil)
	if err := sc.WriteMsg(&session.Message{Type: session.TypeStatus}); err != nil {
		return fmt.Errorf("status request: %w", err)
	}
	msg, err := sc.ReadMsg()
	if err != nil {
		return fmt.Errorf("status response: %w", err)
	}
	if msg.Type != session.TypeStatusResponse || msg.Status == nil {
		return fmt.Errorf("unexpected response type %q", msg.Type)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(msg.Status)
	}

	st := msg.Status
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "mode:\t%s\n", st.Mode)
	fmt.Fprintf(tw, "backend:\t%s\n", st.Backend)
	fmt.Fprintf(tw, "last sent:\t%s\n", orNone(st.LastSentTypes))
	fmt.Fprintf(tw, "last received:\t%s\n", orNone(st.LastReceivedTypes))
	fmt.Fprintf(tw, "pending write:\t%v\n", st.PendingWrite)
	return tw.Flush()
}

func orNone(types []string) string {
	if len(types) == 0 {
		return "(none)"
	}
	return strings.Join(types, ", ")
}
