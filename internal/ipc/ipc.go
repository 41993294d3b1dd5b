// Package ipc provides the local Unix-socket channel that CLI sub-commands
// (status) use to talk to a running rdpclip client instead of opening their
// own session connections.
package ipc

import (
	"net"
	"os"
	"path/filepath"
)

// SocketPath returns the path for the IPC socket: $RDPCLIP_SOCKET when set,
// otherwise $XDG_RUNTIME_DIR/rdpclip.sock, falling back to the temp dir.
func SocketPath() string {
	if s := os.Getenv("RDPCLIP_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "rdpclip.sock")
	}
	return filepath.Join(os.TempDir(), "rdpclip.sock")
}

// Listen creates a net.Listener on the IPC socket path, removing any stale
// socket file from a previous run first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to a running client's IPC socket.
func Dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}
