package ipc

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startServer(t *testing.T) (*Server, string) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "pad.sock")
	srv, err := Listen(socketPath, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv, socketPath
}

// respond consumes one request and answers it.
func respond(t *testing.T, srv *Server, want Command, reply string) {
	t.Helper()

	select {
	case req := <-srv.Requests():
		if req.Cmd != want {
			t.Errorf("expected %s command, got %s", want, req.Cmd)
		}
		req.Respond(reply)
	case <-time.After(2 * time.Second):
		t.Fatal("no request delivered to the event loop")
	}
}

func TestPingAnsweredWithoutEventLoop(t *testing.T) {
	_, socketPath := startServer(t)

	reply, err := Send(socketPath, CmdPing)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "pong" {
		t.Errorf("expected pong, got %q", reply)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	srv, socketPath := startServer(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		respond(t, srv, CmdInfo, "state: visible")
	}()

	reply, err := Send(socketPath, CmdInfo)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "state: visible" {
		t.Errorf("unexpected reply %q", reply)
	}
	<-done
}

func TestToggleBurstIsCoalesced(t *testing.T) {
	srv, socketPath := startServer(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		respond(t, srv, CmdToggle, "visible")
	}()

	first, err := Send(socketPath, CmdToggle)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if first != "visible" {
		t.Errorf("unexpected first reply %q", first)
	}

	// Immediate repeat lands inside the coalesce window and never
	// reaches the event loop.
	second, err := Send(socketPath, CmdToggle)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if second != "coalesced" {
		t.Errorf("expected coalesced reply, got %q", second)
	}
	<-done
}

func TestUnknownCommandRejected(t *testing.T) {
	if _, err := ParseCommand("self-destruct"); err == nil {
		t.Error("expected unknown command to be rejected")
	}
}

func TestStaleSocketReplaced(t *testing.T) {
	// Simulate a crash: a socket file exists but nothing listens on it.
	// (Go unlinks the file on a clean listener Close, so plant one.)
	socketPath := filepath.Join(t.TempDir(), "pad.sock")
	if err := os.WriteFile(socketPath, nil, 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	replacement, err := Listen(socketPath, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Listen over stale socket failed: %v", err)
	}
	defer replacement.Close()

	if _, err := Send(socketPath, CmdPing); err != nil {
		t.Errorf("replacement socket not reachable: %v", err)
	}
}

func TestSecondInstanceRefused(t *testing.T) {
	_, socketPath := startServer(t)

	if _, err := Listen(socketPath, slog.New(slog.DiscardHandler)); err == nil {
		t.Fatal("expected second Listen on a live socket to fail")
	}
}
