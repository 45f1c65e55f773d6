package ipc

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// toggleCoalesce suppresses duplicate toggle commands arriving in a
// burst, e.g. a key-repeating global shortcut.
const toggleCoalesce = 200 * time.Millisecond

// replyTimeout bounds how long a connection waits for the event loop.
const replyTimeout = time.Second

// Request is a command received on the control socket. The consumer must
// call Respond exactly once.
type Request struct {
	Cmd   Command
	reply chan string
}

// Respond sends the reply for this request back to the caller.
func (r Request) Respond(text string) {
	select {
	case r.reply <- text:
	default:
	}
}

// Server owns the control socket and hands decoded commands to the event
// loop through Requests.
type Server struct {
	listener net.Listener
	logger   *slog.Logger
	requests chan Request

	mu         sync.Mutex
	lastToggle time.Time

	closeOnce sync.Once
}

// Listen creates the control socket, replacing a stale socket file left
// behind by a crashed instance (detected by a failed ping).
func Listen(socketPath string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		if _, pingErr := Send(socketPath, CmdPing); pingErr == nil {
			return nil, fmt.Errorf("another overlay is already running on %s", socketPath)
		}
		if rmErr := os.Remove(socketPath); rmErr != nil {
			return nil, fmt.Errorf("listen on %s: %w", socketPath, err)
		}
		listener, err = net.Listen("unix", socketPath)
		if err != nil {
			return nil, fmt.Errorf("listen on %s: %w", socketPath, err)
		}
		logger.Info("replaced stale control socket", "path", socketPath)
	}

	s := &Server{
		listener: listener,
		logger:   logger,
		requests: make(chan Request, 8),
	}
	go s.acceptLoop()
	return s, nil
}

// Requests returns the stream of decoded commands.
func (s *Server) Requests() <-chan Request { return s.requests }

// Close shuts the socket down and removes the socket file. The requests
// channel is left open: in-flight handler goroutines may still try to
// send on it, and they time out on their own.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.listener.Close()
	})
	return err
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return // listener closed
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		s.logger.Debug("control connection read failed", "error", err)
		return
	}
	cmd, err := ParseCommand(line)
	if err != nil {
		fmt.Fprintf(conn, "error: %v\n", err)
		return
	}

	switch cmd {
	case CmdPing:
		fmt.Fprintln(conn, "pong")
		return
	case CmdToggle:
		if s.coalesceToggle() {
			fmt.Fprintln(conn, "coalesced")
			return
		}
	}

	req := Request{Cmd: cmd, reply: make(chan string, 1)}
	select {
	case s.requests <- req:
	case <-time.After(replyTimeout):
		fmt.Fprintln(conn, "error: overlay busy")
		return
	}

	select {
	case reply := <-req.reply:
		fmt.Fprintln(conn, reply)
	case <-time.After(replyTimeout):
		fmt.Fprintln(conn, "error: overlay did not respond")
	}
}

// coalesceToggle reports whether this toggle arrived inside the coalesce
// window of the previous one.
func (s *Server) coalesceToggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if now.Sub(s.lastToggle) < toggleCoalesce {
		return true
	}
	s.lastToggle = now
	return false
}
