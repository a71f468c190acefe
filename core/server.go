package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync/atomic"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/modoki/core/config"
	"github.com/josephlewis42/modoki/core/logger"
	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/terminal/console"
	"github.com/josephlewis42/modoki/core/ttylog"
	"github.com/juju/ratelimit"
	gossh "golang.org/x/crypto/ssh"
)

type listCloser []io.Closer

func (l listCloser) Close() error {
	var errs []error
	for _, c := range l {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Server exposes the shell over SSH. Authentication happens at the shell's
// login prompt so the SSH handshake accepts every client.
type Server struct {
	configuration *config.Configuration
	toClose       listCloser
	logger        *logger.Logger
	sshServer     *ssh.Server
}

// NewServer creates a server that logs events to the configuration's app log.
func NewServer(configuration *config.Configuration) (*Server, error) {
	var toClose listCloser

	appLog, err := configuration.OpenAppLog()
	if err != nil {
		return nil, fmt.Errorf("opening app log: %w", err)
	}
	toClose = append(toClose, appLog)

	signer, err := hostSigner(configuration)
	if err != nil {
		toClose.Close()
		return nil, err
	}

	server := &Server{
		configuration: configuration,
		toClose:       toClose,
		logger:        logger.NewJSONLinesLogRecorder(appLog),
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSHPort),
		Handler: func(s ssh.Session) {
			if err := server.HandleConnection(s); err != nil {
				log.Printf("session from %s: %v", s.RemoteAddr(), err)
			}
		},
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

func hostSigner(configuration *config.Configuration) (gossh.Signer, error) {
	keyPem, err := configuration.PrivateKeyPem()
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}

	signer, err := gossh.ParsePrivateKey(keyPem)
	if err != nil {
		return nil, fmt.Errorf("parsing host key: %w", err)
	}
	return signer, nil
}

// Close releases the server's log files.
func (h *Server) Close() error {
	return h.toClose.Close()
}

// HandleConnection runs one login cycle on the session then closes it.
func (h *Server) HandleConnection(s ssh.Session) error {
	sessionLogger := h.logger.NewSession()

	ptyInfo, winch, isPTY := s.Pty()
	if !isPTY {
		fmt.Fprintln(s, "A terminal is required, try: ssh -t")
		return s.Exit(1)
	}

	// Watch for window changes.
	var width atomic.Int64
	width.Store(int64(ptyInfo.Window.Width))
	go func() {
		for window := range winch {
			width.Store(int64(window.Width))
		}
	}()

	var out io.Writer = s
	if rate := h.configuration.OutputBytesPerSecond; rate > 0 {
		out = ratelimit.Writer(s, ratelimit.NewBucketWithRate(float64(rate), rate))
	}

	con, err := console.New(console.Options{
		Stdin:  s,
		Stdout: out,
		Width: func() int {
			return int(width.Load())
		},
		Remote: true,
		Color:  true,
	})
	if err != nil {
		s.Exit(1)
		return err
	}
	defer con.Close()

	var term shell.Terminal = con
	if h.configuration.RecordSessions {
		logName := fmt.Sprintf("%s.%s", sessionLogger.SessionID(), ttylog.AsciicastFileExt)
		logFd, err := h.configuration.CreateSessionLog(logName)
		if err != nil {
			s.Exit(1)
			return err
		}
		defer logFd.Close()

		term = ttylog.NewRecorder(con, ttylog.NewAsciicastLogSink(logFd))
	}

	sh := NewShell(h.configuration, term, sessionLogger, s.RemoteAddr().String())
	if err := sh.Run(s.Context()); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		s.Exit(1)
		return err
	}

	return s.Exit(0)
}

// ListenAndServe listens on the configured port.
func (h *Server) ListenAndServe() error {
	log.Printf("- Starting SSH server on %s\n", h.sshServer.Addr)
	return h.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (h *Server) Serve(l net.Listener) error {
	return h.sshServer.Serve(l)
}

// Shutdown stops accepting connections and waits for active ones up to the
// context deadline.
func (h *Server) Shutdown(ctx context.Context) error {
	defer h.Close()
	return h.sshServer.Shutdown(ctx)
}
