package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/config"
)

// SessionHandler runs the conversation with one connected client. The
// context is cancelled when the acceptor shuts down.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// Acceptor listens for telnet clients and hands each to a SessionHandler.
type Acceptor struct {
	cfg     config.ArenaConfig
	handler SessionHandler
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
	active   int
}

// NewAcceptor creates an acceptor for cfg.
//
// Precondition: handler and logger must be non-nil.
func NewAcceptor(cfg config.ArenaConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

// Serve accepts clients until ctx is cancelled, then closes every open
// session and waits for the handlers to return. It satisfies server.Job.
func (a *Acceptor) Serve(ctx context.Context) error {
	start := time.Now()
	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	a.mu.Lock()
	a.listener = listener
	a.mu.Unlock()
	close(a.ready)

	a.logger.Info("arena listening",
		zap.String("addr", listener.Addr().String()),
		zap.Duration("startup", time.Since(start)),
	)

	// Sessions are cancelled before Serve waits for them.
	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	for {
		raw, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				a.logger.Info("arena stopped")
				return nil
			}
			a.logger.Error("accepting connection", zap.Error(err))
			continue
		}
		if !a.admit() {
			a.logger.Warn("arena full, refusing client", zap.Stringer("remote_addr", raw.RemoteAddr()))
			conn := NewConn(raw, 0, a.cfg.WriteTimeout)
			_ = conn.WriteLine("The arena is full. Try again later.")
			conn.Close()
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer a.release()
			a.handleConn(ctx, raw)
		}()
	}
}

func (a *Acceptor) admit() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cfg.MaxSessions > 0 && a.active >= a.cfg.MaxSessions {
		return false
	}
	a.active++
	return true
}

func (a *Acceptor) release() {
	a.mu.Lock()
	a.active--
	a.mu.Unlock()
}

func (a *Acceptor) handleConn(ctx context.Context, raw net.Conn) {
	start := time.Now()
	logger := a.logger.With(zap.Stringer("remote_addr", raw.RemoteAddr()))
	logger.Info("client connected")

	conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
	defer conn.Close()
	if err := conn.Negotiate(); err != nil {
		logger.Error("telnet negotiation failed", zap.Error(err))
		return
	}

	// Closing the connection unblocks a handler waiting on input.
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sessionCtx, func() { conn.Close() })
	defer stop()

	if err := a.handler.HandleSession(sessionCtx, conn); err != nil {
		logger.Debug("session ended", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	logger.Info("session ended cleanly", zap.Duration("duration", time.Since(start)))
}

// Ready is closed once the listener is bound.
func (a *Acceptor) Ready() <-chan struct{} { return a.ready }

// Addr returns the bound address, or "" before Serve has bound it.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Active reports how many sessions are open.
func (a *Acceptor) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}
