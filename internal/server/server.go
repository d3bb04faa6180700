package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"sync/atomic"

	"github.com/KDT2006/trivia/internal/bank"
	"golang.org/x/sync/errgroup"
)

const DefaultQuestionsPerGame = 5

type Server struct {
	ListenAddr string
	bank       *bank.Bank
	perGame    int
	seed       *uint64
	sessions   atomic.Uint64
	log        *slog.Logger
	ln         net.Listener
}

type Option func(*Server)

// WithQuestionsPerGame sets how many questions each game asks.
func WithQuestionsPerGame(n int) Option {
	return func(s *Server) {
		s.perGame = n
	}
}

// WithSeed makes question selection deterministic. Session n draws from a PCG
// stream seeded with (seed, n).
func WithSeed(seed uint64) Option {
	return func(s *Server) {
		s.seed = &seed
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// New returns a server for the given bank. The bank must hold at least as many
// questions as one game asks.
func New(listenAddr string, b *bank.Bank, opts ...Option) (*Server, error) {
	s := &Server{
		ListenAddr: listenAddr,
		bank:       b,
		perGame:    DefaultQuestionsPerGame,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.perGame <= 0 {
		return nil, fmt.Errorf("questions per game must be positive, got %d", s.perGame)
	}
	if err := b.Require(s.perGame); err != nil {
		return nil, err
	}

	return s, nil
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.ln = ln

	s.log.Info("server is running", "address", ln.Addr())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled, then closes the listener and
// returns nil. Sessions already running are left to finish on their own.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("server is not listening")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("closing listener", "address", s.ln.Addr())
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("failed to close listener: %w", err)
		}
		return nil
	})

	g.Go(s.acceptLoop)

	return g.Wait()
}

// Start is Listen followed by Serve.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) acceptLoop() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.Info("listener closed")
				return nil
			}

			s.log.Error("failed to accept connection", "error", err)
			continue
		}

		s.log.Info("accepted connection", "remote", conn.RemoteAddr())
		go s.HandleConn(conn)
	}
}

// HandleConn runs a session on conn and closes it when the session ends.
func (s *Server) HandleConn(conn net.Conn) {
	newSession(conn, s.bank, s.perGame, s.newRand(), s.log).Run()
}

func (s *Server) newRand() *rand.Rand {
	n := s.sessions.Add(1)
	if s.seed != nil {
		return rand.New(rand.NewPCG(*s.seed, n))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
