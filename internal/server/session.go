package server

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"strings"

	"github.com/KDT2006/trivia/internal/bank"
	"github.com/KDT2006/trivia/internal/game"
	"github.com/KDT2006/trivia/internal/protocol"
	"github.com/google/uuid"
)

// Session plays trivia games with one connected client. It owns the connection and
// closes it when Run returns.
type Session struct {
	ID       uuid.UUID
	conn     *protocol.Conn
	bank     *bank.Bank
	perGame  int
	rng      *rand.Rand
	log      *slog.Logger
	state    SessionState
	game     *game.Game
	guess    string
	gamesRun int
}

func newSession(conn net.Conn, b *bank.Bank, perGame int, rng *rand.Rand, log *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:      id,
		conn:    protocol.NewConn(conn),
		bank:    b,
		perGame: perGame,
		rng:     rng,
		log:     log.With("session", id, "remote", conn.RemoteAddr()),
		state:   StateAwaitingStart,
	}
}

// Run drives the session until the client declines a new game or disconnects.
func (s *Session) Run() {
	defer s.conn.Close()

	for s.state != StateClosed {
		s.state = s.step(s.state)
	}

	s.log.Debug("session closed", "games", s.gamesRun)
}

func (s *Session) step(state SessionState) SessionState {
	switch state {
	case StateAwaitingStart:
		line, err := s.conn.ReadLine()
		if err != nil {
			s.logReadError(err)
			return StateClosed
		}
		if !protocol.IsStart(line) {
			s.log.Debug("client declined a new game", "signal", line)
			return StateClosed
		}
		if err := s.newGame(); err != nil {
			s.log.Error("failed to start game", "error", err)
			return StateClosed
		}
		return StateSendQuestion

	case StateSendQuestion:
		q, err := s.game.Next()
		if err != nil {
			s.log.Error("failed to draw question", "error", err)
			return StateClosed
		}
		if err := s.conn.WriteLine(protocol.EncodeQuestion(q.Prompt, q.Options)); err != nil {
			s.logWriteError(err)
			return StateClosed
		}
		return StateAwaitAnswer

	case StateAwaitAnswer:
		line, err := s.conn.ReadLine()
		if err != nil {
			s.logReadError(err)
			return StateClosed
		}
		s.guess = strings.TrimSpace(line)
		return StateSendFeedback

	case StateSendFeedback:
		res, err := s.game.Answer(s.guess)
		if err != nil {
			s.log.Error("failed to score answer", "error", err)
			return StateClosed
		}

		feedback := protocol.EncodeCorrect()
		if !res.Correct {
			feedback = protocol.EncodeWrong(res.Answer)
		}
		if err := s.conn.WriteLine(feedback); err != nil {
			s.logWriteError(err)
			return StateClosed
		}

		if s.game.Finished() {
			return StateSendGameOver
		}
		return StateSendQuestion

	case StateSendGameOver:
		score := s.game.Score()
		if err := s.conn.WriteLine(protocol.EncodeGameOver(score)); err != nil {
			s.logWriteError(err)
			return StateClosed
		}
		s.gamesRun++
		s.log.Info("game finished", "score", score, "questions", s.game.Total())
		return StateAwaitingStart

	default:
		return StateClosed
	}
}

func (s *Session) newGame() error {
	g, err := game.New(s.bank, s.perGame, s.rng)
	if err != nil {
		return err
	}
	s.game = g
	s.guess = ""
	s.log.Debug("game started")
	return nil
}

func (s *Session) logReadError(err error) {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		s.log.Debug("connection closed by client", "state", s.state)
		return
	}
	s.log.Debug("read failed", "state", s.state, "error", err)
}

func (s *Session) logWriteError(err error) {
	s.log.Debug("write failed", "state", s.state, "error", err)
}
