package server

import (
	"net"
	"testing"
	"time"

	"github.com/KDT2006/trivia/internal/logger"
	"github.com/KDT2006/trivia/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeSession runs a session over net.Pipe and returns the client end.
func pipeSession(t *testing.T, srv *Server) (*protocol.Conn, <-chan struct{}) {
	t.Helper()

	serverEnd, clientEnd := net.Pipe()
	require.NoError(t, clientEnd.SetDeadline(time.Now().Add(5*time.Second)))
	t.Cleanup(func() { clientEnd.Close() })

	done := make(chan struct{})
	go func() {
		srv.HandleConn(serverEnd)
		close(done)
	}()

	return protocol.NewConn(clientEnd), done
}

func TestSessionSeededOrderIsReproducible(t *testing.T) {
	b := testBank(t, 10)

	order := func() []string {
		srv, err := New("unused", b, WithSeed(42), WithLogger(logger.Discard()))
		require.NoError(t, err)

		c, _ := pipeSession(t, srv)
		res, err := playGame(c, b, 5, func(int) bool { return true })
		require.NoError(t, err)
		return res.prompts
	}

	assert.Equal(t, order(), order())
}

func TestSessionWrongFeedbackNamesCorrectOption(t *testing.T) {
	b := testBank(t, 5)
	srv, err := New("unused", b, WithLogger(logger.Discard()))
	require.NoError(t, err)
	c, _ := pipeSession(t, srv)

	require.NoError(t, c.WriteLine("start"))
	line, err := c.ReadLine()
	require.NoError(t, err)

	msg, err := protocol.Decode(line)
	require.NoError(t, err)
	prompt := msg.Payload.(protocol.QuestionPayload).Prompt

	require.NoError(t, c.WriteLine("0999"))
	line, err = c.ReadLine()
	require.NoError(t, err)

	for _, key := range b.Keys() {
		q, _ := b.Get(key)
		if q.Prompt == prompt {
			assert.Equal(t, "FEEDBACK:WRONG! The answer was '"+q.CorrectOption()+"'", line)
		}
	}
}

func TestSessionEndsOnDisconnect(t *testing.T) {
	srv, err := New("unused", testBank(t, 5), WithLogger(logger.Discard()))
	require.NoError(t, err)
	c, done := pipeSession(t, srv)

	require.NoError(t, c.WriteLine("start"))
	_, err = c.ReadLine()
	require.NoError(t, err)
	require.NoError(t, c.Close())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end after disconnect")
	}
}

func TestSessionStateString(t *testing.T) {
	states := map[SessionState]string{
		StateAwaitingStart: "awaiting_start",
		StateSendQuestion:  "send_question",
		StateAwaitAnswer:   "await_answer",
		StateSendFeedback:  "send_feedback",
		StateSendGameOver:  "send_gameover",
		StateClosed:        "closed",
		SessionState(99):   "unknown",
	}

	for state, want := range states {
		assert.Equal(t, want, state.String())
	}
}
