package server

type SessionState byte

const (
	StateAwaitingStart SessionState = iota
	StateSendQuestion
	StateAwaitAnswer
	StateSendFeedback
	StateSendGameOver
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingStart:
		return "awaiting_start"
	case StateSendQuestion:
		return "send_question"
	case StateAwaitAnswer:
		return "await_answer"
	case StateSendFeedback:
		return "send_feedback"
	case StateSendGameOver:
		return "send_gameover"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
