// Package protocol implements the trivia line protocol. Every server message is a
// single line starting with a tag; the client answers with bare lines.
//
//	QUESTION:<prompt> OPTIONS:1. <opt>END:2. <opt>END:
//	FEEDBACK:CORRECT!
//	FEEDBACK:WRONG! The answer was '<opt>'
//	GAMEOVER:Total score: <n>
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type MessageType string

const (
	// Server -> Client
	QuestionMessage MessageType = "question"
	FeedbackMessage MessageType = "feedback"
	GameOverMessage MessageType = "gameover"
)

const (
	TagQuestion = "QUESTION:"
	TagOptions  = "OPTIONS:"
	TagEnd      = "END:"
	TagFeedback = "FEEDBACK:"
	TagGameOver = "GAMEOVER:"

	// StartSignal is what a client sends to begin a game.
	StartSignal = "start"

	correctText    = "CORRECT!"
	wrongPrefix    = "WRONG! The answer was '"
	wrongSuffix    = "'"
	gameOverPrefix = "Total score: "
)

var (
	ErrUnknownMessage = errors.New("unknown message")
	ErrMalformed      = errors.New("malformed message")
)

// Message is a decoded server line.
type Message struct {
	Type    MessageType
	Payload interface{}
}

// QuestionPayload carries the prompt and the option texts without their numbering.
type QuestionPayload struct {
	Prompt  string
	Options []string
}

// FeedbackPayload is the server's verdict on one answer. Answer is only set for wrong
// answers and holds the correct option's text.
type FeedbackPayload struct {
	Correct bool
	Text    string
	Answer  string
}

// GameOverPayload carries the final score line.
type GameOverPayload struct {
	Text  string
	Score int
}

// IsStart reports whether line is the start signal. Case and surrounding whitespace
// are ignored.
func IsStart(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), StartSignal)
}

// EncodeQuestion renders a question line without the trailing newline.
func EncodeQuestion(prompt string, options []string) string {
	var sb strings.Builder
	sb.WriteString(TagQuestion)
	sb.WriteString(prompt)
	sb.WriteString(" ")
	sb.WriteString(TagOptions)
	for i, opt := range options {
		fmt.Fprintf(&sb, "%d. %s%s", i+1, opt, TagEnd)
	}
	return sb.String()
}

// EncodeCorrect renders the feedback line for a correct answer.
func EncodeCorrect() string {
	return TagFeedback + correctText
}

// EncodeWrong renders the feedback line for a wrong answer, naming the correct option.
func EncodeWrong(answer string) string {
	return TagFeedback + wrongPrefix + answer + wrongSuffix
}

// EncodeGameOver renders the final score line.
func EncodeGameOver(score int) string {
	return TagGameOver + gameOverPrefix + strconv.Itoa(score)
}

// Decode parses one server line. A trailing "\n" or "\r\n" is ignored.
func Decode(line string) (Message, error) {
	line = strings.TrimRight(line, "\r\n")

	switch {
	case strings.HasPrefix(line, TagQuestion):
		p, err := decodeQuestion(strings.TrimPrefix(line, TagQuestion))
		if err != nil {
			return Message{}, err
		}
		return Message{Type: QuestionMessage, Payload: p}, nil

	case strings.HasPrefix(line, TagFeedback):
		return Message{Type: FeedbackMessage, Payload: decodeFeedback(strings.TrimPrefix(line, TagFeedback))}, nil

	case strings.HasPrefix(line, TagGameOver):
		p, err := decodeGameOver(strings.TrimPrefix(line, TagGameOver))
		if err != nil {
			return Message{}, err
		}
		return Message{Type: GameOverMessage, Payload: p}, nil

	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownMessage, line)
	}
}

func decodeQuestion(body string) (QuestionPayload, error) {
	prompt, rest, ok := strings.Cut(body, TagOptions)
	if !ok {
		return QuestionPayload{}, fmt.Errorf("%w: question without %s", ErrMalformed, TagOptions)
	}

	segments := strings.Split(rest, TagEnd)
	// Every option is terminated by END:, so the last segment is empty.
	if last := len(segments) - 1; segments[last] == "" {
		segments = segments[:last]
	}

	options := make([]string, 0, len(segments))
	for i, seg := range segments {
		num, text, ok := strings.Cut(seg, ". ")
		if !ok || num != strconv.Itoa(i+1) {
			return QuestionPayload{}, fmt.Errorf("%w: option %d is %q", ErrMalformed, i+1, seg)
		}
		options = append(options, text)
	}

	return QuestionPayload{
		Prompt:  strings.TrimSuffix(prompt, " "),
		Options: options,
	}, nil
}

func decodeFeedback(body string) FeedbackPayload {
	if body == correctText {
		return FeedbackPayload{Correct: true, Text: body}
	}

	p := FeedbackPayload{Text: body}
	if rest, ok := strings.CutPrefix(body, wrongPrefix); ok {
		p.Answer = strings.TrimSuffix(rest, wrongSuffix)
	}
	return p
}

func decodeGameOver(body string) (GameOverPayload, error) {
	rest, ok := strings.CutPrefix(body, gameOverPrefix)
	if !ok {
		return GameOverPayload{}, fmt.Errorf("%w: game over line %q", ErrMalformed, body)
	}

	score, err := strconv.Atoi(rest)
	if err != nil {
		return GameOverPayload{}, fmt.Errorf("%w: score %q", ErrMalformed, rest)
	}

	return GameOverPayload{Text: body, Score: score}, nil
}
