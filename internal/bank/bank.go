// Package bank loads the trivia question bank. A Bank is immutable once loaded and is
// shared by every session without locking.
package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// ErrTooFewQuestions is returned when a bank cannot fill a single game.
var ErrTooFewQuestions = errors.New("not enough questions in bank")

// Question is a single multiple-choice question. Answer is the 1-based index of the
// correct option, kept as a string because that is what clients send back.
type Question struct {
	ID      string
	Prompt  string
	Options []string
	Answer  string
}

// UnmarshalJSON decodes the positional form ["prompt", ["opt", ...], "n"].
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("expected [prompt, options, answer], got %d elements", len(raw))
	}

	if err := json.Unmarshal(raw[0], &q.Prompt); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if err := json.Unmarshal(raw[1], &q.Options); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if err := json.Unmarshal(raw[2], &q.Answer); err != nil {
		return fmt.Errorf("answer: %w", err)
	}

	return nil
}

// IsCorrect reports whether guess names the correct option. The comparison is
// verbatim: "01" is not "1".
func (q Question) IsCorrect(guess string) bool {
	return guess == q.Answer
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	n, _ := strconv.Atoi(q.Answer)
	return q.Options[n-1]
}

func (q Question) validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("question %q has no prompt", q.ID)
	}

	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options", q.ID)
	}

	n, err := strconv.Atoi(q.Answer)
	if err != nil || n < 1 || n > len(q.Options) {
		return fmt.Errorf("question %q has invalid answer %q for %d options", q.ID, q.Answer, len(q.Options))
	}

	return nil
}

// Bank maps question IDs to questions.
type Bank struct {
	questions map[string]Question
	keys      []string
}

// New builds a bank from already-decoded questions.
func New(questions map[string]Question) (*Bank, error) {
	b := &Bank{
		questions: make(map[string]Question, len(questions)),
		keys:      make([]string, 0, len(questions)),
	}

	for id, q := range questions {
		q.ID = id
		q.Options = slices.Clone(q.Options)
		if err := q.validate(); err != nil {
			return nil, err
		}
		b.questions[id] = q
		b.keys = append(b.keys, id)
	}
	slices.Sort(b.keys)

	return b, nil
}

// Parse decodes a bank from JSON of the form {"id": ["prompt", ["opt", ...], "n"]}.
func Parse(r io.Reader) (*Bank, error) {
	var questions map[string]Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}

	return New(questions)
}

// Load reads and parses the bank at path.
func Load(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return b, nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.keys)
}

// Keys returns the question IDs in sorted order. The slice is a fresh copy that the
// caller may modify.
func (b *Bank) Keys() []string {
	return slices.Clone(b.keys)
}

// Get returns the question with the given ID. The returned Options slice must not be
// modified.
func (b *Bank) Get(id string) (Question, bool) {
	q, ok := b.questions[id]
	return q, ok
}

// Require returns ErrTooFewQuestions if the bank holds fewer than n questions.
func (b *Bank) Require(n int) error {
	if b.Len() < n {
		return fmt.Errorf("%w: have %d, need %d", ErrTooFewQuestions, b.Len(), n)
	}
	return nil
}
