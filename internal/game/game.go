// Package game holds the rules of a single trivia game: which questions are asked and
// how the score moves. It does no I/O.
package game

import (
	"errors"
	"math/rand/v2"

	"github.com/KDT2006/trivia/internal/bank"
)

var (
	ErrFinished       = errors.New("game is finished")
	ErrAnswerPending  = errors.New("previous question has not been answered")
	ErrNoQuestionOpen = errors.New("no question to answer")
)

// Result is the outcome of one answer. Answer is the correct option's text.
type Result struct {
	Correct bool
	Answer  string
}

// Game asks a fixed number of distinct questions drawn at random from a bank.
type Game struct {
	bank    *bank.Bank
	rng     *rand.Rand
	pool    []string
	total   int
	asked   int
	score   int
	current bank.Question
	open    bool
}

// New starts a game of total questions. The bank must hold at least that many.
func New(b *bank.Bank, total int, rng *rand.Rand) (*Game, error) {
	if err := b.Require(total); err != nil {
		return nil, err
	}

	return &Game{
		bank:  b,
		rng:   rng,
		pool:  b.Keys(),
		total: total,
	}, nil
}

// Next draws a question uniformly from those not yet asked in this game.
func (g *Game) Next() (bank.Question, error) {
	if g.open {
		return bank.Question{}, ErrAnswerPending
	}
	if g.asked == g.total {
		return bank.Question{}, ErrFinished
	}

	i := g.rng.IntN(len(g.pool))
	key := g.pool[i]

	// pool order is not significant
	last := len(g.pool) - 1
	g.pool[i] = g.pool[last]
	g.pool = g.pool[:last]

	g.current, _ = g.bank.Get(key)
	g.open = true
	return g.current, nil
}

// Answer scores guess against the open question.
func (g *Game) Answer(guess string) (Result, error) {
	if !g.open {
		return Result{}, ErrNoQuestionOpen
	}
	g.open = false
	g.asked++

	res := Result{
		Correct: g.current.IsCorrect(guess),
		Answer:  g.current.CorrectOption(),
	}
	if res.Correct {
		g.score++
	}
	return res, nil
}

// Finished reports whether every question has been asked and answered.
func (g *Game) Finished() bool {
	return g.asked == g.total
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Asked() int {
	return g.asked
}

func (g *Game) Total() int {
	return g.total
}
