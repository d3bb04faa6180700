package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/KDT2006/trivia/internal/protocol"
	"github.com/fatih/color"
)

const DefaultWidth = 90

// errInputClosed marks the end of the user's input, which ends the client cleanly.
var errInputClosed = errors.New("input closed")

var (
	headerColor     = color.New(color.FgCyan, color.Bold)
	correctFeedback = color.New(color.FgGreen)
	wrongFeedback   = color.New(color.FgRed)
)

type Client struct {
	ServerAddr string
	in         *bufio.Reader
	out        io.Writer
	width      int
	dial       func(addr string) (net.Conn, error)
	log        *slog.Logger
}

type Option func(*Client)

func WithInput(r io.Reader) Option {
	return func(c *Client) {
		c.in = bufio.NewReader(r)
	}
}

func WithOutput(w io.Writer) Option {
	return func(c *Client) {
		c.out = w
	}
}

// WithWidth sets the width of the rules drawn around each question.
func WithWidth(width int) Option {
	return func(c *Client) {
		if width > 0 {
			c.width = width
		}
	}
}

func WithDialer(dial func(addr string) (net.Conn, error)) Option {
	return func(c *Client) {
		c.dial = dial
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(serverAddr string, opts ...Option) *Client {
	c := &Client{
		ServerAddr: serverAddr,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		width:      DefaultWidth,
		dial: func(addr string) (net.Conn, error) {
			return net.Dial("tcp", addr)
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the instructions and plays games until the user declines or input ends.
// Each game uses a fresh connection.
func (c *Client) Run() error {
	c.printBanner()

	for {
		fmt.Fprintln(c.out, "\nWould you like to start a new game? [y/n]: ")

		play, err := c.promptYesNo()
		if err == nil && play {
			err = c.playGame()
		}

		switch {
		case errors.Is(err, errInputClosed), err == nil && !play:
			fmt.Fprintln(c.out, "\nClient is exiting...")
			return nil
		case err != nil:
			return err
		}
	}
}

func (c *Client) printBanner() {
	rule := strings.Repeat("=", 69)
	headerColor.Fprintln(c.out, rule)
	headerColor.Fprintln(c.out, "                    University of Minnesota Trivia                   ")
	headerColor.Fprintln(c.out, rule)
	fmt.Fprintln(c.out)

	fmt.Fprintln(c.out, "\n------------------------- GAME INSTRUCTIONS -------------------------")
	fmt.Fprintln(c.out, "  • Five random trivia questions about the University of Minnesota")
	fmt.Fprintln(c.out, "    will be proposed to you along with possible answers.")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "  • Select your answer by entering the associated number (e.g., '1').")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "  • After all five questions have been answered, you will receive")
	fmt.Fprintln(c.out, "    your total score.")
}

// promptYesNo asks until the user types y, Y, n or N.
func (c *Client) promptYesNo() (bool, error) {
	for {
		fmt.Fprint(c.out, "Input: ")
		line, err := c.readInput()
		if err != nil {
			return false, err
		}

		switch line {
		case "y", "Y":
			return true, nil
		case "n", "N":
			return false, nil
		}
	}
}

// promptAnswer asks until the user types something non-empty.
func (c *Client) promptAnswer() (string, error) {
	for {
		fmt.Fprint(c.out, "Your answer: ")
		line, err := c.readInput()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

func (c *Client) readInput() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Client) playGame() error {
	conn, err := c.dial(c.ServerAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer conn.Close()

	pc := protocol.NewConn(conn)
	if err := pc.WriteLine(protocol.StartSignal); err != nil {
		return fmt.Errorf("failed to send start signal: %w", err)
	}
	c.log.Debug("game started", "server", c.ServerAddr)

	fmt.Fprintf(c.out, "\nWelcome to the Trivia Game!\n\n")

	count := 1
	for {
		line, err := pc.ReadLine()
		if err != nil {
			return fmt.Errorf("lost connection to server: %w", err)
		}
		if line == "" {
			continue
		}

		msg, err := protocol.Decode(line)
		if err != nil {
			if errors.Is(err, protocol.ErrUnknownMessage) {
				c.log.Warn("ignoring unknown message", "line", line)
				continue
			}
			return fmt.Errorf("bad message from server: %w", err)
		}

		switch p := msg.Payload.(type) {
		case protocol.QuestionPayload:
			c.printQuestion(count, p)
			count++

			answer, err := c.promptAnswer()
			if err != nil {
				return err
			}
			if err := pc.WriteLine(answer); err != nil {
				return fmt.Errorf("failed to send answer: %w", err)
			}

		case protocol.FeedbackPayload:
			if p.Correct {
				correctFeedback.Fprintln(c.out, p.Text)
			} else {
				wrongFeedback.Fprintln(c.out, p.Text)
			}
			fmt.Fprintln(c.out)

		case protocol.GameOverPayload:
			fmt.Fprintln(c.out, "\n----------------------------- GAME OVER -----------------------------")
			fmt.Fprintln(c.out, p.Text)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "Thanks for playing!")
			fmt.Fprintln(c.out)
			c.log.Debug("game finished", "score", p.Score)
			return nil
		}
	}
}

func (c *Client) printQuestion(n int, q protocol.QuestionPayload) {
	rule := strings.Repeat("-", c.width)
	fmt.Fprintln(c.out, rule)
	fmt.Fprintf(c.out, "Question %d: %s\n", n, q.Prompt)
	fmt.Fprintln(c.out, rule)
	for i, opt := range q.Options {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, opt)
	}
}
