// Package prompt collects single-line answers from the terminal. The
// reader and writer are injectable so interactive flows are testable
// without a TTY.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/errors"
)

// Prompter asks questions and reads one-line answers.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a prompter on stdin/stdout.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO returns a prompter over arbitrary streams.
func NewWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints the question and returns the trimmed answer line. EOF
// before any input is an error: interactive failures are fatal to the
// run, not retried.
func (p *Prompter) Ask(question string) (string, error) {
	const op errors.Op = "prompt.Ask"
	fmt.Fprintf(p.out, "%s ", strings.TrimRight(question, " "))
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.E(op, errors.KindIO, err)
	}
	return strings.TrimSpace(line), nil
}

// AskChoice re-asks until the answer matches one of the accepted
// tokens, compared case-insensitively. Include "" to accept a bare
// Enter.
func (p *Prompter) AskChoice(question string, accepted ...string) (string, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return "", err
		}
		for _, tok := range accepted {
			if strings.EqualFold(answer, tok) {
				return answer, nil
			}
		}
		fmt.Fprintf(p.out, "Please enter one of: %s\n", strings.Join(accepted, ", "))
	}
}

// AskChoiceDefault behaves like AskChoice but substitutes def for a
// bare Enter, so the recorded answer is always a concrete token.
func (p *Prompter) AskChoiceDefault(question, def string, accepted ...string) (string, error) {
	answer, err := p.AskChoice(question, append(accepted, "")...)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Func adapts a free-text question to the resolver's prompt callback.
func (p *Prompter) Func(question string) func() (string, error) {
	return func() (string, error) {
		return p.Ask(question)
	}
}

// YesNoFunc adapts a yes/no question to the resolver's prompt
// callback, recording def on a bare Enter.
func (p *Prompter) YesNoFunc(question, def string) func() (string, error) {
	return func() (string, error) {
		return p.AskChoiceDefault(question, def, "y", "yes", "n", "no")
	}
}

// IsYes reports whether an answer is an affirmative y/yes.
func IsYes(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "y" || a == "yes"
}

// IsNoOrEmpty reports whether an answer declines, counting a bare
// Enter as the default "no" of [y/N] prompts.
func IsNoOrEmpty(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "" || a == "n" || a == "no"
}
