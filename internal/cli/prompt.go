package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minimart/checkout/internal/domain/promo"
)

// Compile-time check ensuring Prompter satisfies the confirmation port.
var _ promo.Prompter = (*Prompter)(nil)

// Prompter reads customer decisions from the terminal. Only an exact
// case-insensitive "Y" counts as yes; any other reply is no.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm renders the promotion question and reads the customer's answer.
func (p *Prompter) Confirm(_ context.Context, q promo.Question) (bool, error) {
	switch q.Kind {
	case promo.QuestionShortage:
		return p.Ask(fmt.Sprintf(
			"%s: promotional stock is short by %d unit(s). Buy anyway at the regular price? (Y/N)",
			q.Product, q.Quantity,
		))
	default:
		return p.Ask(fmt.Sprintf(
			"%s: you can get %d more unit(s) free of charge. Add them? (Y/N)",
			q.Product, q.Quantity,
		))
	}
}

// Ask prints the prompt and reports whether the reply is affirmative.
func (p *Prompter) Ask(prompt string) (bool, error) {
	fmt.Fprintln(p.out, prompt)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y"), nil
}

// ReadLine prints the prompt and reads one input line.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprintln(p.out, prompt)
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
