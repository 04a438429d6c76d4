package dialog

import (
	"context"
	"fmt"
	"io"

	"github.com/ngenohkevin/smdialog/internal/terminal"
)

// Prompter asks questions on the terminal without a timeout
type Prompter struct {
	ctx context.Context
	in  terminal.LineReader
	out io.Writer
}

// NewPrompter binds a line reader and output for question/answer exchanges
func NewPrompter(ctx context.Context, in terminal.LineReader, out io.Writer) *Prompter {
	return &Prompter{ctx: ctx, in: in, out: out}
}

// Ask prints question and returns the answer line
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	return p.in.ReadLine(p.ctx, 0)
}

// AskSecret is Ask without echo
func (p *Prompter) AskSecret(question string) (string, error) {
	fmt.Fprint(p.out, question)
	return p.in.ReadSecret(p.ctx)
}

// Tell prints message on its own line
func (p *Prompter) Tell(message string) {
	fmt.Fprintln(p.out, message)
}
