package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio reads from in and prints to out; prompts go to prompts
type Stdio struct {
	in      *bufio.Reader
	rawIn   io.Reader
	out     io.Writer
	prompts io.Writer
}

var _ IO = (*Stdio)(nil)

// NewStdio creates an IO over the given streams
func NewStdio(in io.Reader, out, prompts io.Writer) *Stdio {
	return &Stdio{
		in:      bufio.NewReader(in),
		rawIn:   in,
		out:     out,
		prompts: prompts,
	}
}

// Println prints to out
func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

// Printf prints to out
func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

// Write writes to out
func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput reads one trimmed line
func (s *Stdio) ReadInput(prompt string) (string, error) {
	_, _ = fmt.Fprint(s.prompts, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret reads a line without echo when in is a terminal
func (s *Stdio) ReadSecret(prompt string) (string, error) {
	f, ok := s.rawIn.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s.ReadInput(prompt)
	}

	_, _ = fmt.Fprint(s.prompts, prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(s.prompts)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
