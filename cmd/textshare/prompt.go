package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input.
type Prompter interface {
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// stdioPrompter reads from the terminal. Passwords are not echoed when
// stdin is a TTY; piped input is read line by line.
type stdioPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newStdioPrompter() *stdioPrompter {
	return &stdioPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
		fd:  int(os.Stdin.Fd()),
	}
}

func (p *stdioPrompter) ReadInput(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

func (p *stdioPrompter) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !term.IsTerminal(p.fd) {
		return p.readLine()
	}
	pw, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func (p *stdioPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
