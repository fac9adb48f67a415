package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// IO is the capability through which a program prints and reads. Input
// blocks until the host has an answer.
type IO interface {
	Print(text string)
	Input(prompt string) (string, error)
}

// StreamIO prints lines to a writer and reads answers line by line from a
// reader. Prompts are written to the same writer without a newline.
type StreamIO struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStreamIO(in io.Reader, out io.Writer) *StreamIO {
	return &StreamIO{in: bufio.NewReader(in), out: out}
}

func (s *StreamIO) Print(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *StreamIO) Input(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ScriptedIO answers Input from a fixed list and records everything printed.
type ScriptedIO struct {
	mu      sync.Mutex
	answers []string
	printed []string
	prompts []string
}

func NewScriptedIO(answers ...string) *ScriptedIO {
	return &ScriptedIO{answers: append([]string(nil), answers...)}
}

func (s *ScriptedIO) Print(text string) {
	s.mu.Lock()
	s.printed = append(s.printed, text)
	s.mu.Unlock()
}

func (s *ScriptedIO) Input(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", ErrNoInput
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Printed returns the printed lines in order.
func (s *ScriptedIO) Printed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.printed...)
}

// Prompts returns every prompt passed to Input.
func (s *ScriptedIO) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// DiscardIO drops output and has no input.
type DiscardIO struct{}

func (DiscardIO) Print(string) {}

func (DiscardIO) Input(string) (string, error) { return "", ErrNoInput }

// FuncIO adapts a pair of functions. A nil InputFunc behaves like DiscardIO.
type FuncIO struct {
	PrintFunc func(text string)
	InputFunc func(prompt string) (string, error)
}

func (f FuncIO) Print(text string) {
	if f.PrintFunc != nil {
		f.PrintFunc(text)
	}
}

func (f FuncIO) Input(prompt string) (string, error) {
	if f.InputFunc == nil {
		return "", ErrNoInput
	}
	return f.InputFunc(prompt)
}
