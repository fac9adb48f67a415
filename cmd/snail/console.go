package main

import (
	"fmt"
	"io"
	"sync"

	"snail/interpreter-go/pkg/interpreter"
)

// consoleIO answers GIVE prompts from a project's scripted inputs first and
// falls back to the terminal once they run out. Scripted answers are echoed so
// the transcript reads as if they were typed.
type consoleIO struct {
	mu     sync.Mutex
	queue  []string
	out    io.Writer
	stream *interpreter.StreamIO
}

func newConsoleIO(in io.Reader, out io.Writer, scripted []string) *consoleIO {
	return &consoleIO{
		queue:  append([]string(nil), scripted...),
		out:    out,
		stream: interpreter.NewStreamIO(in, out),
	}
}

func (c *consoleIO) Print(text string) {
	c.stream.Print(text)
}

func (c *consoleIO) Input(prompt string) (string, error) {
	c.mu.Lock()
	if len(c.queue) > 0 {
		answer := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()
		fmt.Fprintf(c.out, "%s%s\n", prompt, answer)
		return answer, nil
	}
	c.mu.Unlock()
	return c.stream.Input(prompt)
}
