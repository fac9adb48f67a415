package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"snail/interpreter-go/pkg/driver"
	"snail/interpreter-go/pkg/interpreter"
	"snail/interpreter-go/pkg/lexer"
	"snail/interpreter-go/pkg/token"
)

const (
	replPrompt         = "\033[32msnail>\033[0m "
	replContinuePrompt = "\033[32m  ...\033[0m "
)

func runRepl(args []string, opts cliOptions) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "snail repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            replPrompt,
		HistoryFile:       historyPath(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "snail repl: %v\n", err)
		return 1
	}
	defer l.Close()
	l.CaptureExitSignal()

	console := interpreter.FuncIO{
		PrintFunc: func(text string) {
			fmt.Fprintln(l.Stdout(), text)
		},
		InputFunc: func(prompt string) (string, error) {
			l.SetPrompt(prompt)
			defer l.SetPrompt(replPrompt)
			line, err := l.Readline()
			if err != nil {
				return "", interpreter.ErrNoInput
			}
			return line, nil
		},
	}
	runner := driver.NewRunner(console, interpreter.WithDivisionMode(opts.division))
	runner.SetErrorOutput(func(msg string) {
		fmt.Fprintln(l.Stderr(), msg)
	})

	fmt.Fprintln(l.Stdout(), "Type a BEGIN ... STOP program. :vars lists variables, :quit exits.")
	var pending strings.Builder
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if pending.Len() == 0 && line == "" {
				return 0
			}
			pending.Reset()
			l.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "snail repl: %v\n", err)
			return 1
		}

		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case ":quit", ":q":
				return 0
			case ":vars":
				printVariables(l.Stdout(), runner.Variables())
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
		if !programComplete(pending.String()) {
			l.SetPrompt(replContinuePrompt)
			continue
		}
		source := pending.String()
		pending.Reset()
		l.SetPrompt(replPrompt)
		runner.Run(source)
	}
}

// programComplete reports whether source holds a full BEGIN ... STOP program
// or fails to lex for a reason more input cannot fix.
func programComplete(source string) bool {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		var lexErr *lexer.LexError
		if errors.As(err, &lexErr) && strings.Contains(lexErr.Message, "unterminated string") {
			return false
		}
		return true
	}
	depth := 0
	opened := false
	for _, tok := range tokens {
		switch tok.Kind {
		case token.BEGIN, token.IF:
			depth++
			opened = true
		case token.STOP:
			depth--
		}
	}
	if !opened {
		// Anything that does not start a program is handed to the parser to
		// report.
		return len(tokens) > 1
	}
	return depth <= 0
}

func printVariables(w io.Writer, vars map[string]string) {
	if len(vars) == 0 {
		fmt.Fprintln(w, "(no variables)")
		return
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s = %s\n", name, vars[name])
	}
}
