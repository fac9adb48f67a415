package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"snail/interpreter-go/pkg/driver"
	"snail/interpreter-go/pkg/interpreter"
	"snail/interpreter-go/pkg/lexer"
	"snail/interpreter-go/pkg/typechecker"
)

func runEntry(args []string, opts cliOptions) int {
	flags, err := parseCommandFlags("run", args, []string{"git", "rev"}, []string{"update"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	entry, err := flags.single("run")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var src *driver.Source
	if url := flags.values["git"]; url != "" {
		src, err = loadFetchedSource(url, flags.values["rev"], flags.switches["update"], entry)
	} else {
		if _, ok := flags.values["rev"]; ok {
			fmt.Fprintln(os.Stderr, "snail run: --rev requires --git")
			return 1
		}
		src, err = loadLocalSource(entry)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return executeSource(src, opts)
}

func executeSource(src *driver.Source, opts cliOptions) int {
	console := newConsoleIO(os.Stdin, os.Stdout, src.Inputs)
	runner := driver.NewRunner(console, interpreter.WithDivisionMode(opts.divisionFor(src.Division)))
	if !runner.Run(src.Text) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", driver.DescribeAt(displayPath(src.Path), runner.Err()))
		return 1
	}
	return 0
}

func loadLocalSource(entry string) (*driver.Source, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return driver.LoadSource(cwd, entry)
}

func loadFetchedSource(url, rev string, update bool, entry string) (*driver.Source, error) {
	cache, err := cacheRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := driver.FetchProject(ctx, driver.FetchOptions{
		URL:      url,
		Rev:      rev,
		CacheDir: cache,
		Update:   update,
	})
	if err != nil {
		return nil, err
	}
	if !result.Reused {
		fmt.Fprintf(os.Stderr, "fetched %s at %s\n", url, shortCommit(result.Commit))
	}
	return driver.LoadSource(result.Dir, entry)
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

// loadForInspection resolves the single optional program argument shared by
// check, tokens and ast.
func loadForInspection(command string, args []string) (*driver.Source, bool) {
	flags, err := parseCommandFlags(command, args, nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	entry, err := flags.single(command)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	src, err := loadLocalSource(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return src, true
}

func runCheck(args []string, _ cliOptions) int {
	src, ok := loadForInspection("check", args)
	if !ok {
		return 1
	}
	path := displayPath(src.Path)
	program, err := driver.Check(src.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", driver.DescribeAt(path, err))
		return 1
	}

	diags, err := typechecker.Check(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, diag := range diags {
		pos := diag.Position()
		fmt.Fprintf(os.Stderr, "%s: %s:%d:%d: %s\n", diag.Severity, path, pos.Line, pos.Column, diag.Message)
	}
	if typechecker.HasErrors(diags) {
		return 1
	}

	fmt.Fprintf(os.Stdout, "ok: %s (%d statements)\n", path, len(program.Statements))
	return 0
}

func runTokens(args []string, _ cliOptions) int {
	src, ok := loadForInspection("tokens", args)
	if !ok {
		return 1
	}
	tokens, err := lexer.Tokenize(src.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", driver.DescribeAt(displayPath(src.Path), err))
		return 1
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.String())
		b.WriteByte('\n')
	}
	fmt.Fprint(os.Stdout, b.String())
	return 0
}

func runAST(args []string, _ cliOptions) int {
	src, ok := loadForInspection("ast", args)
	if !ok {
		return 1
	}
	program, err := driver.Check(src.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", driver.DescribeAt(displayPath(src.Path), err))
		return 1
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode ast: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, string(data))
	return 0
}
