package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] run [program]")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] run <file.snail>")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] run --git <url> [--rev <rev>] [--update] [program]")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] <file.snail>")
	fmt.Fprintln(os.Stderr, "  snail check [program | <file.snail>]")
	fmt.Fprintln(os.Stderr, "  snail tokens [program | <file.snail>]")
	fmt.Fprintln(os.Stderr, "  snail ast [program | <file.snail>]")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] repl")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] watch [program | <file.snail>]")
	fmt.Fprintln(os.Stderr, "  snail [--division=ieee|error] serve [--addr <host:port>]")
	fmt.Fprintln(os.Stderr, "  snail version")
}
