package main

import (
	"fmt"
	"strings"

	"snail/interpreter-go/pkg/interpreter"
)

type cliOptions struct {
	division    interpreter.DivisionMode
	divisionSet bool
}

// divisionFor picks the CLI flag when given, else the project's setting.
func (o cliOptions) divisionFor(project interpreter.DivisionMode) interpreter.DivisionMode {
	if o.divisionSet {
		return o.division
	}
	return project
}

func parseGlobalFlags(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--division":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--division expects a value")
			}
			if err := opts.setDivision(args[i+1]); err != nil {
				return opts, nil, err
			}
			i++
		case strings.HasPrefix(arg, "--division="):
			if err := opts.setDivision(strings.TrimPrefix(arg, "--division=")); err != nil {
				return opts, nil, err
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining, nil
}

func (o *cliOptions) setDivision(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--division expects a value")
	}
	mode, err := interpreter.ParseDivisionMode(value)
	if err != nil {
		return fmt.Errorf("unknown --division value '%s' (expected ieee or error)", value)
	}
	o.division = mode
	o.divisionSet = true
	return nil
}

// commandFlags holds the per-command flags. valued lists flags that take an
// argument; every other "--name" is a boolean switch.
type commandFlags struct {
	values   map[string]string
	switches map[string]bool
	args     []string
}

func parseCommandFlags(command string, args []string, valued []string, switches []string) (*commandFlags, error) {
	known := make(map[string]bool, len(valued)+len(switches))
	for _, name := range valued {
		known[name] = true
	}
	for _, name := range switches {
		known[name] = false
	}
	out := &commandFlags{values: map[string]string{}, switches: map[string]bool{}}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out.args = append(out.args, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "--") {
			out.args = append(out.args, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		takesValue, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("snail %s: unknown flag --%s", command, name)
		}
		if !takesValue {
			if hasValue {
				return nil, fmt.Errorf("snail %s: --%s does not take a value", command, name)
			}
			out.switches[name] = true
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("snail %s: --%s expects a value", command, name)
			}
			value = args[i+1]
			i++
		}
		out.values[name] = value
	}
	return out, nil
}

// single returns the one optional positional argument.
func (f *commandFlags) single(command string) (string, error) {
	switch len(f.args) {
	case 0:
		return "", nil
	case 1:
		return f.args[0], nil
	default:
		return "", fmt.Errorf("snail %s expects at most one program or file (received %s)", command, strings.Join(f.args, " "))
	}
}
