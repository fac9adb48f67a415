// Package interpreter executes Snail programs by walking the AST produced by
// the parser. All observable effects go through the IO capability supplied at
// construction; variable state lives in a runtime.Environment that Reset
// replaces before each run.
package interpreter
