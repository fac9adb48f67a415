// Package typechecker inspects a parsed Snail program without running it. It
// reports uses of variables that no statement declares, string literals that
// can never take part in arithmetic or fill a numeric variable, literal
// division by zero, and redeclarations that change a variable's type.
//
// The interpreter does not depend on this package; hosts run it ahead of
// execution to surface problems early (see `snail check`).
package typechecker
