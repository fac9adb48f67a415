package ast

// Literal and identifier helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *NumberLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *NumberLiteral {
	return NewFloatLiteral(value)
}

// Expression helpers.

func Bin(left Expression, op string, right Expression) *BinaryOp {
	return NewBinaryOp(left, op, right)
}

func Cond(left Expression, op string, right Expression) *Condition {
	return NewCondition(left, op, right)
}

// Statement helpers.

func Prog(statements ...Statement) *Program {
	if statements == nil {
		statements = []Statement{}
	}
	return NewProgram(statements)
}

func Decl(name string, declared TypeTag) *VarDeclaration {
	return NewVarDeclaration(name, declared)
}

func Assign(name string, expr Expression) *Assignment {
	return NewAssignment(name, expr)
}

func Give(prompt, target string) *InputStatement {
	return NewInputStatement(prompt, target)
}

func Present(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Block(statements ...Statement) []Statement {
	if statements == nil {
		return []Statement{}
	}
	return statements
}

func Branch(cond *Condition, body ...Statement) *ConditionalBranch {
	return NewConditionalBranch(cond, Block(body...))
}

func If(branches ...*ConditionalBranch) *IfStatement {
	return NewIfStatement(branches, nil)
}

func IfElse(elseBlock []Statement, branches ...*ConditionalBranch) *IfStatement {
	if elseBlock == nil {
		elseBlock = []Statement{}
	}
	return NewIfStatement(branches, elseBlock)
}
