package ast

type NodeType string

const (
	NodeProgram           NodeType = "Program"
	NodeVarDeclaration    NodeType = "VarDeclaration"
	NodeAssignment        NodeType = "Assignment"
	NodeInputStatement    NodeType = "InputStatement"
	NodePrintStatement    NodeType = "PrintStatement"
	NodeIfStatement       NodeType = "IfStatement"
	NodeConditionalBranch NodeType = "ConditionalBranch"
	NodeCondition         NodeType = "Condition"
	NodeBinaryOp          NodeType = "BinaryOp"
	NodeNumberLiteral     NodeType = "NumberLiteral"
	NodeStringLiteral     NodeType = "StringLiteral"
	NodeIdentifier        NodeType = "Identifier"
)

// TypeTag is a declarable variable type.
type TypeTag string

const (
	TypeInteger   TypeTag = "NT"
	TypeFloat     TypeTag = "FT"
	TypeCharacter TypeTag = "CH"
	TypeString    TypeTag = "ST"
)

// IsValid reports whether the tag is one of the known types.
func (t TypeTag) IsValid() bool {
	switch t {
	case TypeInteger, TypeFloat, TypeCharacter, TypeString:
		return true
	default:
		return false
	}
}

// Node is implemented only by the types in this package.
type Node interface {
	NodeType() NodeType
	Position() Position
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Pos  Position `json:"pos"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType      { return n.Type }
func (n nodeImpl) Position() Position      { return n.Pos }
func (n *nodeImpl) setPosition(p Position) { n.Pos = p }
func (nodeImpl) isNode()                   {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program is the statement sequence between BEGIN and STOP.
type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Statements

type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name         string  `json:"name"`
	DeclaredType TypeTag `json:"declaredType"`
}

func NewVarDeclaration(name string, declared TypeTag) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, DeclaredType: declared}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Name       string     `json:"name"`
	Expression Expression `json:"expression"`
}

func NewAssignment(name string, expr Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Expression: expr}
}

type InputStatement struct {
	nodeImpl
	statementMarker

	Prompt     string `json:"prompt"`
	TargetName string `json:"targetName"`
}

func NewInputStatement(prompt, target string) *InputStatement {
	return &InputStatement{nodeImpl: newNodeImpl(NodeInputStatement), Prompt: prompt, TargetName: target}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

// ConditionalBranch pairs a condition with the block it guards.
type ConditionalBranch struct {
	nodeImpl

	Condition *Condition  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewConditionalBranch(cond *Condition, body []Statement) *ConditionalBranch {
	return &ConditionalBranch{nodeImpl: newNodeImpl(NodeConditionalBranch), Condition: cond, Body: body}
}

// IfStatement holds the IF branch followed by every OR ELSE branch in source
// order. Else is nil when the statement has no OR block.
type IfStatement struct {
	nodeImpl
	statementMarker

	Branches []*ConditionalBranch `json:"branches"`
	Else     []Statement          `json:"elseBlock,omitempty"`
}

func NewIfStatement(branches []*ConditionalBranch, elseBlock []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Branches: branches, Else: elseBlock}
}

// HasElse reports whether an OR block was written, even an empty one.
func (s *IfStatement) HasElse() bool {
	return s.Else != nil
}

type Condition struct {
	nodeImpl

	Left     Expression `json:"left"`
	Operator string     `json:"relOp"`
	Right    Expression `json:"right"`
}

func NewCondition(left Expression, op string, right Expression) *Condition {
	return &Condition{nodeImpl: newNodeImpl(NodeCondition), Left: left, Operator: op, Right: right}
}

// Expressions

type BinaryOp struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator string     `json:"op"`
	Right    Expression `json:"right"`
}

func NewBinaryOp(left Expression, op string, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Left: left, Operator: op, Right: right}
}

// NumberLiteral keeps integral and float literals apart; IsFloat selects
// which of the two value fields is meaningful.
type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Int     int64   `json:"-"`
	Float   float64 `json:"-"`
	IsFloat bool    `json:"isFloat"`
}

func NewIntegerLiteral(value int64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Int: value}
}

func NewFloatLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Float: value, IsFloat: true}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}
