package ast

// Kind identifies a token variant. Its String form is the snake_case tag
// used on the wire.
type Kind int

const (
	KindUnknown Kind = iota
	KindIdentifier
	KindOption
	KindAddress
	KindBoolean
	KindNumber
	KindPercentage
	KindString
	KindNone
	KindFunction
	KindConditional
	KindOperator
	KindBinaryOp
	KindUnaryOp
	KindList
	KindForLoop
	KindLineComment
	KindAttribute
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindIdentifier:  "identifier",
	KindOption:      "option",
	KindAddress:     "address",
	KindBoolean:     "boolean",
	KindNumber:      "number",
	KindPercentage:  "percentage",
	KindString:      "string",
	KindNone:        "none",
	KindFunction:    "function",
	KindConditional: "conditional",
	KindOperator:    "operator",
	KindBinaryOp:    "binary_op",
	KindUnaryOp:     "unary_op",
	KindList:        "list",
	KindForLoop:     "for_loop",
	KindLineComment: "line_comment",
	KindAttribute:   "attribute",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is the value carried by a Node. The set of implementations is
// closed: only the types in this package satisfy it.
type Token interface {
	Kind() Kind
	token()
}

// Unknown is the zero token. It never appears in a successful parse; seeing
// one in a result is a parser defect.
type Unknown struct{}

// Identifier is always lower case.
type Identifier string

// Option is a key=value function argument.
type Option struct {
	Key   *Node
	Value *Node
}

type Address string

type Boolean bool

type Number struct {
	Value N
}

type Percentage struct {
	Value N
}

// String holds the still-escaped text between the quotes.
type String string

type None struct{}

// Function is a call such as name(args) or name.subfunction(args).
// Subfunction is nil when absent.
type Function struct {
	Name        *Node
	Subfunction *Node
	Args        []*Node
}

// Conditional is produced by both if(c, t, f) and c ? t : f.
// IfFalse is nil when omitted.
type Conditional struct {
	Condition *Node
	IfTrue    *Node
	IfFalse   *Node
}

type BinaryOp struct {
	Operator *Node
	Left     *Node
	Right    *Node
}

type UnaryOp struct {
	Operator *Node
	Operand  *Node
}

type List []*Node

// ForLoop is one of TupleForLoop or ObjectForLoop.
type ForLoop interface {
	Token
	forLoop()
}

// TupleForLoop is [for binds in expr : body if cond]. Cond may be nil.
type TupleForLoop struct {
	Binds []*Node
	Expr  *Node
	Body  *Node
	Cond  *Node
}

// ObjectForLoop is {for binds in expr : key => value... if cond}.
// Grouping records the trailing "...". Cond may be nil.
type ObjectForLoop struct {
	Binds    []*Node
	Expr     *Node
	Key      *Node
	Value    *Node
	Grouping bool
	Cond     *Node
}

type LineComment string

// Attribute is a top-level key = value binding.
type Attribute struct {
	Ident *Node
	Expr  *Node
}

func (Unknown) Kind() Kind       { return KindUnknown }
func (Identifier) Kind() Kind    { return KindIdentifier }
func (Option) Kind() Kind        { return KindOption }
func (Address) Kind() Kind       { return KindAddress }
func (Boolean) Kind() Kind       { return KindBoolean }
func (Number) Kind() Kind        { return KindNumber }
func (Percentage) Kind() Kind    { return KindPercentage }
func (String) Kind() Kind        { return KindString }
func (None) Kind() Kind          { return KindNone }
func (Function) Kind() Kind      { return KindFunction }
func (Conditional) Kind() Kind   { return KindConditional }
func (BinaryOp) Kind() Kind      { return KindBinaryOp }
func (UnaryOp) Kind() Kind       { return KindUnaryOp }
func (List) Kind() Kind          { return KindList }
func (TupleForLoop) Kind() Kind  { return KindForLoop }
func (ObjectForLoop) Kind() Kind { return KindForLoop }
func (LineComment) Kind() Kind   { return KindLineComment }
func (Attribute) Kind() Kind     { return KindAttribute }

func (Unknown) token()       {}
func (Identifier) token()    {}
func (Option) token()        {}
func (Address) token()       {}
func (Boolean) token()       {}
func (Number) token()        {}
func (Percentage) token()    {}
func (String) token()        {}
func (None) token()          {}
func (Function) token()      {}
func (Conditional) token()   {}
func (BinaryOp) token()      {}
func (UnaryOp) token()       {}
func (List) token()          {}
func (TupleForLoop) token()  {}
func (ObjectForLoop) token() {}
func (LineComment) token()   {}
func (Attribute) token()     {}

func (TupleForLoop) forLoop()  {}
func (ObjectForLoop) forLoop() {}
