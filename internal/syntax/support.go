package syntax

import "github.com/taradepan/reaper/internal/token"

// ParamKind classifies a function parameter's binding form.
type ParamKind int

const (
	ParamPositional ParamKind = iota
	ParamPosOnly
	ParamKeywordOnly
	ParamVararg // *args
	ParamKwarg  // **kwargs
)

// Parameter is a single formal parameter of a function or lambda.
type Parameter struct {
	Base
	Name       string
	Default    Expr // nil if no default
	Annotation Expr // nil if not annotated
	Kind       ParamKind
}

// Alias names a single imported symbol, optionally rebound locally
// (`import x as y` / `from m import x as y`).
type Alias struct {
	Base
	Name    string
	AsName  string // empty if not rebound
	NameSp  token.Span
	AsNameSp token.Span
}

// LocalName returns the name this alias binds in the importing scope.
func (a Alias) LocalName() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

// Decorator wraps the expression applied with `@...` above a def/class.
type Decorator struct {
	Base
	Expr Expr
}

// Name reports the decorator's simple or dotted name, e.g. "abstractmethod"
// for `@abstractmethod` or "app.route" for `@app.route(...)`.
func (d Decorator) Name() string {
	return decoratorName(d.Expr)
}

func decoratorName(e Expr) string {
	switch v := e.(type) {
	case *Name:
		return v.Id
	case *Attribute:
		base := decoratorName(v.Value)
		if base == "" {
			return v.Attr
		}
		return base + "." + v.Attr
	case *Call:
		return decoratorName(v.Func)
	}
	return ""
}

// Keyword is a `name=value` call argument.
type Keyword struct {
	Base
	Name  string // empty for **kwargs expansion
	Value Expr
}

// WithItem is one `expr [as target]` clause of a with-statement.
type WithItem struct {
	Base
	Context Expr
	Target  Expr // nil if no `as`
}

// ExceptHandler is one `except [Type] [as name]:` clause.
type ExceptHandler struct {
	Base
	Type Expr // nil for bare except
	Name string
	Body []Stmt
}

// MatchCase is one `case pattern [if guard]:` arm.
type MatchCase struct {
	Base
	Pattern Pattern
	Guard   Expr // nil if no guard
	Body    []Stmt
}
