// Package syntax defines the typed tree produced by the parser: one Module
// per file, with Statement, Expression, Pattern and Support node families as
// named in the specification's data model. Nodes are plain Go structs linked
// by pointers rather than an arena of integer-addressed slots: Go's garbage
// collector already reclaims cyclic structures for free, so the arena
// indirection a non-GC'd implementation needs to keep trees cheaply
// clonable/droppable buys nothing here, and a pointer tree is how the
// teacher package (graph.Type/Function/Field) represents its own node
// families too. See DESIGN.md for the full discussion.
package syntax

import "github.com/taradepan/reaper/internal/token"

// Node is implemented by every tree element and exposes its source span.
type Node interface {
	Span() token.Span
}

// Base embeds into every concrete node to satisfy Node.
type Base struct {
	Sp token.Span
}

func (b Base) Span() token.Span { return b.Sp }

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by every match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
}

// Module is the root of one file's tree.
type Module struct {
	Base
	Body []Stmt
}
