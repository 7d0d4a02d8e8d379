package logic

// Ewff ("equality world formula") is a quantifier-free formula built only
// from equality and inequality of variables and names. It is used purely
// as a guard on a schematic BAT clause's free variables: the grounder
// enumerates substitutions of those variables by names of H+ and keeps
// only the ones that make the ewff true (§4.5b/c).
type Ewff struct {
	kind ewffKind
	lhs  Term
	rhs  Term
	a, b *Ewff
}

type ewffKind int8

const (
	ewffTrue ewffKind = iota
	ewffEq
	ewffNeq
	ewffAnd
	ewffOr
	ewffNot
)

// EwffTrue is the guard that accepts every substitution.
func EwffTrue() *Ewff { return &Ewff{kind: ewffTrue} }

// EwffEq guards on lhs == rhs once both are substituted.
func EwffEq(lhs, rhs Term) *Ewff { return &Ewff{kind: ewffEq, lhs: lhs, rhs: rhs} }

// EwffNeq guards on lhs != rhs once both are substituted.
func EwffNeq(lhs, rhs Term) *Ewff { return &Ewff{kind: ewffNeq, lhs: lhs, rhs: rhs} }

// EwffAnd is the conjunction of a and b.
func EwffAnd(a, b *Ewff) *Ewff { return &Ewff{kind: ewffAnd, a: a, b: b} }

// EwffOr is the disjunction of a and b.
func EwffOr(a, b *Ewff) *Ewff { return &Ewff{kind: ewffOr, a: a, b: b} }

// EwffNot negates a.
func EwffNot(a *Ewff) *Ewff { return &Ewff{kind: ewffNot, a: a} }

// EvalEwff decides whether theta, a total map from this ewff's free variables
// to names, satisfies the guard.
func (ctx *Context) EvalEwff(e *Ewff, theta map[int32]Term) bool {
	switch e.kind {
	case ewffTrue:
		return true
	case ewffEq:
		return ctx.Substitute(e.lhs, theta) == ctx.Substitute(e.rhs, theta)
	case ewffNeq:
		return ctx.Substitute(e.lhs, theta) != ctx.Substitute(e.rhs, theta)
	case ewffAnd:
		return ctx.EvalEwff(e.a, theta) && ctx.EvalEwff(e.b, theta)
	case ewffOr:
		return ctx.EvalEwff(e.a, theta) || ctx.EvalEwff(e.b, theta)
	case ewffNot:
		return !ctx.EvalEwff(e.a, theta)
	default:
		panic("invalid ewff kind")
	}
}

// ewffFreeVariables collects the variable symbols e mentions, via the
// variable terms occurring on either side of its Eq/Neq leaves.
func (ctx *Context) ewffFreeVariables(e *Ewff, out map[int32]Term) {
	switch e.kind {
	case ewffTrue:
	case ewffEq, ewffNeq:
		ctx.collectVariables(e.lhs, out)
		ctx.collectVariables(e.rhs, out)
	case ewffAnd, ewffOr:
		ctx.ewffFreeVariables(e.a, out)
		ctx.ewffFreeVariables(e.b, out)
	case ewffNot:
		ctx.ewffFreeVariables(e.a, out)
	}
}

func (ctx *Context) collectVariables(t Term, out map[int32]Term) {
	sym := ctx.Symbol(t)
	if sym.IsVariable() {
		out[sym.id32()] = t
		return
	}
	for _, a := range ctx.Args(t) {
		ctx.collectVariables(a, out)
	}
}
