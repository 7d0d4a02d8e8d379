package formula

import (
	"fmt"
	"strings"

	"github.com/go-limbo/limbo/logic"
)

// Formula is a query tree over a reasoning context's terms and literals.
// The public grammar is Atom | Not | Or | Exists | Box; And and Forall are
// convenience constructors built from those five.
type Formula interface {
	ennf(ctx *logic.Context, prefix []logic.Term) Formula
	collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort))
	substitute(ctx *logic.Context, v, replacement logic.Term) Formula
	String() string
}

type atom struct{ lits []logic.Literal }

// Atom wraps a disjunction of literals (a clause template) as a formula
// leaf.
func Atom(lits ...logic.Literal) Formula {
	return atom{lits: append([]logic.Literal{}, lits...)}
}

func (a atom) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	lits := make([]logic.Literal, len(a.lits))
	for i, l := range a.lits {
		lits[i] = ctx.BindSequence(l, prefix)
	}
	return atom{lits: lits}
}

func (a atom) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	for _, l := range a.lits {
		ctx.WalkNames(l.Lhs(), addName)
		ctx.WalkNames(l.Rhs(), addName)
		ctx.WalkVariables(l.Lhs(), func(v logic.Term) { addVarSort(ctx.Sort(v)) })
		ctx.WalkVariables(l.Rhs(), func(v logic.Term) { addVarSort(ctx.Sort(v)) })
	}
}

func (a atom) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	lits := make([]logic.Literal, len(a.lits))
	for i, l := range a.lits {
		lits[i] = ctx.SubstituteLiteralOne(l, v, replacement)
	}
	return atom{lits: lits}
}

func (a atom) String() string {
	parts := make([]string, len(a.lits))
	for i := range a.lits {
		parts[i] = "lit"
	}
	return "atom(" + strings.Join(parts, " ∨ ") + ")"
}

type notF struct{ f Formula }

// Not negates f.
func Not(f Formula) Formula { return notF{f: f} }

func (n notF) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	sub := n.f.ennf(ctx, prefix)
	switch s := sub.(type) {
	case atom:
		negated := make([]logic.Literal, len(s.lits))
		for i, l := range s.lits {
			negated[i] = l.Flip()
		}
		if len(negated) <= 1 {
			return atom{lits: negated}
		}
		subs := make([]Formula, len(negated))
		for i, l := range negated {
			subs[i] = atom{lits: []logic.Literal{l}}
		}
		return andNode{subs: subs}
	case orNode:
		subs := make([]Formula, len(s.subs))
		for i, sf := range s.subs {
			subs[i] = Not(sf).ennf(ctx, prefix)
		}
		return andNode{subs: subs}
	case andNode:
		subs := make([]Formula, len(s.subs))
		for i, sf := range s.subs {
			subs[i] = Not(sf).ennf(ctx, prefix)
		}
		return orNode{subs: subs}
	case existsNode:
		return forallNode{v: s.v, body: Not(s.body).ennf(ctx, prefix)}
	case forallNode:
		return existsNode{v: s.v, body: Not(s.body).ennf(ctx, prefix)}
	default:
		panic("formula: unhandled node under Not after ennf")
	}
}

func (n notF) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	n.f.collectInto(ctx, addName, addVarSort)
}

func (n notF) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	return notF{f: n.f.substitute(ctx, v, replacement)}
}

func (n notF) String() string { return "¬" + n.f.String() }

type orNode struct{ subs []Formula }

// Or disjoins subs.
func Or(subs ...Formula) Formula { return orNode{subs: append([]Formula{}, subs...)} }

func (o orNode) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	var flat []Formula
	for _, s := range o.subs {
		switch v := s.ennf(ctx, prefix).(type) {
		case orNode:
			flat = append(flat, v.subs...)
		default:
			flat = append(flat, v)
		}
	}
	return orNode{subs: flat}
}

func (o orNode) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	for _, s := range o.subs {
		s.collectInto(ctx, addName, addVarSort)
	}
}

func (o orNode) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	subs := make([]Formula, len(o.subs))
	for i, s := range o.subs {
		subs[i] = s.substitute(ctx, v, replacement)
	}
	return orNode{subs: subs}
}

func (o orNode) String() string {
	parts := make([]string, len(o.subs))
	for i, s := range o.subs {
		parts[i] = s.String()
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}

// andNode is produced internally by negating an Or or an atom with more
// than one literal; there is no public constructor, since And is built
// as De Morgan sugar over Not/Or - see And below.
type andNode struct{ subs []Formula }

// And conjoins subs, built from Not and Or per the grammar's De Morgan
// sugar: ⋀ subs ≡ ¬⋁ ¬subs.
func And(subs ...Formula) Formula {
	negated := make([]Formula, len(subs))
	for i, s := range subs {
		negated[i] = Not(s)
	}
	return Not(Or(negated...))
}

func (a andNode) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	subs := make([]Formula, len(a.subs))
	for i, s := range a.subs {
		subs[i] = s.ennf(ctx, prefix)
	}
	return andNode{subs: subs}
}

func (a andNode) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	for _, s := range a.subs {
		s.collectInto(ctx, addName, addVarSort)
	}
}

func (a andNode) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	subs := make([]Formula, len(a.subs))
	for i, s := range a.subs {
		subs[i] = s.substitute(ctx, v, replacement)
	}
	return andNode{subs: subs}
}

func (a andNode) String() string {
	parts := make([]string, len(a.subs))
	for i, s := range a.subs {
		parts[i] = s.String()
	}
	return "(" + strings.Join(parts, " ∧ ") + ")"
}

type existsNode struct {
	v    logic.Term
	body Formula
}

// Exists binds v existentially over body; v must be a variable term
// allocated by the same context the formula will eventually be decided
// against.
func Exists(v logic.Term, body Formula) Formula { return existsNode{v: v, body: body} }

// Forall binds v universally, built as ¬∃v.¬body.
func Forall(v logic.Term, body Formula) Formula { return Not(Exists(v, Not(body))) }

func (e existsNode) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	return existsNode{v: e.v, body: e.body.ennf(ctx, prefix)}
}

func (e existsNode) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	addVarSort(ctx.Sort(e.v))
	e.body.collectInto(ctx, addName, addVarSort)
}

func (e existsNode) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	return existsNode{v: e.v, body: e.body.substitute(ctx, v, replacement)}
}

func (e existsNode) String() string { return fmt.Sprintf("∃.%s", e.body.String()) }

// forallNode is the internal dual of existsNode, produced only by
// negating an Exists during ennf.
type forallNode struct {
	v    logic.Term
	body Formula
}

func (f forallNode) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	return forallNode{v: f.v, body: f.body.ennf(ctx, prefix)}
}

func (f forallNode) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	addVarSort(ctx.Sort(f.v))
	f.body.collectInto(ctx, addName, addVarSort)
}

func (f forallNode) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	return forallNode{v: f.v, body: f.body.substitute(ctx, v, replacement)}
}

func (f forallNode) String() string { return fmt.Sprintf("∀.%s", f.body.String()) }

type boxNode struct {
	action logic.Term
	body   Formula
}

// Box guards body by action: [action]body.
func Box(action logic.Term, body Formula) Formula { return boxNode{action: action, body: body} }

func (b boxNode) ennf(ctx *logic.Context, prefix []logic.Term) Formula {
	next := append(append([]logic.Term{}, prefix...), b.action)
	return b.body.ennf(ctx, next)
}

func (b boxNode) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
	ctx.WalkNames(b.action, addName)
	ctx.WalkVariables(b.action, func(v logic.Term) { addVarSort(ctx.Sort(v)) })
	b.body.collectInto(ctx, addName, addVarSort)
}

func (b boxNode) substitute(ctx *logic.Context, v, replacement logic.Term) Formula {
	action := ctx.SubstituteOne(b.action, v, replacement)
	return boxNode{action: action, body: b.body.substitute(ctx, v, replacement)}
}

func (b boxNode) String() string { return fmt.Sprintf("[a]%s", b.body.String()) }

// Collect gathers every name and every quantified-variable sort mentioned
// by f, for use as ComputeHPlus's extraNames/extraVarSorts.
func Collect(ctx *logic.Context, f Formula) ([]logic.Term, []logic.Sort) {
	var names []logic.Term
	seenNames := make(map[logic.Term]bool)
	seenSorts := make(map[logic.Sort]bool)
	var sorts []logic.Sort
	f.collectInto(ctx,
		func(t logic.Term) {
			if !seenNames[t] {
				seenNames[t] = true
				names = append(names, t)
			}
		},
		func(s logic.Sort) {
			if !seenSorts[s] {
				seenSorts[s] = true
				sorts = append(sorts, s)
			}
		},
	)
	return names, sorts
}
