package logic

import "fmt"

// Action-sequence tagging.
//
// Literal and Clause are defined purely in terms of equality; the
// grounder and entailment engine additionally need every boxed (dynamic)
// fluent literal to carry the action-sequence prefix it was grounded
// under, without disturbing that equality-only core. We thread the
// prefix through as an ordinary extra function argument rather than
// inventing a second literal representation: a boxed clause template
// declares one parameter of SequenceSort on every
// action-sensitive fluent symbol, and the grounder fills it with the
// name minted for the sequence being instantiated. Since that argument
// is itself a name, a primitive literal built this way stays primitive,
// so Valid/Complementary/Subsumes/PEL all keep working unmodified.
//
// The original C++ grounder left its action-prefix branch an empty
// loop; this is a from-scratch, sound realization of that stated
// intent, not a port of existing behavior.

// SequenceSort is the dedicated rigid sort used to name action sequences.
// It is rigid because, once the query's prefix set Z is fixed, there are
// only finitely many sequences worth naming.
func (ctx *Context) SequenceSort() Sort {
	if ctx.seqSort == nil {
		s := ctx.NewSort(true)
		ctx.seqSort = &s
	}
	return *ctx.seqSort
}

func seqKey(seq []Term) string {
	buf := make([]byte, 0, 4*len(seq))
	for _, t := range seq {
		buf = appendU32(buf, t.id)
	}
	return string(buf)
}

// SequenceName returns the unique name denoting the action sequence seq
// (nil or empty denotes the empty sequence), minting it on first use.
func (ctx *Context) SequenceName(seq []Term) Term {
	k := seqKey(seq)
	if t, ok := ctx.seqByKey[k]; ok {
		return t
	}
	sym := ctx.NewName(ctx.SequenceSort())
	t := ctx.Term(sym)
	if ctx.seqByKey == nil {
		ctx.seqByKey = make(map[string]Term)
		ctx.seqOfName = make(map[uint32][]Term)
	}
	ctx.seqByKey[k] = t
	ctx.seqOfName[t.id] = cloneArgs(seq)
	return t
}

// SequenceOf reverse-looks-up the sequence a SequenceName denotes, if t is
// one.
func (ctx *Context) SequenceOf(t Term) ([]Term, bool) {
	seq, ok := ctx.seqOfName[t.id]
	return seq, ok
}

// BoolSort is a dedicated non-rigid sort with exactly two names, True and
// False, used for sense-fluent literals. It is non-rigid so that sense
// literals built on it remain primitive.
func (ctx *Context) BoolSort() Sort {
	if ctx.boolSort == nil {
		s := ctx.NewSort(false)
		ctx.boolSort = &s
		ctx.trueTerm = ctx.Term(ctx.NewName(s))
		ctx.falseTerm = ctx.Term(ctx.NewName(s))
	}
	return *ctx.boolSort
}

// True is the name used as the right-hand side of a successful outcome.
func (ctx *Context) True() Term { ctx.BoolSort(); return ctx.trueTerm }

// False is the name used as the right-hand side of a failed outcome.
func (ctx *Context) False() Term { ctx.BoolSort(); return ctx.falseTerm }

func (ctx *Context) sfFluentSymbol() Symbol {
	if ctx.sfSymbol == nil {
		sym := ctx.NewFunction(ctx.BoolSort(), 2)
		ctx.sfSymbol = &sym
	}
	return *ctx.sfSymbol
}

// SF builds the sense-fluent literal "action succeeds after prefix seq",
// i.e. SF(seq, action) = True.
func (ctx *Context) SF(seq []Term, action Term) Literal {
	lhs := ctx.Term(ctx.sfFluentSymbol(), ctx.SequenceName(seq), action)
	return ctx.Eq(lhs, ctx.True())
}

// IsSF reports whether l's left-hand side is a sense-fluent application,
// and if so returns the action sequence and action it refers to.
func (ctx *Context) IsSF(l Literal) (seq []Term, action Term, ok bool) {
	if ctx.sfSymbol == nil {
		return nil, Term{}, false
	}
	lhs := l.Lhs()
	if ctx.Symbol(lhs) != *ctx.sfSymbol {
		return nil, Term{}, false
	}
	args := ctx.Args(lhs)
	seq, decoded := ctx.SequenceOf(args[0])
	if !decoded {
		return nil, Term{}, false
	}
	return seq, args[1], true
}

// AfterSort returns, creating on first use, the sort an action-sensitive
// fluent declares for its sequence parameter: it is SequenceSort(). This helper only
// exists to make that intent self-documenting at call sites.
func (ctx *Context) AfterSort() Sort { return ctx.SequenceSort() }

// BindSequence binds lit's reserved SequenceSort argument, if it has one,
// to the name for prefix. An action-sensitive fluent literal is written
// with a free variable of SequenceSort occupying one of its arguments (the
// same convention AddBoxed's templates use); BindSequence finds that
// variable and substitutes it, leaving action-insensitive literals
// unchanged. Only lit's left-hand side is inspected: the right-hand side
// of a primitive literal is always a plain value name.
func (ctx *Context) BindSequence(lit Literal, prefix []Term) Literal {
	lhs := lit.Lhs()
	if !ctx.IsFunctionHeaded(lhs) {
		return lit
	}
	seqSort := ctx.SequenceSort()
	var seqVar int32
	found := false
	for _, a := range ctx.Args(lhs) {
		sym := ctx.Symbol(a)
		if sym.IsVariable() && sym.Sort() == seqSort {
			seqVar = sym.id32()
			found = true
			break
		}
	}
	if !found {
		return lit
	}
	theta := map[int32]Term{seqVar: ctx.SequenceName(prefix)}
	newLhs := ctx.Substitute(lhs, theta)
	if lit.Pos() {
		return ctx.Eq(newLhs, lit.Rhs())
	}
	return ctx.Neq(newLhs, lit.Rhs())
}

func (ctx *Context) String() string {
	return fmt.Sprintf("Context(%s)", ctx.id)
}
