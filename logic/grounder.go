package logic

import (
	"sort"

	"go.uber.org/zap"
)

// ComputeHPlus builds the name universe H+ (§4.5a): the union of every
// name mentioned by the static BAT, the dynamic BAT, and extraNames
// (typically the names mentioned by the query, supplied by the caller
// after ENNF conversion), plus one freshly minted placeholder name per
// sort for which a variable occurs in a BAT clause's literals or that is
// listed in extraVarSorts. The placeholders
// guarantee quantified queries can always be witnessed or refuted without
// accidentally aliasing two distinct individuals. Each call replaces the
// H+ computed by the previous one.
func (ctx *Context) ComputeHPlus(extraNames []Term, extraVarSorts []Sort) {
	ctx.hplus = nil
	ctx.hplusBySort = make(map[int32][]Term)
	seen := make(map[int32]map[uint32]bool)
	add := func(t Term) {
		s := ctx.Sort(t).id32()
		if seen[s] == nil {
			seen[s] = make(map[uint32]bool)
		}
		if seen[s][t.id] {
			return
		}
		seen[s][t.id] = true
		ctx.hplusBySort[s] = append(ctx.hplusBySort[s], t)
		ctx.hplus = append(ctx.hplus, t)
	}

	for _, uc := range ctx.statics {
		ctx.ewffWalkTerms(uc.cond, add)
		for _, l := range uc.lits {
			ctx.walkNames(l.Lhs(), add)
			ctx.walkNames(l.Rhs(), add)
		}
	}
	for _, bc := range ctx.boxed {
		ctx.ewffWalkTerms(bc.cond, add)
		for _, l := range bc.lits {
			ctx.walkNames(l.Lhs(), add)
			ctx.walkNames(l.Rhs(), add)
		}
	}
	for _, t := range extraNames {
		ctx.walkNames(t, add)
	}

	sortsNeedingPlaceholder := make(map[int32]Sort)
	markVar := func(t Term) {
		s := ctx.Sort(t)
		sortsNeedingPlaceholder[s.id32()] = s
	}
	for _, uc := range ctx.statics {
		for _, l := range uc.lits {
			ctx.walkVariables(l.Lhs(), markVar)
			ctx.walkVariables(l.Rhs(), markVar)
		}
	}
	for _, bc := range ctx.boxed {
		for _, l := range bc.lits {
			ctx.walkVariables(l.Lhs(), markVar)
			ctx.walkVariables(l.Rhs(), markVar)
		}
	}
	for _, s := range extraVarSorts {
		sortsNeedingPlaceholder[s.id32()] = s
	}

	ids := make([]int32, 0, len(sortsNeedingPlaceholder))
	for id := range sortsNeedingPlaceholder {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s := sortsNeedingPlaceholder[id]
		add(ctx.Term(ctx.NewName(s)))
	}
	ctx.grounded = true
	ctx.log.Debug("computed H+", zap.Int("hplus_size", len(ctx.hplus)))
}

// HPlusNames returns the H+ elements of the given sort. Valid only after
// ComputeHPlus.
func (ctx *Context) HPlusNames(s Sort) []Term { return ctx.hplusBySort[s.id32()] }

// AllHPlus returns every element of H+, across all sorts.
func (ctx *Context) AllHPlus() []Term { return ctx.hplus }

// Grounded reports whether ComputeHPlus has run.
func (ctx *Context) Grounded() bool { return ctx.grounded }

// WalkNames visits every name mentioned within t, including t itself if
// it is one.
func (ctx *Context) WalkNames(t Term, f func(Term)) { ctx.walkNames(t, f) }

// WalkVariables visits the distinct variable occurring at t's head, or
// recurses into t's arguments if t is not itself a variable.
func (ctx *Context) WalkVariables(t Term, f func(Term)) { ctx.walkVariables(t, f) }

func (ctx *Context) walkNames(t Term, f func(Term)) {
	if t.IsName() {
		f(t)
	}
	for _, a := range ctx.Args(t) {
		ctx.walkNames(a, f)
	}
}

func (ctx *Context) walkVariables(t Term, f func(Term)) {
	if ctx.Symbol(t).IsVariable() {
		f(t)
		return
	}
	for _, a := range ctx.Args(t) {
		ctx.walkVariables(a, f)
	}
}

func (ctx *Context) ewffWalkTerms(e *Ewff, f func(Term)) {
	switch e.kind {
	case ewffTrue:
	case ewffEq, ewffNeq:
		ctx.walkNames(e.lhs, f)
		ctx.walkNames(e.rhs, f)
	case ewffAnd, ewffOr:
		ctx.ewffWalkTerms(e.a, f)
		ctx.ewffWalkTerms(e.b, f)
	case ewffNot:
		ctx.ewffWalkTerms(e.a, f)
	}
}

// instantiateClause grounds cond/lits by enumerating every free variable
// not already bound in extra over H+, keeping only the assignments that
// satisfy cond, and adds each resulting ground clause to out.
func (ctx *Context) instantiateClause(cond *Ewff, lits []Literal, extra map[int32]Term, out *Setup) {
	free := ctx.freeVariablesOf(lits)
	ctx.ewffFreeVariables(cond, free)

	theta := make(map[int32]Term, len(free))
	var remaining []Term
	for id, v := range free {
		if bound, ok := extra[id]; ok {
			theta[id] = bound
		} else {
			remaining = append(remaining, v)
		}
	}
	sort.Slice(remaining, func(i, j int) bool {
		return ctx.Symbol(remaining[i]).id32() < ctx.Symbol(remaining[j]).id32()
	})
	ctx.enumerateAndAdd(cond, lits, theta, remaining, 0, out)
}

func (ctx *Context) enumerateAndAdd(cond *Ewff, lits []Literal, theta map[int32]Term, remaining []Term, i int, out *Setup) {
	if i == len(remaining) {
		if !ctx.EvalEwff(cond, theta) {
			return
		}
		// Constant-fold each ground literal the same way query literals are
		// folded (§4.5d): a literal that is unsatisfiable once its
		// variables are all bound to names contributes nothing to the
		// disjunction and is dropped; one that is valid makes the whole
		// ground clause a tautology, carrying no information, so the
		// clause is skipped entirely rather than added to the setup.
		ground := make([]Literal, 0, len(lits))
		for _, l := range lits {
			lhs := ctx.Substitute(l.Lhs(), theta)
			rhs := ctx.Substitute(l.Rhs(), theta)
			var gl Literal
			if l.Pos() {
				gl = ctx.Eq(lhs, rhs)
			} else {
				gl = ctx.Neq(lhs, rhs)
			}
			if ctx.Valid(gl) {
				return
			}
			if ctx.Unsatisfiable(gl) {
				continue
			}
			ground = append(ground, gl)
		}
		out.Add(ctx.NewClause(ground, false))
		return
	}
	v := remaining[i]
	sym := ctx.Symbol(v)
	for _, n := range ctx.HPlusNames(sym.Sort()) {
		theta[sym.id32()] = n
		ctx.enumerateAndAdd(cond, lits, theta, remaining, i+1, out)
	}
	delete(theta, sym.id32())
}

// instantiateBoxed grounds a boxed clause for one action-sequence prefix,
// named by seqName (a term minted by SequenceName): every free variable of
// SequenceSort is bound to seqName before the remaining variables are
// enumerated over H+ as usual.
func (ctx *Context) instantiateBoxed(bc boxUnivClause, seqName Term, out *Setup) {
	free := ctx.freeVariablesOf(bc.lits)
	ctx.ewffFreeVariables(bc.cond, free)
	extra := make(map[int32]Term)
	seqSort := ctx.SequenceSort()
	for id, v := range free {
		if ctx.Sort(v) == seqSort {
			extra[id] = seqName
		}
	}
	ctx.instantiateClause(bc.cond, bc.lits, extra, out)
}

// InstantiateBAT runs grounding phases (b) and (c): it instantiates every
// static clause unconditionally and every boxed clause once per name in
// prefixNames (each a term minted by SequenceName; the empty sequence's
// name should always be included), returning the resulting ground Setup.
// ComputeHPlus must have run first.
func (ctx *Context) InstantiateBAT(prefixNames []Term) *Setup {
	out := newSetup(ctx)
	for _, uc := range ctx.statics {
		ctx.instantiateClause(uc.cond, uc.lits, nil, out)
	}
	staticClauses := len(out.Clauses())
	names := prefixNames
	if len(names) == 0 {
		names = []Term{ctx.SequenceName(nil)}
	}
	for _, bc := range ctx.boxed {
		for _, seqName := range names {
			ctx.instantiateBoxed(bc, seqName, out)
		}
	}
	ctx.log.Debug("instantiated BAT",
		zap.Int("static_clauses", staticClauses),
		zap.Int("boxed_clauses", len(out.Clauses())-staticClauses),
		zap.Int("prefixes", len(names)))
	ctx.setup = out
	return out
}

// SetupRef returns the context's current ground setup, built by the most
// recent InstantiateBAT call (or the empty setup before grounding).
func (ctx *Context) SetupRef() *Setup { return ctx.setup }
