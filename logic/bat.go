package logic

// univClause and boxUnivClause are the two flavors of schematic clause a
// basic action theory is assembled from (§4.5a): a univClause holds in
// every situation reachable by grounding its free variables over H+,
// guarded by cond; a boxUnivClause additionally holds after every action
// sequence in the query's prefix set, via the sequence-tagging convention
// documented in actions.go.
type univClause struct {
	cond *Ewff
	lits []Literal
}

type boxUnivClause struct {
	cond *Ewff
	lits []Literal
}

// AddStatic registers a schematic clause that holds unconditionally, i.e.
// independent of any action sequence. cond guards which substitutions of
// the clause's free variables are admitted; pass EwffTrue() to admit all of
// them.
func (ctx *Context) AddStatic(cond *Ewff, lits []Literal) {
	ctx.statics = append(ctx.statics, univClause{cond: cond, lits: append([]Literal{}, lits...)})
	ctx.grounded = false
}

// AddBoxed registers a schematic clause meant to describe the successor
// state of a dynamic fluent. Any fluent literal in lits that is sensitive
// to the action history must declare a free variable of SequenceSort in
// the argument position the grounder should bind to the action-sequence
// prefix being instantiated; see actions.go and instantiateBoxed.
func (ctx *Context) AddBoxed(cond *Ewff, lits []Literal) {
	ctx.boxed = append(ctx.boxed, boxUnivClause{cond: cond, lits: append([]Literal{}, lits...)})
	ctx.grounded = false
}

// freeVariablesOf collects every variable symbol mentioned anywhere in
// lits, used by the grounder to decide what to enumerate substitutions for.
func (ctx *Context) freeVariablesOf(lits []Literal) map[int32]Term {
	out := make(map[int32]Term)
	for _, l := range lits {
		ctx.collectVariables(l.Lhs(), out)
		ctx.collectVariables(l.Rhs(), out)
	}
	return out
}
