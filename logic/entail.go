package logic

// sequenceTagOf inspects t's arguments, reporting the action sequence
// denoted by the first one that is a SequenceName, if t is a function
// application (the convention actions.go uses for action-sensitive
// fluents).
func (ctx *Context) sequenceTagOf(t Term) ([]Term, bool) {
	if !ctx.IsFunctionHeaded(t) {
		return nil, false
	}
	for _, a := range ctx.Args(t) {
		if seq, ok := ctx.SequenceOf(a); ok {
			return seq, true
		}
	}
	return nil, false
}

// ActionPrefixNameOf returns the SequenceName term tagging l's left-hand
// side, if any, as bound by BindSequence. Used by the formula package to
// discover the query's action-sequence prefix set Z without needing to
// decode the sequence itself.
func (ctx *Context) ActionPrefixNameOf(l Literal) (Term, bool) {
	lhs := l.Lhs()
	if !ctx.IsFunctionHeaded(lhs) {
		return Term{}, false
	}
	for _, a := range ctx.Args(lhs) {
		if _, ok := ctx.SequenceOf(a); ok {
			return a, true
		}
	}
	return Term{}, false
}

// actionPrefixesOf collects the distinct non-empty action-sequence
// prefixes mentioned by c's literals.
func (ctx *Context) actionPrefixesOf(c ClauseRef) [][]Term {
	seen := make(map[string]bool)
	var out [][]Term
	for _, l := range ctx.ClauseAt(c).Literals() {
		z, ok := ctx.sequenceTagOf(l.Lhs())
		if !ok || len(z) == 0 {
			continue
		}
		k := seqKey(z)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, z)
	}
	return out
}

// hasUnitDecision reports whether the setup already contains a's or its
// negation's unit clause.
func (s *Setup) hasUnitDecision(a Literal) bool {
	neg := a.Flip()
	for _, ref := range s.clauses {
		c := s.ctx.ClauseAt(ref)
		if !c.Unit() {
			continue
		}
		l := c.At(0)
		if l == a || l == neg {
			return true
		}
	}
	return false
}

// literalsDisjoint counts the literals of d absent from c's literal set.
func literalsDisjoint(ctx *Context, d, c ClauseRef) int {
	clits := ctx.ClauseAt(c).Literals()
	n := 0
	for _, l := range ctx.ClauseAt(d).Literals() {
		found := false
		for _, m := range clits {
			if l == m {
				found = true
				break
			}
		}
		if !found {
			n++
		}
	}
	return n
}

// prunePEL drops PEL atoms that cannot possibly help prove c at budget k:
// atoms already decided by a setup unit, and atoms for which no setup
// clause is either short enough to trigger further unit propagation
// (|d| <= k+1) or close enough to c to be combined into a subsuming
// clause by further splits (|d \ c| <= k).
func prunePEL(ctx *Context, s *Setup, pel []Literal, c ClauseRef, k int) []Literal {
	out := make([]Literal, 0, len(pel))
	for _, a := range pel {
		if s.hasUnitDecision(a) {
			continue
		}
		useful := false
		for _, ref := range s.clauses {
			sz := ctx.ClauseAt(ref).Size()
			if sz <= k+1 || literalsDisjoint(ctx, ref, c) <= k {
				useful = true
				break
			}
		}
		if useful {
			out = append(out, a)
		}
	}
	return out
}

// decided reports whether l's truth is already fixed by the assumption
// set S, either directly or via its negation.
func decided(S []Literal, l Literal) bool {
	neg := l.Flip()
	for _, s := range S {
		if s == l || s == neg {
			return true
		}
	}
	return false
}

// entailsClauseAt implements the k-bounded split-and-sense procedure
// (§4.6): it decides whether setup, together with the literals currently
// assumed in S, entails the ground clause target at effort k.
func (ctx *Context) entailsClauseAt(s *Setup, k int, target ClauseRef, S []Literal) bool {
	if s.Subsumes(S, target) {
		return true
	}
	if k > 0 {
		seed := ctx.ClauseAt(target).Literals()
		pel := prunePEL(ctx, s, s.PEL(seed), target, k)
		tried := false
		for _, l := range pel {
			if decided(S, l) {
				continue
			}
			tried = true
			pos := append(append([]Literal{}, S...), l)
			if !ctx.entailsClauseAt(s, k-1, target, pos) {
				continue
			}
			neg := append(append([]Literal{}, S...), l.Flip())
			if ctx.entailsClauseAt(s, k-1, target, neg) {
				return true
			}
		}
		_ = tried
	}
	for _, z := range ctx.actionPrefixesOf(target) {
		if len(z) == 0 {
			continue
		}
		zp := z[:len(z)-1]
		a := z[len(z)-1]
		sf := ctx.SF(zp, a)
		if decided(S, sf) {
			continue
		}
		pos := append(append([]Literal{}, S...), sf)
		if !ctx.entailsClauseAt(s, k, target, pos) {
			continue
		}
		neg := append(append([]Literal{}, S...), sf.Flip())
		if ctx.entailsClauseAt(s, k, target, neg) {
			return true
		}
	}
	return false
}

// Entails reports whether the setup s entails the CNF clause set cnf at
// effort k: every clause must individually be entailed.
func (ctx *Context) Entails(s *Setup, cnf [][]Literal, k int) bool {
	for _, disjuncts := range cnf {
		ref := ctx.NewClause(disjuncts, false)
		if !ctx.entailsClauseAt(s, k, ref, nil) {
			return false
		}
	}
	return true
}

// Consistent reports whether s is consistent at effort k, i.e. whether s
// does not entail the empty clause. guarantee skips the probe when the
// caller already knows the BAT is consistent by construction.
func (ctx *Context) Consistent(s *Setup, k int, guarantee bool) bool {
	return ctx.ConsistentAt(s, k, guarantee)
}

// WithAssumptions returns a fresh setup containing s's clauses plus one
// clause per disjuncts in cnf, without mutating s. Used to test consistency
// under a hypothetical addition to the setup (the consistent(k, φ)
// operation of §6) without disturbing s's own cached consistency bits.
func (ctx *Context) WithAssumptions(s *Setup, cnf [][]Literal) *Setup {
	scratch := newSetup(ctx)
	scratch.Union(s)
	for _, disjuncts := range cnf {
		scratch.Add(ctx.NewClause(disjuncts, false))
	}
	return scratch
}

// EntailsComplete decides entailment through the complement: it reports
// whether s ∪ ¬query is found inconsistent at effort k. negatedCNF is the
// CNF of the query's negation, already grounded.
func (ctx *Context) EntailsComplete(s *Setup, negatedCNF [][]Literal, k int) bool {
	scratch := newSetup(ctx)
	scratch.Union(s)
	for _, disjuncts := range negatedCNF {
		scratch.Add(ctx.NewClause(disjuncts, false))
	}
	return !ctx.ConsistentAt(scratch, k, false)
}
