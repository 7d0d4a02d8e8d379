package logic

// ClauseRef is a compact, context-relative reference to a clause stored in
// the clause arena.
type ClauseRef int32

// NoClause is never returned by NewClause.
const NoClause ClauseRef = -1

type clauseHeader struct {
	offset int32
	size   int32
	learnt bool
}

// clauseArena is a grow-only, bump-allocated pool of literals. Clauses are
// packed contiguously; a ClauseRef only indexes the header table, so the
// backing literal slice can be reallocated by append without invalidating
// refs already handed out.
type clauseArena struct {
	lits    []Literal
	headers []clauseHeader
}

func newClauseArena() *clauseArena {
	return &clauseArena{}
}

func (a *clauseArena) alloc(lits []Literal, learnt bool) ClauseRef {
	offset := int32(len(a.lits))
	a.lits = append(a.lits, lits...)
	a.headers = append(a.headers, clauseHeader{offset: offset, size: int32(len(lits)), learnt: learnt})
	return ClauseRef(len(a.headers) - 1)
}

func (a *clauseArena) literals(ref ClauseRef) []Literal {
	h := a.headers[ref]
	return a.lits[h.offset : h.offset+h.size : h.offset+h.size]
}

// delete reclaims the arena chunk backing ref only if it sits at the
// current high-water mark (stack-discipline reclamation, matching the
// original clause memory pool's Free()). Returns whether anything was
// reclaimed.
func (a *clauseArena) delete(ref ClauseRef) bool {
	h := a.headers[ref]
	if int(ref) == len(a.headers)-1 && int(h.offset+h.size) == len(a.lits) {
		a.lits = a.lits[:h.offset]
		a.headers = a.headers[:ref]
		return true
	}
	return false
}

// NewClause interns a clause, normalizing it unless guaranteedNormalized
// is set by a caller that has already established §4.3's normal form.
//
// Normalization removes every literal that properly subsumes another
// literal of the same clause (a literal a that subsumes b is strictly
// stronger than b, so a ∨ b ≡ b and a can be dropped), and collapses the clause to the
// unit tautology if any two of its literals are jointly valid.
func (ctx *Context) NewClause(lits []Literal, guaranteedNormalized bool) ClauseRef {
	if guaranteedNormalized {
		return ctx.clauseArena.alloc(lits, false)
	}
	kept := normalizeLiterals(lits)
	if kept == nil {
		return ctx.clauseArena.alloc([]Literal{NullLiteral}, false)
	}
	return ctx.clauseArena.alloc(kept, false)
}

// normalizeLiterals implements Clause::Normalize from the original source:
// a literal that subsumes an earlier kept literal, or that properly subsumes
// a later literal, is dropped; a pair of jointly-valid literals collapses
// the whole clause to the tautology (reported as a nil slice).
func normalizeLiterals(lits []Literal) []Literal {
	kept := make([]Literal, 0, len(lits))
	for i2 := 0; i2 < len(lits); i2++ {
		dropped := false
		for _, k := range kept {
			if ValidPair(lits[i2], k) {
				return nil
			}
			if Subsumes(lits[i2], k) {
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}
		for j := i2 + 1; j < len(lits); j++ {
			if ProperlySubsumes(lits[i2], lits[j]) {
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, lits[i2])
		}
	}
	if len(kept) == 0 {
		kept = []Literal{}
	}
	return kept
}

// Clause is a read-only view of a clause stored in a Context's arena.
type Clause struct {
	ctx *Context
	ref ClauseRef
}

// ClauseAt returns a view of the clause ref.
func (ctx *Context) ClauseAt(ref ClauseRef) Clause { return Clause{ctx: ctx, ref: ref} }

func (c Clause) Ref() ClauseRef { return c.ref }

// Size returns the number of literals in c.
func (c Clause) Size() int { return len(c.ctx.clauseArena.literals(c.ref)) }

// Empty reports whether c is the empty (contradictory) clause.
func (c Clause) Empty() bool { return c.Size() == 0 }

// Unit reports whether c has exactly one literal.
func (c Clause) Unit() bool { return c.Size() == 1 }

// Valid reports whether c is the tautology (the unit null literal).
func (c Clause) Valid() bool {
	lits := c.ctx.clauseArena.literals(c.ref)
	return len(lits) == 1 && lits[0].IsNull()
}

// Unsat reports whether c is the empty clause.
func (c Clause) Unsat() bool { return c.Empty() }

// At returns the i-th literal of c.
func (c Clause) At(i int) Literal { return c.ctx.clauseArena.literals(c.ref)[i] }

// Literals returns c's literals. The returned slice aliases arena memory
// and must not be mutated.
func (c Clause) Literals() []Literal { return c.ctx.clauseArena.literals(c.ref) }

// Subsumes reports whether every literal of c subsumes some literal of
// other: c is the stronger clause, c ⊨ other.
func (c Clause) Subsumes(other Clause) bool {
	for _, a := range c.Literals() {
		found := false
		for _, b := range other.Literals() {
			if Subsumes(a, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Equal reports set equality of literals, independent of order.
func (c Clause) Equal(other Clause) bool {
	al, bl := c.Literals(), other.Literals()
	if len(al) != len(bl) {
		return false
	}
	for _, a := range al {
		found := false
		for _, b := range bl {
			if a == b {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RemoveIf removes, in place, every literal satisfying p, and returns the
// count removed. The arena storage for c is mutated in place; the result
// remains normalized only if the caller's predicate preserves that.
func (c Clause) RemoveIf(p func(Literal) bool) int {
	lits := c.ctx.clauseArena.literals(c.ref)
	i1 := 0
	for i2 := 0; i2 < len(lits); i2++ {
		if p(lits[i2]) {
			continue
		}
		lits[i1] = lits[i2]
		i1++
	}
	removed := len(lits) - i1
	h := &c.ctx.clauseArena.headers[c.ref]
	h.size = int32(i1)
	return removed
}
