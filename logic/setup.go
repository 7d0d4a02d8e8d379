package logic

import (
	"sort"

	"go.uber.org/zap"
)

// Setup is a set of ground clause refs together with a cache of
// consistency verdicts, one per effort level k. It owns only refs into its
// context's clause arena; no clause is ever deleted while a live Setup
// references it.
type Setup struct {
	ctx *Context

	clauses []ClauseRef
	seen    map[string]int // clause content signature -> index in clauses

	consistent map[int]bool // k -> cached "setup is consistent at k"
}

func newSetup(ctx *Context) *Setup {
	return &Setup{ctx: ctx, seen: make(map[string]int), consistent: make(map[int]bool)}
}

func appendU64(buf []byte, v uint64) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func (s *Setup) signature(ref ClauseRef) string {
	lits := append([]Literal{}, s.ctx.ClauseAt(ref).Literals()...)
	sort.Slice(lits, func(i, j int) bool { return lits[i].data < lits[j].data })
	buf := make([]byte, 0, 8*len(lits))
	for _, l := range lits {
		buf = appendU64(buf, l.data)
	}
	return string(buf)
}

// Add inserts ref into the setup, deduplicating by content. Reports
// whether ref was newly added.
func (s *Setup) Add(ref ClauseRef) bool {
	sig := s.signature(ref)
	if _, ok := s.seen[sig]; ok {
		return false
	}
	s.seen[sig] = len(s.clauses)
	s.clauses = append(s.clauses, ref)
	return true
}

// Union merges other's clauses into s.
func (s *Setup) Union(other *Setup) {
	for _, ref := range other.clauses {
		s.Add(ref)
	}
}

// Clauses returns s's clause refs. The slice aliases internal storage and
// must not be mutated.
func (s *Setup) Clauses() []ClauseRef { return s.clauses }

// AddSensingResult records that action, attempted after prefix seq, had
// the given outcome: it inserts the unit literal SF(seq,action)=outcome as
// a fact, and flips any consistency bit that becomes stale: if the setup
// already entailed the opposite outcome at some k before this update, the
// updated setup is inconsistent at k and at every k' >= k.
func (ctx *Context) AddSensingResult(s *Setup, seq []Term, action Term, outcome bool) {
	lit := ctx.SF(seq, action)
	if !outcome {
		lit = lit.Flip()
	}
	negLit := lit.Flip()
	negRef := ctx.NewClause([]Literal{negLit}, true)

	ks := make([]int, 0, len(s.consistent))
	for k := range s.consistent {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	for _, k := range ks {
		if !s.consistent[k] {
			continue
		}
		if ctx.entailsClauseAt(s, k, negRef, nil) {
			ctx.log.Warn("sensing result invalidated cached consistency",
				zap.Int("k", k), zap.Bool("outcome", outcome))
			for _, k2 := range ks {
				if k2 >= k {
					s.consistent[k2] = false
				}
			}
			break
		}
	}

	ref := ctx.NewClause([]Literal{lit}, true)
	s.Add(ref)
}

// Minimize drops every clause that is properly subsumed by another clause
// in the setup (i.e. redundant, since the stronger clause already entails
// it), keeping the earliest-added of a set of mutually-subsuming
// duplicates.
func (s *Setup) Minimize() {
	kept := make([]ClauseRef, 0, len(s.clauses))
	for i, ci := range s.clauses {
		subsumedByOther := false
		cic := s.ctx.ClauseAt(ci)
		for j, cj := range s.clauses {
			if i == j {
				continue
			}
			cjc := s.ctx.ClauseAt(cj)
			if !cjc.Subsumes(cic) {
				continue
			}
			if cic.Subsumes(cjc) && j > i {
				// mutually subsuming (duplicate); keep the earlier one
				continue
			}
			subsumedByOther = true
			break
		}
		if !subsumedByOther {
			kept = append(kept, ci)
		}
	}
	s.clauses = kept
	s.seen = make(map[string]int, len(kept))
	for i, ref := range kept {
		s.seen[s.signature(ref)] = i
	}
}

// PropagateUnits closes the setup under resolution of unit clauses against
// every other clause, shrinking each clause in place. It returns false if
// the empty clause is derived (the setup is outright inconsistent).
func (s *Setup) PropagateUnits() bool {
	queue := make([]ClauseRef, 0)
	for _, ref := range s.clauses {
		if s.ctx.ClauseAt(ref).Unit() {
			queue = append(queue, ref)
		}
	}
	processed := make(map[ClauseRef]bool)
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if processed[ref] {
			continue
		}
		processed[ref] = true
		c := s.ctx.ClauseAt(ref)
		if !c.Unit() {
			continue
		}
		u := c.At(0)
		for _, other := range s.clauses {
			if other == ref {
				continue
			}
			oc := s.ctx.ClauseAt(other)
			removed := oc.RemoveIf(func(l Literal) bool { return Complementary(u, l) })
			if removed == 0 {
				continue
			}
			if oc.Empty() {
				return false
			}
			if oc.Unit() {
				queue = append(queue, other)
			}
		}
	}
	return true
}

// augmentedClauses computes, without mutating s, the clause set obtained by
// adding each of splitLiterals to s as its own unit clause and closing the
// result under unit propagation (the same resolution propagate_units
// performs, but against a scratch copy of the literal lists rather than the
// arena). A clause that propagates away to nothing witnesses that
// splitLiterals is inconsistent with s.
func (s *Setup) augmentedClauses(splitLiterals []Literal) [][]Literal {
	clauses := make([][]Literal, 0, len(s.clauses)+len(splitLiterals))
	for _, ref := range s.clauses {
		lits := s.ctx.ClauseAt(ref).Literals()
		clauses = append(clauses, append([]Literal{}, lits...))
	}
	for _, l := range splitLiterals {
		clauses = append(clauses, []Literal{l})
	}
	for changed := true; changed; {
		changed = false
		var units []Literal
		for _, c := range clauses {
			if len(c) == 1 {
				units = append(units, c[0])
			}
		}
		for i := 0; i < len(units); i++ {
			for j := i + 1; j < len(units); j++ {
				if Complementary(units[i], units[j]) {
					// two established unit facts cannot both hold: the
					// augmented setup is inconsistent, so it subsumes
					// (entails) anything, the empty clause included.
					return [][]Literal{{}}
				}
			}
		}
		for i, c := range clauses {
			if len(c) <= 1 {
				continue
			}
			kept := make([]Literal, 0, len(c))
			shrank := false
			for _, l := range c {
				ruledOut := false
				for _, u := range units {
					if Complementary(u, l) {
						ruledOut = true
						shrank = true
						break
					}
				}
				if !ruledOut {
					kept = append(kept, l)
				}
			}
			if shrank {
				clauses[i] = kept
				changed = true
			}
		}
	}
	return clauses
}

// Subsumes is the hot inner loop of entailment: it reports whether some
// clause of the setup, augmented by the literals currently assumed true by
// splitting, subsumes target.
func (s *Setup) Subsumes(splitLiterals []Literal, target ClauseRef) bool {
	tlits := s.ctx.ClauseAt(target).Literals()
	subsumesTarget := func(c []Literal) bool {
		for _, a := range c {
			found := false
			for _, b := range tlits {
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
	for _, c := range s.augmentedClauses(splitLiterals) {
		if subsumesTarget(c) {
			return true
		}
	}
	return false
}

// canonAtom returns the positive form of l, used to identify l's
// underlying atom regardless of the polarity it occurs with.
func canonAtom(l Literal) Literal {
	if !l.Pos() {
		return l.Flip()
	}
	return l
}

// PEL computes the positive extended literals reachable from seed by
// closing under "co-occurrence in a setup clause": an atom is added
// whenever it, or its negation, occurs in a clause that already contains
// a PEL atom. The result is sorted by literal id for deterministic
// splitting order.
func (s *Setup) PEL(seed []Literal) []Literal {
	seen := make(map[Literal]bool)
	queue := make([]Literal, 0, len(seed))
	for _, l := range seed {
		a := canonAtom(l)
		if !seen[a] {
			seen[a] = true
			queue = append(queue, a)
		}
	}
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		for _, ref := range s.clauses {
			c := s.ctx.ClauseAt(ref)
			mentions := false
			for _, l := range c.Literals() {
				if canonAtom(l) == a {
					mentions = true
					break
				}
			}
			if !mentions {
				continue
			}
			for _, l := range c.Literals() {
				b := canonAtom(l)
				if !seen[b] {
					seen[b] = true
					queue = append(queue, b)
				}
			}
		}
	}
	out := make([]Literal, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].data < out[j].data })
	return out
}

// ConsistentAt reports whether the setup is consistent at effort level k,
// caching the result. If guarantee is set, the caller is asserting
// consistency (e.g. because the BAT was constructed to be consistent by
// design) and no probe is run.
func (ctx *Context) ConsistentAt(s *Setup, k int, guarantee bool) bool {
	if v, ok := s.consistent[k]; ok {
		return v
	}
	if guarantee {
		s.consistent[k] = true
		return true
	}
	empty := ctx.NewClause(nil, true)
	result := !ctx.entailsClauseAt(s, k, empty, nil)
	s.consistent[k] = result
	return result
}

// Equal reports whether a and b contain the same set of clauses, up to
// clause-level set equality (order-independent, content-addressed).
func (a *Setup) Equal(b *Setup) bool {
	if len(a.clauses) != len(b.clauses) {
		return false
	}
	bSigs := make(map[string]bool, len(b.clauses))
	for _, ref := range b.clauses {
		bSigs[b.signature(ref)] = true
	}
	for _, ref := range a.clauses {
		if !bSigs[a.signature(ref)] {
			return false
		}
	}
	return true
}
