package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClauseDropsProperlySubsumingLiteral(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	strong := ctx.Eq(lhs, names[1])  // fluent = n1
	weak := ctx.Neq(lhs, names[2])   // fluent != n2, subsumed by strong

	// strong implies weak, so strong ∨ weak ≡ weak: the subsuming literal goes.
	ref := ctx.NewClause([]Literal{strong, weak}, false)
	c := ctx.ClauseAt(ref)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, weak, c.At(0))
}

func TestNewClauseCollapsesToTautologyOnValidPair(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	a := ctx.Eq(lhs, names[1])
	ref := ctx.NewClause([]Literal{a, a.Flip()}, false)
	c := ctx.ClauseAt(ref)
	assert.True(t, c.Valid())
}

func TestNewClauseEmptyIsUnsat(t *testing.T) {
	ctx := NewContext()
	ref := ctx.NewClause(nil, false)
	assert.True(t, ctx.ClauseAt(ref).Unsat())
}

func TestClauseSubsumes(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	strong := ctx.NewClause([]Literal{ctx.Eq(lhs, names[1])}, true)
	weak := ctx.NewClause([]Literal{ctx.Eq(lhs, names[1]), ctx.Neq(lhs, names[2])}, true)

	// c subsumes d iff every literal of c subsumes some literal of d: the
	// unit clause "fluent=n1" subsumes the disjunction containing it.
	assert.True(t, ctx.ClauseAt(strong).Subsumes(ctx.ClauseAt(weak)))
}

func TestClauseSubsumesImpliesEntailedClassically(t *testing.T) {
	// c.Subsumes(d) => d is entailed by c (invariant 6): every model
	// satisfying c's literal must satisfy one of d's literals because c's
	// literal is literally among d's literals here.
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	shared := ctx.Eq(lhs, names[1])
	c := ctx.NewClause([]Literal{shared}, true)
	d := ctx.NewClause([]Literal{shared, ctx.Neq(lhs, names[2])}, true)
	assert.True(t, ctx.ClauseAt(c).Subsumes(ctx.ClauseAt(d)))
}

func TestClauseEqualIsOrderIndependent(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	a := ctx.Eq(lhs, names[1])
	b := ctx.Neq(lhs, names[2])
	c1 := ctx.NewClause([]Literal{a, b}, true)
	c2 := ctx.NewClause([]Literal{b, a}, true)
	assert.True(t, ctx.ClauseAt(c1).Equal(ctx.ClauseAt(c2)))
}

func TestClauseRemoveIf(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	a := ctx.Eq(lhs, names[1])
	b := ctx.Neq(lhs, names[2])
	ref := ctx.NewClause([]Literal{a, b}, true)
	c := ctx.ClauseAt(ref)
	removed := c.RemoveIf(func(l Literal) bool { return l == b })
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, a, c.At(0))
}

func TestNoLiteralProperlySubsumesAnotherAfterNormalize(t *testing.T) {
	// invariant 2: for every normalized clause, no literal properly
	// subsumes another.
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	a := ctx.Eq(lhs, names[1])
	b := ctx.Neq(lhs, names[2])
	ref := ctx.NewClause([]Literal{a, b}, false)
	lits := ctx.ClauseAt(ref).Literals()
	for _, x := range lits {
		for _, y := range lits {
			if x == y {
				continue
			}
			assert.False(t, ProperlySubsumes(x, y))
		}
	}
}
