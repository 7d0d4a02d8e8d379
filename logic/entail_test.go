package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetupSubsumesChainsAcrossMultipleClauses exercises the two-hop case
// augmentedClauses exists for: a split literal shrinks one disjunctive
// clause down to a fresh unit, and that derived unit must in turn resolve
// against a second, unrelated clause before the target is reachable.
func TestSetupSubsumesChainsAcrossMultipleClauses(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	other := ctx.NewFunction(ctx.NewSort(false), 1)
	lhs := ctx.Term(fluent, names[0])
	g := ctx.Term(other, names[0])

	disjunctive := ctx.NewClause([]Literal{ctx.Eq(lhs, names[1]), ctx.Eq(lhs, names[2])}, true)
	bridge := ctx.NewClause([]Literal{ctx.Neq(lhs, names[2]), ctx.Eq(g, names[1])}, true)
	target := ctx.NewClause([]Literal{ctx.Eq(g, names[1])}, true)

	s := newSetup(ctx)
	s.Add(disjunctive)
	s.Add(bridge)

	assert.False(t, s.Subsumes(nil, target), "target must not be reachable without the split")
	split := []Literal{ctx.Neq(lhs, names[1])}
	assert.True(t, s.Subsumes(split, target))
}

// TestSetupSubsumesDetectsIndependentUnitContradiction covers the case two
// separate resolution chains each shrink a different clause down to a unit,
// and those two units turn out to be complementary: the augmented setup is
// inconsistent even though no single clause ever collapses to empty on its
// own.
func TestSetupSubsumesDetectsIndependentUnitContradiction(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	other := ctx.NewFunction(ctx.NewSort(false), 1)
	a := ctx.Eq(ctx.Term(fluent, names[0]), names[1])
	b := ctx.Eq(ctx.Term(other, names[0]), names[1])

	unit := ctx.NewClause([]Literal{a}, true)
	branch1 := ctx.NewClause([]Literal{a.Flip(), b}, true)
	branch2 := ctx.NewClause([]Literal{a.Flip(), b.Flip()}, true)

	s := newSetup(ctx)
	s.Add(unit)
	s.Add(branch1)
	s.Add(branch2)

	assert.False(t, ctx.ConsistentAt(s, 0, false))
	// An inconsistent setup subsumes (entails) any target, including one
	// that mentions neither a nor b.
	unrelated := ctx.NewClause([]Literal{ctx.Eq(names[1], names[2])}, true)
	assert.True(t, s.Subsumes(nil, unrelated))
}

// TestEntailsClauseAtSplitsOnPELWhenDirectSubsumptionFails mirrors the
// two-candidate disjunctive-fluent case: no split needed clause is directly
// available at k=0, but a single split (k=1) on the disjunction's own atom
// resolves both branches.
func TestEntailsClauseAtSplitsOnPELWhenDirectSubsumptionFails(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	other := ctx.NewFunction(ctx.NewSort(false), 1)
	lhs := ctx.Term(fluent, names[0])
	g := ctx.Term(other, names[0])

	s := newSetup(ctx)
	s.Add(ctx.NewClause([]Literal{ctx.Eq(lhs, names[1]), ctx.Eq(lhs, names[2])}, true))
	s.Add(ctx.NewClause([]Literal{ctx.Neq(lhs, names[1]), ctx.Eq(g, names[0])}, true))
	s.Add(ctx.NewClause([]Literal{ctx.Neq(lhs, names[2]), ctx.Eq(g, names[0])}, true))

	target := ctx.NewClause([]Literal{ctx.Eq(g, names[0])}, true)
	assert.False(t, ctx.entailsClauseAt(s, 0, target, nil))
	assert.True(t, ctx.entailsClauseAt(s, 1, target, nil))
}

// TestPrunePELDropsAlreadyDecidedAtom checks that an atom already fixed by
// a unit clause in the setup is never offered as a split candidate.
func TestPrunePELDropsAlreadyDecidedAtom(t *testing.T) {
	ctx, fluent, names := primitiveFixture(t)
	lhs := ctx.Term(fluent, names[0])
	a := ctx.Eq(lhs, names[1])

	s := newSetup(ctx)
	s.Add(ctx.NewClause([]Literal{a}, true))
	target := ctx.NewClause([]Literal{a}, true)

	pruned := prunePEL(ctx, s, []Literal{a}, target, 1)
	assert.Empty(t, pruned, "a is already decided by the setup's own unit clause")
}
