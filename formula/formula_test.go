package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-limbo/limbo/logic"
)

func freshCtx() *logic.Context { return logic.NewContext() }

func TestNotAtomPushesNegationIntoLiteral(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1 := ctx.Term(ctx.NewName(rigid))
	n2 := ctx.Term(ctx.NewName(rigid))

	f := Not(Atom(ctx.Eq(n1, n2)))
	got := f.ennf(ctx, nil)
	want := atom{lits: []logic.Literal{ctx.Neq(n1, n2)}}
	assert.Equal(t, want, got)
}

func TestNegationOfOrProducesAnd(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1, n2, n3 := ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid))

	f := Not(Or(Atom(ctx.Eq(n1, n2)), Atom(ctx.Eq(n1, n3))))
	got := f.ennf(ctx, nil)
	and, ok := got.(andNode)
	assert.True(t, ok)
	assert.Len(t, and.subs, 2)
}

func TestAndIsDeMorganSugarOverOr(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1, n2 := ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid))

	f := And(Atom(ctx.Eq(n1, n1)), Atom(ctx.Eq(n2, n2)))
	got := f.ennf(ctx, nil)
	and, ok := got.(andNode)
	assert.True(t, ok)
	assert.Len(t, and.subs, 2)
}

func TestForallIsDoubleNegatedExists(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	v := ctx.Term(ctx.NewVariable(rigid))

	f := Forall(v, Atom(ctx.Eq(v, v)))
	got := f.ennf(ctx, nil)
	_, ok := got.(forallNode)
	assert.True(t, ok)
}

func TestBoxEliminatesItselfDuringEnnf(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	fluent := ctx.NewFunction(nonRigid, 2)
	trueName := ctx.Term(ctx.NewName(nonRigid))
	action := ctx.Term(ctx.NewName(rigid))
	seqVar := ctx.Term(ctx.NewVariable(ctx.SequenceSort()))

	f := Box(action, Atom(ctx.Eq(ctx.Term(fluent, seqVar, trueName), trueName)))
	got := f.ennf(ctx, nil)
	a, ok := got.(atom)
	assert.True(t, ok)
	assert.Len(t, a.lits, 1)

	want := ctx.SequenceName([]logic.Term{action})
	name, ok := ctx.ActionPrefixNameOf(a.lits[0])
	assert.True(t, ok)
	assert.Equal(t, want, name)
}

func TestOrEnnfFlattensNestedDisjunctions(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1, n2, n3 := ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid))

	f := Or(Atom(ctx.Eq(n1, n1)), Or(Atom(ctx.Eq(n2, n2)), Atom(ctx.Eq(n3, n3))))
	got := f.ennf(ctx, nil).(orNode)
	assert.Len(t, got.subs, 3)
}

func TestCollectGathersNamesAndVariableSorts(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1 := ctx.Term(ctx.NewName(rigid))
	v := ctx.Term(ctx.NewVariable(rigid))

	f := Exists(v, Atom(ctx.Eq(v, n1)))
	names, sorts := Collect(ctx, f)
	assert.Contains(t, names, n1)
	assert.Contains(t, sorts, rigid)
}

func TestCnfRecDistributesOrOverAnd(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1, n2, n3, n4 := ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid))

	left := And(Atom(ctx.Eq(n1, n1)), Atom(ctx.Eq(n2, n2)))
	right := Atom(ctx.Eq(n3, n4))
	f := Or(left, right)
	// cnfRec directly, without Ground's constant folding, which would fold
	// these name literals away before any distribution happens.
	cnf := cnfRec(f.ennf(ctx, nil))
	// (a ∧ b) ∨ c ≡ (a ∨ c) ∧ (b ∨ c): two clauses, each of size 2.
	assert.Len(t, cnf, 2)
	for _, clause := range cnf {
		assert.Len(t, clause, 2)
	}
}

func TestActionPrefixesAlwaysIncludesEmptySequence(t *testing.T) {
	ctx := freshCtx()
	rigid := ctx.NewSort(true)
	n1, n2 := ctx.Term(ctx.NewName(rigid)), ctx.Term(ctx.NewName(rigid))

	f := Atom(ctx.Eq(n1, n2))
	z := ActionPrefixes(ctx, f)
	assert.Contains(t, z, ctx.SequenceName(nil))
}
