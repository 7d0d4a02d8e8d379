package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHPlusCollectsBATNames(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	p := ctx.NewFunction(nonRigid, 1)
	n1 := ctx.Term(ctx.NewName(rigid))
	n2 := ctx.Term(ctx.NewName(rigid))

	ctx.AddStatic(EwffTrue(), []Literal{ctx.Eq(ctx.Term(p, n1), n2)})
	ctx.ComputeHPlus(nil, nil)

	names := ctx.HPlusNames(rigid)
	assert.Contains(t, names, n1)
	assert.Contains(t, names, n2)
}

func TestComputeHPlusAddsPlaceholderForFreeVariableSort(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	p := ctx.NewFunction(nonRigid, 1)
	n1 := ctx.Term(ctx.NewName(rigid))
	v := ctx.Term(ctx.NewVariable(rigid))

	ctx.AddStatic(EwffTrue(), []Literal{ctx.Eq(ctx.Term(p, v), n1)})
	ctx.ComputeHPlus(nil, nil)

	// n1 plus a fresh placeholder for the free variable's sort.
	assert.GreaterOrEqual(t, len(ctx.HPlusNames(rigid)), 2)
}

func TestInstantiateBATGroundsStaticOverHPlus(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	p := ctx.NewFunction(nonRigid, 1)
	n1 := ctx.Term(ctx.NewName(rigid))
	n2 := ctx.Term(ctx.NewName(rigid))
	trueName := ctx.Term(ctx.NewName(nonRigid))

	v := ctx.Term(ctx.NewVariable(rigid))
	ctx.AddStatic(EwffTrue(), []Literal{ctx.Eq(ctx.Term(p, v), trueName)})
	ctx.ComputeHPlus([]Term{n1, n2}, nil)

	setup := ctx.InstantiateBAT(nil)
	// One ground clause per H+ name of rigid's sort (n1, n2, plus the
	// placeholder minted for v's sort).
	assert.Len(t, setup.Clauses(), len(ctx.HPlusNames(rigid)))
}

func TestInstantiateBATHonorsEwffGuard(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	p := ctx.NewFunction(nonRigid, 1)
	n1 := ctx.Term(ctx.NewName(rigid))
	n2 := ctx.Term(ctx.NewName(rigid))
	trueName := ctx.Term(ctx.NewName(nonRigid))

	v := ctx.Term(ctx.NewVariable(rigid))
	ctx.AddStatic(EwffEq(v, n1), []Literal{ctx.Eq(ctx.Term(p, v), trueName)})
	ctx.ComputeHPlus([]Term{n1, n2}, nil)

	setup := ctx.InstantiateBAT(nil)
	assert.Len(t, setup.Clauses(), 1, "the guard admits only the v=n1 substitution")
	assert.Equal(t, ctx.Eq(ctx.Term(p, n1), trueName), setup.Clauses()[0].mustBeUnit(ctx))
}

// mustBeUnit is a test-only convenience to fetch a unit clause's literal.
func (ref ClauseRef) mustBeUnit(ctx *Context) Literal {
	c := ctx.ClauseAt(ref)
	if !c.Unit() {
		panic("expected unit clause")
	}
	return c.At(0)
}

func TestInstantiateBATGroundsBoxedPerPrefix(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	p := ctx.NewFunction(nonRigid, 2) // fluent(seq, object) = value, action-sensitive
	n1 := ctx.Term(ctx.NewName(rigid))
	trueName := ctx.Term(ctx.NewName(nonRigid))
	action := ctx.Term(ctx.NewName(ctx.NewSort(true)))

	seqVar := ctx.Term(ctx.NewVariable(ctx.SequenceSort()))
	ctx.AddBoxed(EwffTrue(), []Literal{ctx.Eq(ctx.Term(p, seqVar, n1), trueName)})
	ctx.ComputeHPlus([]Term{n1}, nil)

	empty := ctx.SequenceName(nil)
	after := ctx.SequenceName([]Term{action})
	setup := ctx.InstantiateBAT([]Term{empty, after})
	assert.Len(t, setup.Clauses(), 2, "one ground clause per action-sequence prefix")
}
