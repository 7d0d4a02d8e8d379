package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermInterning(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(true)
	n1 := ctx.Term(ctx.NewName(sort))
	f := ctx.NewFunction(sort, 1)

	a := ctx.Term(f, n1)
	b := ctx.Term(f, n1)
	assert.Equal(t, a, b, "identical applications must intern to the same term")
}

func TestTermDistinctNamesDistinctTerms(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(true)
	n1 := ctx.Term(ctx.NewName(sort))
	n2 := ctx.Term(ctx.NewName(sort))
	assert.NotEqual(t, n1, n2)
}

func TestTermArityMismatchPanics(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(true)
	f := ctx.NewFunction(sort, 2)
	n1 := ctx.Term(ctx.NewName(sort))
	assert.Panics(t, func() { ctx.Term(f, n1) })
}

func TestTermNullArgumentPanics(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(true)
	f := ctx.NewFunction(sort, 1)
	assert.Panics(t, func() { ctx.Term(f, Null) })
}

func TestRigidFunctionApplicationIsName(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	n1 := ctx.Term(ctx.NewName(rigid))
	f := ctx.NewFunction(rigid, 1)
	app := ctx.Term(f, n1)
	assert.True(t, app.IsName(), "a function applied to names into a rigid sort is itself a name")
}

func TestNonRigidFunctionApplicationIsNotName(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	nonRigid := ctx.NewSort(false)
	n1 := ctx.Term(ctx.NewName(rigid))
	f := ctx.NewFunction(nonRigid, 1)
	app := ctx.Term(f, n1)
	assert.False(t, app.IsName())
}

func TestNewFunctionRejectsRigidArityZero(t *testing.T) {
	ctx := NewContext()
	rigid := ctx.NewSort(true)
	assert.Panics(t, func() { ctx.NewFunction(rigid, 0) })
}

func TestIsGround(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(false)
	f := ctx.NewFunction(sort, 1)
	n1 := ctx.Term(ctx.NewName(sort))
	v := ctx.Term(ctx.NewVariable(sort))

	assert.True(t, ctx.IsGround(ctx.Term(f, n1)))
	assert.False(t, ctx.IsGround(ctx.Term(f, v)))
}

func TestSubstitute(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(false)
	f := ctx.NewFunction(sort, 1)
	n1 := ctx.Term(ctx.NewName(sort))
	v := ctx.NewVariable(sort)
	vt := ctx.Term(v)

	app := ctx.Term(f, vt)
	got := ctx.Substitute(app, map[int32]Term{v.id32(): n1})
	assert.Equal(t, ctx.Term(f, n1), got)
}

func TestSubstituteOne(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(false)
	f := ctx.NewFunction(sort, 1)
	n1 := ctx.Term(ctx.NewName(sort))
	v := ctx.Term(ctx.NewVariable(sort))

	app := ctx.Term(f, v)
	got := ctx.SubstituteOne(app, v, n1)
	assert.Equal(t, ctx.Term(f, n1), got)
}

func TestMentions(t *testing.T) {
	ctx := NewContext()
	sort := ctx.NewSort(false)
	f := ctx.NewFunction(sort, 1)
	n1 := ctx.Term(ctx.NewName(sort))
	app := ctx.Term(f, n1)

	assert.True(t, ctx.Mentions(app, n1))
	assert.True(t, ctx.Mentions(app, app))
	assert.False(t, ctx.Mentions(n1, app))
}
