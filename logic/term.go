package logic

import (
	"github.com/pkg/errors"
)

// Term is an interned, content-addressed node f(t1,...,tn). Two
// syntactically identical terms share the same id, so term identity can be
// tested with ==. The low bit of the id is the "name bit": Term.IsName is
// a property of the id alone, requiring no dereference into the store.
type Term struct {
	id uint32
}

// Null is the zero Term, never returned by Context.Term.
var Null Term

func (t Term) IsNull() bool { return t.id == 0 }

// IsName reports whether t denotes a standard name: either a bare name
// symbol, or a function symbol applied to names, all into a rigid sort
// (name-ness propagates through rigid sorts, per the data model).
func (t Term) IsName() bool { return t.id&1 == 1 }

func (t Term) index() int { return int(t.id >> 1) }

type termData struct {
	symbol Symbol
	args   []Term
}

func (d *termData) equalKey(symbol Symbol, args []Term) bool {
	if d.symbol != symbol || len(d.args) != len(args) {
		return false
	}
	for i, a := range d.args {
		if a != args[i] {
			return false
		}
	}
	return true
}

// termStore interns Term nodes, keeping names and non-names in separate
// heaps exactly as original_source/src/limbo/term.h does, so the name bit
// can be folded into the id without a lookup.
type termStore struct {
	names    []termData
	others   []termData
	bySort   map[int32]map[termKey]Term
}

type termKey struct {
	symbol Symbol
	// args are hashed by content via a string built from their ids; see key().
	argKey string
}

func newTermStore() *termStore {
	return &termStore{bySort: make(map[int32]map[termKey]Term)}
}

func (ts *termStore) key(symbol Symbol, args []Term) termKey {
	buf := make([]byte, 0, 4+4*len(args))
	buf = appendU32(buf, uint32(symbol.id32()))
	for _, a := range args {
		buf = appendU32(buf, a.id)
	}
	return termKey{symbol: symbol, argKey: string(buf)}
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// intern returns the unique Term for (symbol, args), creating it if this is
// the first time this exact node has been built.
func (ts *termStore) intern(symbol Symbol, args []Term) (Term, error) {
	if symbol.Arity() != len(args) {
		return Null, errors.WithStack(&ContractViolation{
			Op:      "Term",
			Message: "argument count does not match symbol arity",
		})
	}
	for _, a := range args {
		if a.IsNull() {
			return Null, errors.WithStack(&ContractViolation{
				Op:      "Term",
				Message: "null argument",
			})
		}
	}
	k := ts.key(symbol, args)
	bucket, ok := ts.bySort[symbol.Sort().id32()]
	if !ok {
		bucket = make(map[termKey]Term)
		ts.bySort[symbol.Sort().id32()] = bucket
	}
	if t, ok := bucket[k]; ok {
		return t, nil
	}

	isName := symbol.IsName() || (symbol.Sort().Rigid() && symbol.IsFunction() && allNames(args))
	var id uint32
	if isName {
		ts.names = append(ts.names, termData{symbol: symbol, args: cloneArgs(args)})
		id = uint32(len(ts.names))<<1 | 1
	} else {
		ts.others = append(ts.others, termData{symbol: symbol, args: cloneArgs(args)})
		id = uint32(len(ts.others)) << 1
	}
	t := Term{id: id}
	bucket[k] = t
	return t, nil
}

func allNames(args []Term) bool {
	for _, a := range args {
		if !a.IsName() {
			return false
		}
	}
	return true
}

func cloneArgs(args []Term) []Term {
	if len(args) == 0 {
		return nil
	}
	out := make([]Term, len(args))
	copy(out, args)
	return out
}

func (ts *termStore) data(t Term) *termData {
	if t.IsName() {
		return &ts.names[t.index()-1]
	}
	return &ts.others[t.index()-1]
}

// Symbol returns the head symbol of a term built by this context.
func (ctx *Context) Symbol(t Term) Symbol { return ctx.terms.data(t).symbol }

// Args returns the argument terms of a term built by this context.
func (ctx *Context) Args(t Term) []Term { return ctx.terms.data(t).args }

// Sort returns the sort of t, i.e. the sort of its head symbol.
func (ctx *Context) Sort(t Term) Sort { return ctx.terms.data(t).symbol.Sort() }

// IsGround reports whether t mentions no variables.
func (ctx *Context) IsGround(t Term) bool {
	d := ctx.terms.data(t)
	if d.symbol.IsVariable() {
		return false
	}
	if t.IsName() {
		return true
	}
	for _, a := range d.args {
		if !ctx.IsGround(a) {
			return false
		}
	}
	return true
}

// Substitute applies theta, a partial map keyed by variable Symbol id, to
// t, rebuilding function applications bottom-up only where something
// beneath them changed.
func (ctx *Context) Substitute(t Term, theta map[int32]Term) Term {
	d := ctx.terms.data(t)
	if d.symbol.IsVariable() {
		if sub, ok := theta[d.symbol.id32()]; ok {
			return sub
		}
		return t
	}
	if len(d.args) == 0 {
		return t
	}
	changed := false
	newArgs := make([]Term, len(d.args))
	for i, a := range d.args {
		newArgs[i] = ctx.Substitute(a, theta)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	nt, err := ctx.terms.intern(d.symbol, newArgs)
	if err != nil {
		panic(err)
	}
	return nt
}

// SubstituteOne substitutes every occurrence of the variable v in t with
// replacement. It is a convenience wrapper around Substitute for the
// single-variable case, for callers outside this package that cannot
// build a theta map keyed by symbol id directly.
func (ctx *Context) SubstituteOne(t Term, v Term, replacement Term) Term {
	return ctx.Substitute(t, map[int32]Term{ctx.Symbol(v).id32(): replacement})
}

// IsFunctionHeaded reports whether t's head symbol is a function symbol,
// regardless of whether t itself is a name by rigid-sort propagation.
func (ctx *Context) IsFunctionHeaded(t Term) bool {
	return ctx.terms.data(t).symbol.IsFunction()
}

// IsQuasiName reports whether t behaves like a name for the purposes of
// literal canonicalization: either its head isn't a function, or its sort
// is rigid and none of its direct arguments is function-headed.
func (ctx *Context) IsQuasiName(t Term) bool {
	d := ctx.terms.data(t)
	if !d.symbol.IsFunction() {
		return true
	}
	if !d.symbol.Sort().Rigid() {
		return false
	}
	for _, a := range d.args {
		if ctx.IsFunctionHeaded(a) {
			return false
		}
	}
	return true
}

// IsPrimitive reports whether t is a function applied to names into a
// non-rigid sort.
func (ctx *Context) IsPrimitive(t Term) bool {
	d := ctx.terms.data(t)
	if !d.symbol.IsFunction() || d.symbol.Sort().Rigid() {
		return false
	}
	for _, a := range d.args {
		if !a.IsName() {
			return false
		}
	}
	return true
}

// IsQuasiPrimitive reports whether t is a function applied to quasi-names
// into a non-rigid sort.
func (ctx *Context) IsQuasiPrimitive(t Term) bool {
	d := ctx.terms.data(t)
	if !d.symbol.IsFunction() || d.symbol.Sort().Rigid() {
		return false
	}
	for _, a := range d.args {
		if !ctx.IsQuasiName(a) {
			return false
		}
	}
	return true
}

// Mentions reports whether t contains the term u, itself included.
func (ctx *Context) Mentions(t, u Term) bool {
	if t == u {
		return true
	}
	for _, a := range ctx.Args(t) {
		if ctx.Mentions(a, u) {
			return true
		}
	}
	return false
}
