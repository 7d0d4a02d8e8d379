package logic

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Context is a unit of mutable reasoning state: the symbol and sort
// registries, the term store, the clause arena, the ground Setup built by
// the grounder, and the schematic BAT clauses the grounder instantiates.
// A Context must not be used from more than one goroutine at a time, also
// after grounding: Entails, Consistent and EntailsComplete allocate clauses
// in the arena, may intern new terms and names, and update a Setup's
// cached consistency verdicts.
type Context struct {
	id uuid.UUID
	log *zap.Logger

	nextSort     int32
	nextSymbol   int32
	terms        *termStore
	clauseArena  *clauseArena

	statics []univClause
	boxed   []boxUnivClause

	setup *Setup

	hplus       []Term // set by ComputeHPlus
	hplusBySort map[int32][]Term
	grounded    bool

	seqSort   *Sort
	seqByKey  map[string]Term
	seqOfName map[uint32][]Term

	boolSort  *Sort
	trueTerm  Term
	falseTerm Term
	sfSymbol  *Symbol
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.log = l }
}

// NewContext allocates a fresh, empty reasoning context.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		id:          uuid.New(),
		log:         zap.NewNop(),
		terms:       newTermStore(),
		clauseArena: newClauseArena(),
		hplusBySort: make(map[int32][]Term),
	}
	for _, o := range opts {
		o(ctx)
	}
	ctx.log = ctx.log.With(zap.String("ctx", ctx.id.String()))
	ctx.setup = newSetup(ctx)
	return ctx
}

// ID returns the context's unique identifier, used to tag log lines.
func (ctx *Context) ID() uuid.UUID { return ctx.id }

// Logger returns the context's structured logger, already tagged with
// its id, for callers outside this package (e.g. the formula package's
// top-level entry points) that need to log against the same context.
func (ctx *Context) Logger() *zap.Logger { return ctx.log }

// NewSort allocates a fresh sort. A rigid sort denotes a finite enumerated
// domain: every ground term of that sort is a name.
func (ctx *Context) NewSort(rigid bool) Sort {
	s := newSort(ctx.nextSort, rigid)
	ctx.nextSort++
	return s
}

// NewName allocates a fresh name symbol of the given sort.
func (ctx *Context) NewName(sort Sort) Symbol {
	ctx.nextSymbol++
	return Symbol{id: ctx.nextSymbol, kind: NameKind, sort: sort, arity: 0}
}

// NewVariable allocates a fresh variable symbol of the given sort.
func (ctx *Context) NewVariable(sort Sort) Symbol {
	ctx.nextSymbol++
	return Symbol{id: ctx.nextSymbol, kind: VariableKind, sort: sort, arity: 0}
}

// NewFunction allocates a fresh function symbol. A rigid-sorted function
// symbol of arity 0 is disallowed: such a symbol would be indistinguishable
// from a name but could not be enumerated as part of H+.
func (ctx *Context) NewFunction(sort Sort, arity int) Symbol {
	if arity == 0 && sort.Rigid() {
		panic(errors.WithStack(&ContractViolation{
			Op:      "NewFunction",
			Message: "rigid-sorted function symbol of arity 0 is disallowed",
		}))
	}
	ctx.nextSymbol++
	return Symbol{id: ctx.nextSymbol, kind: FunctionKind, sort: sort, arity: int8(arity)}
}

// Term interns symbol(args...), returning the unique Term id for that node.
// It panics with a *ContractViolation if the argument count does not match
// symbol's arity or any argument is the null Term.
func (ctx *Context) Term(symbol Symbol, args ...Term) Term {
	t, err := ctx.terms.intern(symbol, args)
	if err != nil {
		panic(err)
	}
	return t
}
