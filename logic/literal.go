package logic

// Literal is a packed triple (sign, lhs, rhs) with sign in {=, !=}. The
// 64-bit layout mirrors the data model's packed encoding: bit 63 is the
// sign, bits 32-62 hold rhs's id (31 bits), bits 0-31 hold lhs's id.
type Literal struct {
	data uint64
}

const (
	litSignBit = uint64(1) << 63
	litRhsMask = uint64(0x7fffffff) << 32
	litLhsMask = uint64(0xffffffff)
)

// NullLiteral is the zero Literal, never produced by Eq/Neq.
var NullLiteral Literal

func (l Literal) IsNull() bool { return l.data == 0 }

// Pos reports whether l is an equality (as opposed to a disequality).
func (l Literal) Pos() bool { return l.data&litSignBit != 0 }

// Lhs returns l's left-hand side term.
func (l Literal) Lhs() Term { return Term{id: uint32(l.data & litLhsMask)} }

// Rhs returns l's right-hand side term.
func (l Literal) Rhs() Term { return Term{id: uint32((l.data & litRhsMask) >> 32)} }

func pack(pos bool, lhs, rhs Term) Literal {
	d := uint64(lhs.id) | (uint64(rhs.id)<<32)&litRhsMask
	if pos {
		d |= litSignBit
	}
	return Literal{data: d}
}

// canonicalSides reorders (lhs, rhs) per the canonical form in the data
// model: if neither side is a function application, the smaller id is
// lhs; if exactly one side is, the function side is lhs; if both are,
// sides are first ordered by id (smaller id tentatively lhs), then
// swapped if the larger-id side is quasi-primitive, so a quasi-primitive
// side always ends up as lhs over a non-quasi-primitive one regardless of
// id, matching the original constructor's sort-then-swap order.
func (ctx *Context) canonicalSides(lhs, rhs Term) (Term, Term) {
	lhsFn := ctx.IsFunctionHeaded(lhs)
	rhsFn := ctx.IsFunctionHeaded(rhs)
	switch {
	case !lhsFn && !rhsFn:
		if rhs.id < lhs.id {
			return rhs, lhs
		}
		return lhs, rhs
	case lhsFn != rhsFn:
		if rhsFn {
			return rhs, lhs
		}
		return lhs, rhs
	default:
		small, big := lhs, rhs
		if big.id < small.id {
			small, big = big, small
		}
		if ctx.IsQuasiPrimitive(big) {
			return big, small
		}
		return small, big
	}
}

// Eq builds the literal lhs = rhs, in canonical form.
func (ctx *Context) Eq(lhs, rhs Term) Literal {
	lhs, rhs = ctx.canonicalSides(lhs, rhs)
	return pack(true, lhs, rhs)
}

// Neq builds the literal lhs != rhs, in canonical form.
func (ctx *Context) Neq(lhs, rhs Term) Literal {
	lhs, rhs = ctx.canonicalSides(lhs, rhs)
	return pack(false, lhs, rhs)
}

// SubstituteLiteralOne substitutes every occurrence of the variable v in
// l's sides with replacement, rebuilding l in canonical form.
func (ctx *Context) SubstituteLiteralOne(l Literal, v Term, replacement Term) Literal {
	lhs := ctx.SubstituteOne(l.Lhs(), v, replacement)
	rhs := ctx.SubstituteOne(l.Rhs(), v, replacement)
	if l.Pos() {
		return ctx.Eq(lhs, rhs)
	}
	return ctx.Neq(lhs, rhs)
}

// Flip toggles l's sign, leaving its sides untouched.
func (l Literal) Flip() Literal { return Literal{data: l.data ^ litSignBit} }

// Dual swaps l's sides, leaving its sign untouched. The result is not
// necessarily in canonical form.
func (l Literal) Dual() Literal {
	return pack(l.Pos(), l.Rhs(), l.Lhs())
}

// LiteralIsGround reports whether both sides of l mention no variables.
func (ctx *Context) LiteralIsGround(l Literal) bool {
	return ctx.IsGround(l.Lhs()) && ctx.IsGround(l.Rhs())
}

// IsPrimitiveLiteral reports whether l is a primitive literal: a non-rigid,
// function-applied-to-names term on the left and a name on the right.
func (ctx *Context) IsPrimitiveLiteral(l Literal) bool {
	return ctx.IsPrimitive(l.Lhs()) && l.Rhs().IsName()
}

// IsQuasiPrimitiveLiteral reports the quasi-primitive relaxation of
// IsPrimitiveLiteral, used while the grounder still has variables around.
func (ctx *Context) IsQuasiPrimitiveLiteral(l Literal) bool {
	return ctx.IsQuasiPrimitive(l.Lhs()) && ctx.IsQuasiName(l.Rhs())
}

// Valid reports whether l is a tautology: (t=t), or (n1!=n2) for distinct
// names, or a disequality across sorts.
func (ctx *Context) Valid(l Literal) bool {
	if l.Pos() {
		return l.Lhs() == l.Rhs()
	}
	lhs, rhs := l.Lhs(), l.Rhs()
	if lhs.IsName() && rhs.IsName() && lhs != rhs {
		return true
	}
	return ctx.Sort(lhs) != ctx.Sort(rhs)
}

// Unsatisfiable reports whether l is a contradiction: (t!=t), or (n1=n2)
// for distinct names, or an equality across sorts.
func (ctx *Context) Unsatisfiable(l Literal) bool {
	if !l.Pos() {
		return l.Lhs() == l.Rhs()
	}
	lhs, rhs := l.Lhs(), l.Rhs()
	if lhs.IsName() && rhs.IsName() && lhs != rhs {
		return true
	}
	return ctx.Sort(lhs) != ctx.Sort(rhs)
}

// ValidPair reports Valid(a, b) for primitive a, b: holds when a and b are
// the same equation with opposite signs, or both are disequalities to
// distinct names on an identical left-hand side.
func ValidPair(a, b Literal) bool {
	if a.Lhs() == b.Lhs() && a.Pos() != b.Pos() && a.Rhs() == b.Rhs() {
		return true
	}
	return a.Lhs() == b.Lhs() && !a.Pos() && !b.Pos() &&
		a.Rhs().IsName() && b.Rhs().IsName() && a.Rhs() != b.Rhs()
}

// Complementary reports whether a and b cannot both hold: opposite signs
// on an identical equation, or both positive with distinct names on an
// identical left-hand side.
func Complementary(a, b Literal) bool {
	if a.Lhs() == b.Lhs() && a.Pos() != b.Pos() && a.Rhs() == b.Rhs() {
		return true
	}
	return a.Lhs() == b.Lhs() && a.Pos() && b.Pos() &&
		a.Rhs().IsName() && b.Rhs().IsName() && a.Rhs() != b.Rhs()
}

// ProperlySubsumes reports whether a is (t=n) and b is (t!=n') for
// distinct names n, n'.
func ProperlySubsumes(a, b Literal) bool {
	return a.Lhs() == b.Lhs() && a.Pos() && !b.Pos() &&
		a.Rhs().IsName() && b.Rhs().IsName() && a.Rhs() != b.Rhs()
}

// Subsumes reports whether a subsumes b: a == b, or a properly subsumes b.
func Subsumes(a, b Literal) bool {
	return a == b || ProperlySubsumes(a, b)
}

// UnifyConfig selects which sides of a unification may bind a variable,
// and whether an occurs-check is performed.
type UnifyConfig struct {
	UnifyLeft   bool
	UnifyRight  bool
	OccursCheck bool
}

// DefaultUnifyConfig allows binding on either side, without an occurs
// check (matching the original's kDefaultConfig = kUnifyTwoWay).
var DefaultUnifyConfig = UnifyConfig{UnifyLeft: true, UnifyRight: true}

// Substitution is a partial variable-to-term map built up during
// unification, keyed by variable symbol id.
type Substitution map[int32]Term

// Unify attempts to unify l and r under cfg, extending sub in place.
func (ctx *Context) Unify(cfg UnifyConfig, l, r Term, sub Substitution) bool {
	if l == r {
		return true
	}
	if cfg.UnifyLeft && ctx.Symbol(l).IsVariable() {
		if s, ok := sub[ctx.Symbol(l).id32()]; ok {
			l = s
		}
	}
	if cfg.UnifyRight && ctx.Symbol(r).IsVariable() {
		if s, ok := sub[ctx.Symbol(r).id32()]; ok {
			r = s
		}
	}
	if l == r {
		return true
	}
	if ctx.Sort(l) != ctx.Sort(r) {
		return false
	}
	ls, rs := ctx.Symbol(l), ctx.Symbol(r)
	if ls == rs {
		la, ra := ctx.Args(l), ctx.Args(r)
		for i := range la {
			if !ctx.Unify(cfg, la[i], ra[i], sub) {
				return false
			}
		}
		return true
	}
	if ls.IsVariable() && cfg.UnifyLeft {
		if existing, ok := sub[ls.id32()]; !ok {
			if cfg.OccursCheck && ctx.Mentions(r, l) {
				return false
			}
			sub[ls.id32()] = r
			return true
		} else {
			return existing == r
		}
	}
	if rs.IsVariable() && cfg.UnifyRight {
		if existing, ok := sub[rs.id32()]; !ok {
			if cfg.OccursCheck && ctx.Mentions(l, r) {
				return false
			}
			sub[rs.id32()] = l
			return true
		} else {
			return existing == l
		}
	}
	return false
}

// UnifyLiterals attempts to unify both sides of a and b under cfg.
func (ctx *Context) UnifyLiterals(cfg UnifyConfig, a, b Literal, sub Substitution) bool {
	return ctx.Unify(cfg, a.Lhs(), b.Lhs(), sub) && ctx.Unify(cfg, a.Rhs(), b.Rhs(), sub)
}
