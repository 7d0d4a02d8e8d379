package formula

import "github.com/go-limbo/limbo/logic"

// constF is the formula-level True/False produced by constant-folding
// (§4.5d): once quantifiers are grounded, a literal like n=n' between two
// concrete names is either valid or unsatisfiable regardless of the setup,
// and that verdict must propagate through ∧/∨ before CNF conversion.
type constF struct{ val bool }

func (c constF) ennf(ctx *logic.Context, prefix []logic.Term) Formula { return c }
func (c constF) collectInto(ctx *logic.Context, addName func(logic.Term), addVarSort func(logic.Sort)) {
}
func (c constF) substitute(ctx *logic.Context, v, replacement logic.Term) Formula { return c }
func (c constF) String() string {
	if c.val {
		return "⊤"
	}
	return "⊥"
}

// foldConstants simplifies a quantifier-free, ennf'd formula by evaluating
// every ground-valid or ground-unsatisfiable literal and propagating the
// result through ∧/∨, possibly collapsing the whole formula to a constant.
// f must already be free of Not/Exists/Forall/Box (i.e. the output of ennf
// followed by groundQuantifiers).
func foldConstants(ctx *logic.Context, f Formula) Formula {
	switch v := f.(type) {
	case atom:
		kept := make([]logic.Literal, 0, len(v.lits))
		for _, l := range v.lits {
			if ctx.Valid(l) {
				return constF{val: true}
			}
			if ctx.Unsatisfiable(l) {
				continue
			}
			kept = append(kept, l)
		}
		if len(kept) == 0 {
			return constF{val: false}
		}
		return atom{lits: kept}
	case andNode:
		subs := make([]Formula, 0, len(v.subs))
		for _, s := range v.subs {
			folded := foldConstants(ctx, s)
			if c, ok := folded.(constF); ok {
				if !c.val {
					return constF{val: false}
				}
				continue
			}
			subs = append(subs, folded)
		}
		switch len(subs) {
		case 0:
			return constF{val: true}
		case 1:
			return subs[0]
		default:
			return andNode{subs: subs}
		}
	case orNode:
		subs := make([]Formula, 0, len(v.subs))
		for _, s := range v.subs {
			folded := foldConstants(ctx, s)
			if c, ok := folded.(constF); ok {
				if c.val {
					return constF{val: true}
				}
				continue
			}
			subs = append(subs, folded)
		}
		switch len(subs) {
		case 0:
			return constF{val: false}
		case 1:
			return subs[0]
		default:
			return orNode{subs: subs}
		}
	default:
		return f
	}
}
