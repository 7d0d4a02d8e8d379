package formula

import (
	"go.uber.org/zap"

	"github.com/go-limbo/limbo/logic"
)

// ActionPrefixes extracts Z (§4.5b): the set of action-sequence-name
// terms mentioned by any literal of the ENNF'd formula f, always
// including the name for the empty sequence.
func ActionPrefixes(ctx *logic.Context, f Formula) []logic.Term {
	seen := map[logic.Term]bool{ctx.SequenceName(nil): true}
	out := []logic.Term{ctx.SequenceName(nil)}
	var walk func(Formula)
	walk = func(g Formula) {
		switch v := g.(type) {
		case atom:
			for _, l := range v.lits {
				if name, ok := ctx.ActionPrefixNameOf(l); ok && !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		case notF:
			walk(v.f)
		case orNode:
			for _, s := range v.subs {
				walk(s)
			}
		case andNode:
			for _, s := range v.subs {
				walk(s)
			}
		case existsNode:
			walk(v.body)
		case forallNode:
			walk(v.body)
		case boxNode:
			walk(v.body)
		}
	}
	walk(f)
	return out
}

// groundQuantifiers eliminates Exists/Forall by substituting the bound
// variable with every name of its sort in H+, combining the results with
// Or (Exists) or And (Forall). ComputeHPlus must already have run.
func groundQuantifiers(ctx *logic.Context, f Formula) Formula {
	switch v := f.(type) {
	case atom:
		return v
	case notF:
		return notF{f: groundQuantifiers(ctx, v.f)}
	case orNode:
		subs := make([]Formula, len(v.subs))
		for i, s := range v.subs {
			subs[i] = groundQuantifiers(ctx, s)
		}
		return orNode{subs: subs}
	case andNode:
		subs := make([]Formula, len(v.subs))
		for i, s := range v.subs {
			subs[i] = groundQuantifiers(ctx, s)
		}
		return andNode{subs: subs}
	case existsNode:
		names := ctx.HPlusNames(ctx.Sort(v.v))
		subs := make([]Formula, len(names))
		for i, n := range names {
			subs[i] = groundQuantifiers(ctx, v.body.substitute(ctx, v.v, n))
		}
		return orNode{subs: subs}
	case forallNode:
		names := ctx.HPlusNames(ctx.Sort(v.v))
		subs := make([]Formula, len(names))
		for i, n := range names {
			subs[i] = groundQuantifiers(ctx, v.body.substitute(ctx, v.v, n))
		}
		return andNode{subs: subs}
	default:
		panic("formula: unexpected node during quantifier grounding")
	}
}

// cnfRec converts a quantifier-free, ennf'd formula to CNF by the
// standard distributive law. There are no Tseitin variables: the formulas
// are expected to be small once grounded.
func cnfRec(f Formula) [][]logic.Literal {
	switch v := f.(type) {
	case constF:
		if v.val {
			return nil // no clauses: vacuously satisfied, the ∧-identity
		}
		return [][]logic.Literal{{}} // one empty clause: always false
	case atom:
		return [][]logic.Literal{append([]logic.Literal{}, v.lits...)}
	case andNode:
		var res [][]logic.Literal
		for _, s := range v.subs {
			res = append(res, cnfRec(s)...)
		}
		return res
	case orNode:
		acc := [][]logic.Literal{{}}
		for _, s := range v.subs {
			subCNF := cnfRec(s)
			next := make([][]logic.Literal, 0, len(acc)*len(subCNF))
			for _, accClause := range acc {
				for _, subClause := range subCNF {
					merged := append(append([]logic.Literal{}, accClause...), subClause...)
					next = append(next, merged)
				}
			}
			acc = next
		}
		return acc
	case notF:
		panic("formula: Not survived ennf; cnf requires a negation-free tree")
	default:
		panic("formula: unexpected node during cnf conversion")
	}
}

// Ground runs grounding phase (d) in full: ENNF conversion (negation and
// action pushing), quantifier expansion over H+, constant-folding of
// ground-valid/unsatisfiable literals, and CNF conversion. ComputeHPlus
// must already have run (typically via Collect + ctx.ComputeHPlus).
func Ground(ctx *logic.Context, f Formula) [][]logic.Literal {
	e := f.ennf(ctx, nil)
	g := groundQuantifiers(ctx, e)
	g = foldConstants(ctx, g)
	cnf := cnfRec(g)
	ctx.Logger().Debug("grounded query", zap.Int("query_cnf_clauses", len(cnf)))
	return cnf
}

// Decide runs the whole pipeline end to end: it collects the names and
// variable sorts query mentions, computes H+, grounds the BAT over the
// query's action-prefix set Z, grounds and CNF-converts query, and
// decides setup ⊨_k query. It is the one-shot convenience entry point,
// analogous to a SAT library's top-level Solve.
func Decide(ctx *logic.Context, query Formula, k int, consistencyGuarantee bool) bool {
	names, sorts := Collect(ctx, query)
	ctx.ComputeHPlus(names, sorts)
	ennfQuery := query.ennf(ctx, nil)
	z := ActionPrefixes(ctx, ennfQuery)
	setup := ctx.InstantiateBAT(z)
	setup.PropagateUnits()
	cnf := cnfRec(foldConstants(ctx, groundQuantifiers(ctx, ennfQuery)))
	if !ctx.Consistent(setup, k, consistencyGuarantee) {
		ctx.Logger().Debug("decided", zap.Int("k", k), zap.Int("cnf_clauses", len(cnf)), zap.Bool("verdict", true))
		return true // ex falso quodlibet: an inconsistent setup entails everything
	}
	verdict := ctx.Entails(setup, cnf, k)
	ctx.Logger().Debug("decided", zap.Int("k", k), zap.Int("cnf_clauses", len(cnf)), zap.Bool("verdict", verdict))
	return verdict
}

// DecideComplete decides setup ⊨_k query through its complement (§4.6):
// it reports whether setup ∪ ¬query is found inconsistent at k. The check
// is ConsistentAt's k-bounded split procedure, so a true verdict is sound
// and a false verdict only means no inconsistency was found within k
// splits; it is not complete at finite k.
func DecideComplete(ctx *logic.Context, query Formula, k int) bool {
	negated := Not(query)
	names, sorts := Collect(ctx, negated)
	ctx.ComputeHPlus(names, sorts)
	ennfNeg := negated.ennf(ctx, nil)
	z := ActionPrefixes(ctx, ennfNeg)
	setup := ctx.InstantiateBAT(z)
	setup.PropagateUnits()
	negatedCNF := cnfRec(foldConstants(ctx, groundQuantifiers(ctx, ennfNeg)))
	verdict := ctx.EntailsComplete(setup, negatedCNF, k)
	ctx.Logger().Debug("decided complete", zap.Int("k", k), zap.Int("cnf_clauses", len(negatedCNF)), zap.Bool("verdict", verdict))
	return verdict
}

// Consistent decides consistent(k, query) (§6): whether the BAT setup
// remains consistent at effort k once query is hypothetically added to it.
func Consistent(ctx *logic.Context, query Formula, k int) bool {
	names, sorts := Collect(ctx, query)
	ctx.ComputeHPlus(names, sorts)
	ennfQuery := query.ennf(ctx, nil)
	z := ActionPrefixes(ctx, ennfQuery)
	base := ctx.InstantiateBAT(z)
	base.PropagateUnits()
	cnf := cnfRec(foldConstants(ctx, groundQuantifiers(ctx, ennfQuery)))
	scratch := ctx.WithAssumptions(base, cnf)
	verdict := ctx.ConsistentAt(scratch, k, false)
	ctx.Logger().Debug("consistent", zap.Int("k", k), zap.Int("cnf_clauses", len(cnf)), zap.Bool("verdict", verdict))
	return verdict
}
