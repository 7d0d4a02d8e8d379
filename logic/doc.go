/*
Package logic implements the term, literal, clause and setup layer of a
bounded-effort decision procedure for a first-order epistemic logic with
equality and actions, together with the grounder and entailment engine
built on top of it.

A Context owns the symbol and term tables, the clause arena and the
ground setup for one reasoning problem. Contexts are not safe for
concurrent use, also after grounding: the entailment operations allocate
clauses and intern terms in the Context they run against (see
Context.Entails).
*/
package logic
