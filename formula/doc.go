// Package formula implements the query language built on top of package
// logic: a small formula tree (Atom/Not/Or/Exists/Box, with And and Forall
// as De Morgan sugar) and its conversion to a ground CNF the entailment
// engine can decide.
package formula
