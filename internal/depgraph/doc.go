// Package depgraph turns the source tree's rigid require convention into a
// dependency graph and a deterministic dependency-first ordering. Every
// structural check is a hard assertion: the first violation aborts the
// build with a typed error carrying the file and the offending construct.
package depgraph
