// Package repgen selects and queries representative genomes from
// large genome collections.
//
// Genomes are compared through a cheap proxy: the set of K-mers in a
// single universally-conserved seed protein. An index keeps one
// genome out of every group whose seed proteins share at least a
// threshold number of K-mers, so downstream processing can run on a
// small, pairwise-dissimilar subset of the collection. The index
// answers nearest-representative queries for new proteins and can be
// saved to and restored from a single file.
package repgen
