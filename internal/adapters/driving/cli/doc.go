// Package cli implements the originality command-line interface.
//
// Commands compose the audit pipeline from a filesystem corpus, the
// durable chunk cache and a configured embedding provider. The cache
// is never load-bearing: when it cannot be opened the run continues
// in memory and recomputes everything.
package cli
