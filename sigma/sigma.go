// Package sigma declares the wildcard-SSE (σ) capability that Libertas
// wraps (spec.md §6.1, design note "σ as a pluggable strategy"). Any
// scheme that can hand out add/search tokens over an opaque document
// identifier and answer searches against them can stand in for ZN here;
// Libertas never inspects σ's internals.
package sigma

// Client is the client half of a wildcard-SSE scheme. AddToken's ind
// parameter is deliberately typed as []byte rather than int: Libertas
// smuggles an encrypted update record through this slot (spec.md design
// note "update records carried inside σ's document identifier slot"),
// so σ must stay agnostic to what ind actually contains.
type Client[AddToken any, SrchToken any] interface {
	Setup(securityParameter int) error
	SrchToken(q string) (SrchToken, error)
	AddToken(ind []byte, w string) (AddToken, error)
}

// Server is the server half of a wildcard-SSE scheme.
type Server[AddToken any, SrchToken any] interface {
	BuildIndex()
	Add(tok AddToken)
	Search(tok SrchToken) ([][]byte, error)
}

// Remover is an optional σ capability: a server that can drop index
// entries by their document identifier. Libertas+'s clean-up search
// (spec.md §4.8) uses it to shrink the index after reconciling
// add/del records; a σ that never implements it simply cannot host
// Libertas+, only base Libertas.
type Remover interface {
	Remove(ind [][]byte)
}
