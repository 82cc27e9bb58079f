package connector

// Cardinality is how many entities a request selector targets. It is a pure
// function of the request, and the matching response shape follows from it
// alone; callers never have to inspect a response to learn its shape.
type Cardinality string

const (
	CardinalityNone = Cardinality("NONE")
	CardinalityOne  = Cardinality("ONE")
	CardinalityMany = Cardinality("MANY")
)

// ResponseKind tags which variant of a polymorphic response is populated.
type ResponseKind string

const (
	ResponseSingle = ResponseKind("SINGLE") // one entity
	ResponseFlat   = ResponseKind("FLAT")   // identity -> entity
	ResponseNested = ResponseKind("NESTED") // market name -> identity -> entity
)

// KindFor maps a selector cardinality to the response shape of a flat family
// (markets, order books, tickers). grouped families (orders, open orders,
// filled orders) nest one level deeper, but only for the selector-less flavor;
// a plural id selector still answers flat, keyed by the requested identities.
func KindFor(c Cardinality, grouped bool) ResponseKind {
	if c == CardinalityOne {
		return ResponseSingle
	}
	if grouped && c == CardinalityNone {
		return ResponseNested
	}
	return ResponseFlat
}

// SweepKindFor maps a market-selector cardinality for the open-order sweep
// family: a single market still fells many orders, so the singular flavor
// answers with the flat identity mapping rather than one entity.
func SweepKindFor(c Cardinality) ResponseKind {
	if c == CardinalityOne {
		return ResponseFlat
	}
	return ResponseNested
}
