package model

// OrderPair returns the two user identifiers in their canonical order.
// The order is plain byte-wise string comparison, so OrderPair(a, b) and
// OrderPair(b, a) always agree.
func OrderPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairKey derives the order-independent cache key for a pair of users.
// Identifiers are UUIDs, so the underscore separator cannot collide.
func PairKey(a, b string) string {
	first, second := OrderPair(a, b)
	return first + "_" + second
}
