package flamegraph

import "strings"

const (
	memoPrefix = "Memo("
	memoSuffix = " (Memo)"

	anonymousName = "Anonymous"
	unknownName   = "Unknown"
)

// ResolveName strips a single memoization wrapper off a raw display label.
// It returns the base name and whether the label was wrapped.
func ResolveName(raw string) (string, bool) {
	if strings.HasPrefix(raw, memoPrefix) && strings.HasSuffix(raw, ")") && len(raw) > len(memoPrefix) {
		return raw[len(memoPrefix) : len(raw)-1], true
	}
	return raw, false
}

// CanonicalName is the join key between structural nodes and timing
// measurements. It must be applied to both sides of the match: a label
// "Memo(Foo)" and a structural node named "Memo(Foo)" both canonicalize to
// "Foo (Memo)", which never collides with a plain "Foo".
func CanonicalName(raw string) string {
	base, memoized := ResolveName(raw)
	if memoized {
		return base + memoSuffix
	}
	return base
}
