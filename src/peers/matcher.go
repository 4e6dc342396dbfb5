package peers

import "strings"

// DefaultPrefix is the id prefix of network nodes under Maelstrom.
const DefaultPrefix = "n"

// Matcher decides whether a sender id belongs to a network peer.
type Matcher interface {
	IsPeer(id string) bool
}

// PrefixMatcher recognises peers by a fixed id prefix followed by at least one
// more character.
type PrefixMatcher struct {
	Prefix string
}

// NewPrefixMatcher returns a PrefixMatcher for prefix, falling back to
// DefaultPrefix when prefix is empty.
func NewPrefixMatcher(prefix string) PrefixMatcher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return PrefixMatcher{Prefix: prefix}
}

// IsPeer implements the Matcher interface.
func (m PrefixMatcher) IsPeer(id string) bool {
	return len(id) > len(m.Prefix) && strings.HasPrefix(id, m.Prefix)
}
