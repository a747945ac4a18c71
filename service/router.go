package service

import (
	"strings"
)

// FallbackCollection is the last-resort target when no default collection
// is configured at all. The chat channel must always have somewhere to go.
const FallbackCollection = "documents"

const collectionDelimiter = "::"

// ResolveDefaultCollection turns the configured default-collection value
// into a usable one. Resolved once at startup; the result is injected into
// the chat handler and never changes after that.
func ResolveDefaultCollection(configured string) string {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return FallbackCollection
	}
	return configured
}

// Route decides which collection a free-text message targets and what the
// effective query text is. "sales::What is the price?" targets "sales";
// without the delimiter (or with an empty left side) the whole message goes
// to the default collection.
func Route(rawMessage, defaultCollection string) (collection, query string) {
	before, after, found := strings.Cut(rawMessage, collectionDelimiter)
	if found {
		name := strings.TrimSpace(before)
		if name != "" {
			return name, strings.TrimSpace(after)
		}
	}
	return defaultCollection, strings.TrimSpace(rawMessage)
}
