package service

import (
	"pdfrag/types"
)

// NoMatchReply is what chat callers see when nothing clears the search.
// It only stands in for an empty result; provider and store failures are
// surfaced as errors, never silently rendered as this text.
const NoMatchReply = "No matching answer found."

// Reduce narrows a ranked result list to the single best chunk's text,
// verbatim, with no ranking metadata around it.
func Reduce(hits []types.SearchHit) string {
	if len(hits) == 0 {
		return NoMatchReply
	}
	return hits[0].Text
}
