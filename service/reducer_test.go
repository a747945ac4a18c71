package service

import (
	"testing"

	"pdfrag/types"
)

func TestReduceEmptyResultGivesSentinel(t *testing.T) {
	got := Reduce(nil)
	if got != NoMatchReply {
		t.Errorf("Expected sentinel %q, got %q", NoMatchReply, got)
	}
	if got == "" {
		t.Error("Sentinel must never be empty")
	}
}

func TestReduceReturnsTopHitVerbatim(t *testing.T) {
	hits := []types.SearchHit{
		{Text: "What is X?\nX is Y.", Score: 0.9},
		{Text: "What is Z?\nZ is W.", Score: 0.5},
	}

	got := Reduce(hits)
	if got != "What is X?\nX is Y." {
		t.Errorf("Expected top hit text with embedded newline, got %q", got)
	}
}
