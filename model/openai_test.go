package model

import (
	"reflect"
	"testing"
)

func TestBatchTextsRespectsTokenBudget(t *testing.T) {
	texts := []string{"a", "b", "c", "d"}
	countTokens := func(string) int { return 60 }

	batches := batchTexts(texts, countTokens, 100, 64)

	// 60+60 > 100, so every text lands in its own batch
	want := [][]int{{0}, {1}, {2}, {3}}
	if !reflect.DeepEqual(batches, want) {
		t.Errorf("Batches mismatch: got %v, want %v", batches, want)
	}
}

func TestBatchTextsRespectsTextLimit(t *testing.T) {
	texts := make([]string, 5)
	countTokens := func(string) int { return 1 }

	batches := batchTexts(texts, countTokens, 1000, 2)

	want := [][]int{{0, 1}, {2, 3}, {4}}
	if !reflect.DeepEqual(batches, want) {
		t.Errorf("Batches mismatch: got %v, want %v", batches, want)
	}
}

func TestBatchTextsOversizedTextGetsOwnBatch(t *testing.T) {
	texts := []string{"small", "huge", "small"}
	countTokens := func(s string) int {
		if s == "huge" {
			return 5000
		}
		return 10
	}

	batches := batchTexts(texts, countTokens, 100, 64)

	want := [][]int{{0}, {1}, {2}}
	if !reflect.DeepEqual(batches, want) {
		t.Errorf("Batches mismatch: got %v, want %v", batches, want)
	}
}

func TestBatchTextsEmptyInput(t *testing.T) {
	batches := batchTexts(nil, func(string) int { return 1 }, 100, 64)
	if len(batches) != 0 {
		t.Errorf("Expected no batches, got %v", batches)
	}
}

func TestBatchTextsCoversEveryIndexOnce(t *testing.T) {
	texts := make([]string, 17)
	countTokens := func(string) int { return 7 }

	batches := batchTexts(texts, countTokens, 20, 64)

	seen := make(map[int]bool)
	for _, batch := range batches {
		for _, idx := range batch {
			if seen[idx] {
				t.Errorf("Index %d appears twice", idx)
			}
			seen[idx] = true
		}
	}
	if len(seen) != len(texts) {
		t.Errorf("Expected %d indices covered, got %d", len(texts), len(seen))
	}
}
