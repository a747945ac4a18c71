package types

import (
	"testing"
)

func TestQueryParamsValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  QueryParams
		wantErr bool
	}{
		{"valid minimal", QueryParams{Query: "What is X?"}, false},
		{"valid full", QueryParams{Query: "q", Limit: 50, ScoreThreshold: ptr(0.5)}, false},
		{"empty query", QueryParams{Query: ""}, true},
		{"limit too high", QueryParams{Query: "q", Limit: 51}, true},
		{"negative limit", QueryParams{Query: "q", Limit: -1}, true},
		{"threshold above one", QueryParams{Query: "q", ScoreThreshold: ptr(1.5)}, true},
		{"threshold zero is valid", QueryParams{Query: "q", ScoreThreshold: ptr(0.0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.params.Validate()
			if tt.wantErr && len(errs) == 0 {
				t.Errorf("Expected validation errors, got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Errorf("Unexpected validation errors: %v", errs)
			}
		})
	}
}

func TestChatParamsValidation(t *testing.T) {
	if errs := (&ChatParams{Message: "hi"}).Validate(); len(errs) > 0 {
		t.Errorf("Unexpected errors: %v", errs)
	}
	if errs := (&ChatParams{}).Validate(); len(errs) == 0 {
		t.Error("Expected error for empty message")
	}
}

func ptr(f float64) *float64 {
	return &f
}
