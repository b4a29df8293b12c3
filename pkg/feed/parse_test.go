package feed

import (
	"testing"

	"github.com/skillboard/skillboard/pkg/errors"
)

func TestParseBareArray(t *testing.T) {
	labels, err := Parse([]byte(`["Go", "Rust", "TypeScript"]`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []string{"Go", "Rust", "TypeScript"}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(labels), len(want))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestParseSkillsObject(t *testing.T) {
	labels, err := Parse([]byte(`{"skills": ["Go", "Rust"]}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(labels) != 2 || labels[0] != "Go" || labels[1] != "Rust" {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestParseDeduplicates(t *testing.T) {
	labels, err := Parse([]byte(`["Go", "Rust", "Go", "  Rust  "]`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(labels) != 2 {
		t.Errorf("got %d labels, want 2 (duplicates dropped): %v", len(labels), labels)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	labels, err := Parse([]byte(`["  Go  "]`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if labels[0] != "Go" {
		t.Errorf("label not trimmed: %q", labels[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json at all`},
		{"wrong object", `{"labels": ["Go"]}`},
		{"empty array", `[]`},
		{"empty label", `["Go", ""]`},
		{"whitespace label", `["Go", "   "]`},
		{"control characters", "[\"Go\", \"bad\\u0007label\"]"},
		{"number elements", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFeed) {
				t.Errorf("expected INVALID_FEED code, got %v", err)
			}
		})
	}
}
