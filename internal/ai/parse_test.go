package ai

import (
	"errors"
	"testing"

	"github.com/lgsobral/eduhub/internal/apperror"
)

func TestParseGeneration_PlainJSON(t *testing.T) {
	gen, err := ParseGeneration(`{"description": "A solid intro to sets.", "tags": ["math", "sets"]}`)
	if err != nil {
		t.Fatalf("ParseGeneration() error = %v", err)
	}
	if gen.Description != "A solid intro to sets." {
		t.Errorf("Description = %q", gen.Description)
	}
	if len(gen.Tags) != 2 || gen.Tags[0] != "math" || gen.Tags[1] != "sets" {
		t.Errorf("Tags = %v, want [math sets]", gen.Tags)
	}
}

func TestParseGeneration_FencedJSON(t *testing.T) {
	// Fences are stripped and the surplus fourth tag is truncated.
	raw := "```json\n{\"description\":\"x\",\"tags\":[\"a\",\"b\",\"c\",\"d\"]}\n```"

	gen, err := ParseGeneration(raw)
	if err != nil {
		t.Fatalf("ParseGeneration() error = %v", err)
	}
	if gen.Description != "x" {
		t.Errorf("Description = %q, want %q", gen.Description, "x")
	}
	if len(gen.Tags) != 3 {
		t.Fatalf("len(Tags) = %d, want 3", len(gen.Tags))
	}
	if gen.Tags[0] != "a" || gen.Tags[1] != "b" || gen.Tags[2] != "c" {
		t.Errorf("Tags = %v, want [a b c]", gen.Tags)
	}
}

func TestParseGeneration_FenceWithoutLanguage(t *testing.T) {
	raw := "```\n{\"description\":\"fenced plain\",\"tags\":[]}\n```"

	gen, err := ParseGeneration(raw)
	if err != nil {
		t.Fatalf("ParseGeneration() error = %v", err)
	}
	if gen.Description != "fenced plain" {
		t.Errorf("Description = %q", gen.Description)
	}
}

func TestParseGeneration_JSONBuriedInProse(t *testing.T) {
	// Models ignore "no prose" instructions often enough that the
	// brace-span recovery has to handle chatter on both sides.
	raw := `Sure! Here is the catalog entry you asked for:
{"description": "Covers linear maps.", "tags": ["algebra"]}
Hope this helps!`

	gen, err := ParseGeneration(raw)
	if err != nil {
		t.Fatalf("ParseGeneration() error = %v", err)
	}
	if gen.Description != "Covers linear maps." {
		t.Errorf("Description = %q", gen.Description)
	}
	if len(gen.Tags) != 1 || gen.Tags[0] != "algebra" {
		t.Errorf("Tags = %v, want [algebra]", gen.Tags)
	}
}

func TestParseGeneration_BracesInsideStrings(t *testing.T) {
	// The scanner must not count braces that live inside string
	// literals, or the span would close too early.
	raw := `noise {"description": "Uses {curly} notation a {lot}.", "tags": ["notation"]} noise`

	gen, err := ParseGeneration(raw)
	if err != nil {
		t.Fatalf("ParseGeneration() error = %v", err)
	}
	if gen.Description != "Uses {curly} notation a {lot}." {
		t.Errorf("Description = %q", gen.Description)
	}
}

func TestParseGeneration_NoJSON(t *testing.T) {
	_, err := ParseGeneration("I'm sorry, I cannot help with that request.")
	if err == nil {
		t.Fatal("ParseGeneration() should fail when no JSON object is present")
	}
	if !errors.Is(err, apperror.ErrGenerationParse) {
		t.Errorf("error = %v, want ErrGenerationParse", err)
	}
}

func TestParseGeneration_UnbalancedObject(t *testing.T) {
	_, err := ParseGeneration(`{"description": "never closed`)
	if err == nil {
		t.Fatal("ParseGeneration() should fail on an unbalanced object")
	}
	if !errors.Is(err, apperror.ErrGenerationParse) {
		t.Errorf("error = %v, want ErrGenerationParse", err)
	}
}

func TestParseGeneration_MissingDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent field", `{"tags": ["a"]}`},
		{"empty string", `{"description": "", "tags": ["a"]}`},
		{"whitespace only", `{"description": "   ", "tags": ["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeneration(tt.raw)
			if err == nil {
				t.Fatal("ParseGeneration() should fail without a description")
			}
			if !errors.Is(err, apperror.ErrGenerationValidation) {
				t.Errorf("error = %v, want ErrGenerationValidation", err)
			}
		})
	}
}

func TestParseGeneration_TagsBestEffort(t *testing.T) {
	// Tags are secondary signal: any malformed shape degrades to an
	// empty list instead of failing the whole generation.
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"missing tags", `{"description": "d"}`, []string{}},
		{"tags as string", `{"description": "d", "tags": "math"}`, []string{}},
		{"tags as object", `{"description": "d", "tags": {"a": 1}}`, []string{}},
		{"tags as null", `{"description": "d", "tags": null}`, []string{}},
		{"mixed-case duplicates", `{"description": "d", "tags": ["Math", "math", "MATH"]}`, []string{"math"}},
		{"blank entries skipped", `{"description": "d", "tags": ["  ", "sets", ""]}`, []string{"sets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := ParseGeneration(tt.raw)
			if err != nil {
				t.Fatalf("ParseGeneration() error = %v", err)
			}
			if len(gen.Tags) != len(tt.want) {
				t.Fatalf("Tags = %v, want %v", gen.Tags, tt.want)
			}
			for i := range tt.want {
				if gen.Tags[i] != tt.want[i] {
					t.Errorf("Tags[%d] = %q, want %q", i, gen.Tags[i], tt.want[i])
				}
			}
		})
	}
}

func TestFirstObjectSpan_NestedObjects(t *testing.T) {
	span, ok := firstObjectSpan(`prefix {"a": {"b": 1}, "c": 2} suffix {"d": 3}`)
	if !ok {
		t.Fatal("firstObjectSpan() should find the first object")
	}
	if span != `{"a": {"b": 1}, "c": 2}` {
		t.Errorf("span = %q", span)
	}
}
