package pptx

import (
	"errors"
	"testing"
)

func TestParseOutlineFenced(t *testing.T) {
	input := "```json\n{\"slides\":[{\"title\":\"A\",\"points\":[\"x\",\"y\"]}]}\n```"
	outline, err := ParseOutline(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(outline.Slides))
	}
	if outline.Slides[0].Title != "A" {
		t.Errorf("title: got %q, want %q", outline.Slides[0].Title, "A")
	}
	if len(outline.Slides[0].Points) != 2 || outline.Slides[0].Points[0] != "x" || outline.Slides[0].Points[1] != "y" {
		t.Errorf("points: got %v, want [x y]", outline.Slides[0].Points)
	}
}

func TestParseOutlineBareJSON(t *testing.T) {
	input := `{"slides":[{"title":"A","points":["x","y"]}]}`
	outline, err := ParseOutline(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline.Slides) != 1 || outline.Slides[0].Title != "A" {
		t.Errorf("unexpected outline: %+v", outline)
	}
}

func TestParseOutlineSurroundingNoise(t *testing.T) {
	outline, err := ParseOutline(`noise{"slides":[]}trailing`)
	if err != nil {
		t.Fatalf("expected zero slides, not a parse failure: %v", err)
	}
	if len(outline.Slides) != 0 {
		t.Errorf("expected 0 slides, got %d", len(outline.Slides))
	}
}

func TestParseOutlineSingleStringPoints(t *testing.T) {
	outline, err := ParseOutline(`{"slides":[{"title":"T","points":"only one"}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	points := outline.Slides[0].Points
	if len(points) != 1 || points[0] != "only one" {
		t.Errorf("points: got %v, want [only one]", points)
	}
}

func TestParseOutlineMissingTitle(t *testing.T) {
	outline, err := ParseOutline(`{"slides":[{"points":["x"]},{"points":["y"]}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outline.Slides[0].Title != "Slide 1" || outline.Slides[1].Title != "Slide 2" {
		t.Errorf("default titles: got %q, %q", outline.Slides[0].Title, outline.Slides[1].Title)
	}
}

func TestParseOutlineMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"prose", "I could not generate slides today."},
		{"broken json", `{"slides":[{"title":`},
		{"points object", `{"slides":[{"title":"T","points":{"a":1}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutline(tt.input)
			if !errors.Is(err, ErrMalformedOutline) {
				t.Errorf("expected ErrMalformedOutline, got %v", err)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with prose", "Sure! ```json\n{\"a\":1}\n``` hope that helps", `{"a":1}`},
		{"braces", `noise{"a":1}trailing`, `{"a":1}`},
		{"no json", "nothing here", "nothing here"},
		{"nested braces", `x{"a":{"b":2}}y`, `{"a":{"b":2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
