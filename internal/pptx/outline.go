package pptx

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

// ErrMalformedOutline reports that the model response could not be decoded
// into an outline. Callers decide the fallback; an empty deck is never
// produced silently.
var ErrMalformedOutline = errors.New("malformed outline")

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON recovers the JSON payload from raw model output: a fenced
// ```json block wins, otherwise the span from the first '{' to the last '}',
// otherwise the text unchanged.
func ExtractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

type rawSlide struct {
	Title  string          `json:"title"`
	Points json.RawMessage `json:"points"`
}

// ParseOutline decodes raw model output into an Outline. A points field that
// is a single string is normalized to a one-element list.
func ParseOutline(text string) (models.Outline, error) {
	var doc struct {
		Slides []rawSlide `json:"slides"`
	}
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &doc); err != nil {
		return models.Outline{}, fmt.Errorf("%w: %v", ErrMalformedOutline, err)
	}

	outline := models.Outline{Slides: make([]models.Slide, 0, len(doc.Slides))}
	for i, raw := range doc.Slides {
		slide := models.Slide{Title: raw.Title}
		if slide.Title == "" {
			slide.Title = fmt.Sprintf("Slide %d", i+1)
		}
		points, err := decodePoints(raw.Points)
		if err != nil {
			return models.Outline{}, fmt.Errorf("%w: slide %d points: %v", ErrMalformedOutline, i+1, err)
		}
		slide.Points = points
		outline.Slides = append(outline.Slides, slide)
	}
	return outline, nil
}

func decodePoints(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	return nil, errors.New("neither list nor string")
}
