// Package recommendation holds the learning-recommendation record shared by the
// recommendation function and its clients, the model prompt, and the parser
// that validates model output before anything downstream trusts it.
package recommendation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformed = errors.New("malformed recommendation list")

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// BuildPrompt renders the instruction sent to the chat model for the given
// missing skill names.
func BuildPrompt(missingSkills []string) string {
	return fmt.Sprintf(`A user on a career development platform is missing the following skills for their target role: %s.
Generate 3-5 personalized learning recommendations to help them close this gap.
For each recommendation, provide:
- "title" (e.g., "Master React Hooks")
- "description" (a 1-2 sentence compelling reason why this helps)
- "type" (e.g., "Article", "Video", "Book", "Project")

Return ONLY a valid JSON array of objects in this format:
[{"title": "...", "description": "...", "type": "..."}]`, strings.Join(missingSkills, ", "))
}

type rawRecommendation struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
}

// ParseList decodes raw as a JSON array of recommendations. A single enclosing
// markdown code fence is tolerated; any other surrounding text, a non-array
// document, or an element without a string title, description and type is
// rejected with ErrMalformed.
func ParseList(raw []byte) ([]Recommendation, error) {
	body := stripFence(bytes.TrimSpace(raw))
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: not a json array", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	var items []rawRecommendation
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}

	out := make([]Recommendation, 0, len(items))
	for i, it := range items {
		if it.Title == nil || strings.TrimSpace(*it.Title) == "" {
			return nil, fmt.Errorf("%w: item %d has no title", ErrMalformed, i)
		}
		if it.Description == nil || it.Type == nil {
			return nil, fmt.Errorf("%w: item %d missing description or type", ErrMalformed, i)
		}
		out = append(out, Recommendation{
			Title:       strings.TrimSpace(*it.Title),
			Description: strings.TrimSpace(*it.Description),
			Type:        strings.TrimSpace(*it.Type),
		})
	}
	return out, nil
}

func stripFence(b []byte) []byte {
	if !bytes.HasPrefix(b, []byte("```")) || !bytes.HasSuffix(b, []byte("```")) || len(b) < 6 {
		return b
	}
	inner := b[3 : len(b)-3]
	if nl := bytes.IndexByte(inner, '\n'); nl >= 0 && !bytes.ContainsAny(inner[:nl], "[{") {
		inner = inner[nl+1:]
	}
	return bytes.TrimSpace(inner)
}
