package research

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// ExtractJSONObject pulls the JSON object out of producer text that may be
// wrapped in commentary or code fences. It takes the substring from the
// first '{' through the last '}'. This is not brace-balance aware: trailing
// commentary containing a '}' would widen the span. Well-formed input (one
// object, whatever surrounds it) is unaffected, and the later decode catches
// a mis-extraction.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", model.ParseFailure(text, errors.New("no JSON object in producer output"))
	}
	return text[start : end+1], nil
}

// ParseDelta decodes one batch's producer output into a candidate delta.
// Any failure here is fatal to the run: the raw text rides along on the
// fault for diagnosis.
func ParseDelta(raw string) (*model.Delta, error) {
	payload, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var delta model.Delta
	if err := json.Unmarshal([]byte(payload), &delta); err != nil {
		return nil, model.ParseFailure(raw, fmt.Errorf("decode delta: %w", err))
	}
	return &delta, nil
}
