package feed

import (
	"encoding/json"
	"strings"

	"github.com/skillboard/skillboard/pkg/errors"
)

// document is the object form of a feed.
type document struct {
	Skills []string `json:"skills"`
}

// Parse decodes a feed payload into a validated, deduplicated label list.
// Both supported shapes are tried: a bare JSON string array, then an
// object with a "skills" key.
func Parse(data []byte) ([]string, error) {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFeed, err, "feed is not a JSON skill list")
		}
		if doc.Skills == nil {
			return nil, errors.New(errors.ErrCodeInvalidFeed, "feed object has no skills array")
		}
		labels = doc.Skills
	}

	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for i, label := range labels {
		label = strings.TrimSpace(label)
		if err := errors.ValidateLabel(label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFeed, err, "invalid label at index %d", i)
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFeed, "feed contains no labels")
	}
	return out, nil
}
