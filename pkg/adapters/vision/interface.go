package vision

import (
	"context"
	"strings"
)

// Labeler defines the contract for any vision labeling vendor implementation.
type Labeler interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// AnnotateLabels returns ranked labels for a base64-encoded image,
	// capped at MaxLabels results.
	AnnotateLabels(ctx context.Context, base64Image string) ([]Label, error)
}

// Label is one ranked annotation returned by a vision provider.
type Label struct {
	Description string
	Score       float64
}

// MaxLabels caps how many ranked labels feed the description sentence.
const MaxLabels = 5

// NoLabelsSentence is the defined success output for an image the provider
// could not label. It is distinct from a provider failure.
const NoLabelsSentence = "No labels were detected in this image."

// DescribeLabels assembles the natural-language sentence for a label set.
// Zero labels is a success path and yields NoLabelsSentence.
func DescribeLabels(labels []Label) string {
	if len(labels) == 0 {
		return NoLabelsSentence
	}
	if len(labels) > MaxLabels {
		labels = labels[:MaxLabels]
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if d := strings.TrimSpace(l.Description); d != "" {
			parts = append(parts, d)
		}
	}
	if len(parts) == 0 {
		return NoLabelsSentence
	}
	return "This image likely contains: " + strings.Join(parts, ", ") + "."
}
