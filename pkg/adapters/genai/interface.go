package genai

import "context"

// Generator defines the contract for any generative-text vendor
// implementation shared by the text transform stages.
type Generator interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// GenerateText returns the trimmed completion for a fully
	// interpolated prompt. A reachable provider that produces no text
	// yields EmptyCompletion, not an error.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateVision is GenerateText with an inline base64 image part.
	GenerateVision(ctx context.Context, prompt, base64Image, mimeType string) (string, error)
}

// EmptyCompletion is the fixed sentinel returned when the provider answers
// but has no text to offer. It is a success, kept visible to callers.
const EmptyCompletion = "No response generated."
