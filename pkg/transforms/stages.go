// Package transforms implements the generative-text stages: each stage
// builds one prompt and makes a single generator call. Stages are pure with
// respect to the process and independently callable.
package transforms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/intervo/intervo/pkg/adapters/genai"
	"github.com/intervo/intervo/pkg/lang"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/redact"
)

const (
	// DefaultSourceLanguage and DefaultTargetLanguage apply when Translate
	// is called without explicit tags.
	DefaultSourceLanguage = "en"
	DefaultTargetLanguage = "ro"

	// DescribeMaxWords bounds the image description output: at most one
	// sentence, under this many words. Over-length provider responses are
	// clamped, not rejected.
	DescribeMaxWords = 20
)

type Stages struct {
	gen    genai.Generator
	logger *slog.Logger
}

func New(gen genai.Generator) *Stages {
	return &Stages{
		gen:    gen,
		logger: logging.NewComponentLogger(slog.Default(), "transforms"),
	}
}

// Formalize corrects grammar, punctuation and capitalization, replacing
// offensive language with respectful equivalents. The original language and
// meaning are preserved; nothing is translated or added.
func (s *Stages) Formalize(ctx context.Context, text, language string) (string, error) {
	prompt := fmt.Sprintf(
		"Correct the grammar, punctuation and capitalization of the following text. "+
			"Replace any offensive or vulgar language with respectful equivalents. "+
			"Keep the original language (%s) and the original meaning exactly; do not translate "+
			"and do not add information. Return only the corrected text.\n\nText: %s",
		lang.Normalize(language), text)
	return s.generate(ctx, "formalize", prompt)
}

// Rephrase simplifies phrasing and sentence length for the listed
// accessibility needs while preserving length and core meaning.
func (s *Stages) Rephrase(ctx context.Context, text, language string, disabilities []string) (string, error) {
	needs := "general accessibility needs"
	if len(disabilities) > 0 {
		needs = strings.Join(disabilities, ", ")
	}
	prompt := fmt.Sprintf(
		"Rewrite the following text so it is easier to understand for a person with these "+
			"accessibility needs: %s. Use simple words and short sentences, keep roughly the same "+
			"length and the core meaning, and keep the result friendly for screen readers. "+
			"Keep the original language (%s). Return only the rewritten text.\n\nText: %s",
		needs, lang.Normalize(language), text)
	return s.generate(ctx, "rephrase", prompt)
}

// Translate produces a meaning- and tone-preserving translation.
// Unspecified tags default to en -> ro.
func (s *Stages) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(source) == "" {
		source = DefaultSourceLanguage
	}
	if strings.TrimSpace(target) == "" {
		target = DefaultTargetLanguage
	}
	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s, preserving its meaning and tone. "+
			"Return only the translation.\n\nText: %s",
		lang.Normalize(source), lang.Normalize(target), text)
	return s.generate(ctx, "translate", prompt)
}

// CaptionFromLabels asks for one descriptive sentence synthesizing the
// subject and action implied by a label set.
func (s *Stages) CaptionFromLabels(ctx context.Context, labels []string) (string, error) {
	prompt := fmt.Sprintf(
		"These labels describe an image: %s. Write one descriptive sentence that combines "+
			"the subject and the action. Return only the sentence.",
		strings.Join(labels, ", "))
	return s.generate(ctx, "caption_from_labels", prompt)
}

// DescribeImageInContext produces at most one sentence, under
// DescribeMaxWords words, describing only clear, high-confidence visual
// content relevant to the task. Either input missing short-circuits to ""
// without calling the provider.
func (s *Stages) DescribeImageInContext(ctx context.Context, base64Image, task string) (string, error) {
	if strings.TrimSpace(base64Image) == "" || strings.TrimSpace(task) == "" {
		return "", nil
	}
	prompt := fmt.Sprintf(
		"In the context of the following task, describe only the clear, high-confidence visual "+
			"content of the image, in at most one sentence of fewer than %d words. If nothing in the "+
			"image is clearly relevant, reply with nothing.\n\nTask: %s",
		DescribeMaxWords, task)
	out, err := s.gen.GenerateVision(ctx, prompt, base64Image, "image/jpeg")
	if err != nil {
		s.logger.Error("describe_image stage failed", slog.String("error", err.Error()))
		return "", err
	}
	if out == genai.EmptyCompletion {
		// Nothing usable to describe; the stage's defined empty output.
		return "", nil
	}
	return ClampSentence(out, DescribeMaxWords), nil
}

func (s *Stages) generate(ctx context.Context, stage, prompt string) (string, error) {
	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("transform stage failed",
			slog.String("stage", stage),
			slog.String("error", err.Error()))
		return "", err
	}
	s.logger.Debug("transform stage completed",
		slog.String("stage", stage),
		slog.String("output_preview", redact.Snippet(out, 48)))
	return strings.TrimSpace(out), nil
}

// ClampSentence cuts text down to its first sentence and hard-truncates to
// fewer than maxWords words.
func ClampSentence(text string, maxWords int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		text = text[:i+1]
	}
	words := strings.Fields(text)
	if len(words) >= maxWords {
		words = words[:maxWords-1]
		text = strings.TrimRight(strings.Join(words, " "), ",;:") + "."
	}
	return text
}
