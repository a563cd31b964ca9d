package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/intervo/intervo/pkg/intervo"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/media"
	"github.com/intervo/intervo/pkg/runner"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	op := flag.String("op", "", "operation: transcribe|synthesize|translate|formalize|rephrase|caption-labels|caption-url|describe|annotate|purge")
	input := flag.String("input", "", "path to input media file")
	mime := flag.String("mime", "audio/webm", "MIME type of the input media")
	language := flag.String("lang", "", "language tag, e.g. en or ro-RO")
	text := flag.String("text", "", "input text")
	source := flag.String("src", "", "source language for translate")
	target := flag.String("tgt", "", "target language for translate")
	rate := flag.Float64("rate", 1.0, "speaking rate multiplier")
	imageURL := flag.String("url", "", "remote image URL")
	task := flag.String("task", "", "task context for image description")
	labels := flag.String("labels", "", "comma-separated labels")
	disabilities := flag.String("disabilities", "", "comma-separated disability profile")
	maxAge := flag.Duration("max-age", 24*time.Hour, "artifact age threshold for purge")
	flag.Parse()

	runner.PrintBanner()

	cfg, err := intervo.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	engine, err := intervo.NewEngine(cfg, intervo.DefaultRegistry())
	if err != nil {
		slog.Error("engine init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	out, err := run(ctx, engine, options{
		op:           *op,
		input:        *input,
		mime:         *mime,
		language:     *language,
		text:         *text,
		source:       *source,
		target:       *target,
		rate:         *rate,
		imageURL:     *imageURL,
		task:         *task,
		labels:       splitList(*labels),
		disabilities: splitList(*disabilities),
		maxAge:       *maxAge,
	})
	if err != nil {
		slog.Error("operation failed", slog.String("op", *op), slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(out)
}

type options struct {
	op           string
	input        string
	mime         string
	language     string
	text         string
	source       string
	target       string
	rate         float64
	imageURL     string
	task         string
	labels       []string
	disabilities []string
	maxAge       time.Duration
}

func run(ctx context.Context, engine *intervo.Engine, opts options) (string, error) {
	switch opts.op {
	case "transcribe":
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return "", err
		}
		res := engine.Transcribe(ctx, media.Blob{Data: data, MIME: opts.mime}, opts.language)
		if !res.OK() {
			return "", fmt.Errorf("no usable transcript: %w", res.Err())
		}
		return res.Value(), nil
	case "synthesize":
		res := engine.Synthesize(ctx, opts.text, opts.language, opts.rate)
		if !res.OK() {
			return "", fmt.Errorf("no audio produced: %w", res.Err())
		}
		return res.Value(), nil
	case "translate":
		res := engine.Translate(ctx, opts.text, opts.source, opts.target)
		if !res.OK() {
			return "", fmt.Errorf("no translation produced: %w", res.Err())
		}
		return res.Value(), nil
	case "formalize":
		res := engine.Formalize(ctx, opts.text, opts.language)
		if !res.OK() {
			return "", fmt.Errorf("no corrected text produced: %w", res.Err())
		}
		return res.Value(), nil
	case "rephrase":
		res := engine.Rephrase(ctx, opts.text, opts.language, opts.disabilities)
		if !res.OK() {
			return "", fmt.Errorf("no rephrased text produced: %w", res.Err())
		}
		return res.Value(), nil
	case "caption-labels":
		return engine.CaptionFromLabels(ctx, opts.labels), nil
	case "caption-url":
		return engine.CaptionImageURL(ctx, opts.imageURL, opts.task), nil
	case "describe":
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return "", err
		}
		blob := media.Blob{Data: data, MIME: opts.mime}
		return engine.DescribeImage(ctx, blob.Base64(), opts.task), nil
	case "annotate":
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return "", err
		}
		blob := media.Blob{Data: data, MIME: opts.mime}
		res := engine.AnnotateImage(ctx, blob.Base64())
		if !res.OK() {
			return "", fmt.Errorf("no annotation produced: %w", res.Err())
		}
		return res.Value(), nil
	case "purge":
		removed, err := engine.PurgeArtifacts(opts.maxAge)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %d artifacts", removed), nil
	default:
		return "", fmt.Errorf("unknown operation: %q", opts.op)
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
