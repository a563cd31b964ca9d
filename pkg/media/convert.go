package media

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/logging"
)

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}
	return result, nil
}

// Converter transcodes a recorded video container into an audio stream
// suitable for speech recognition.
//
// Every call works in its own temporary directory, so concurrent
// conversions can never observe each other's intermediate files. The
// directory is removed before returning on both paths.
type Converter struct {
	ffmpegPath string
	runner     commandRunner
	mkdirTemp  func(dir, pattern string) (string, error)
	removeAll  func(path string) error
	writeFile  func(name string, data []byte, perm os.FileMode) error
	readFile   func(name string) ([]byte, error)
	logger     *slog.Logger
}

// NewConverter constructs the production converter with OS dependencies.
func NewConverter() *Converter {
	return &Converter{
		ffmpegPath: "ffmpeg",
		runner:     &execRunner{},
		mkdirTemp:  os.MkdirTemp,
		removeAll:  os.RemoveAll,
		writeFile:  os.WriteFile,
		readFile:   os.ReadFile,
		logger:     logging.NewComponentLogger(slog.Default(), "media_converter"),
	}
}

// ToAudio performs a single-pass transcode of a video blob to audio/mp3.
func (c *Converter) ToAudio(ctx context.Context, blob Blob) (Blob, error) {
	if len(blob.Data) == 0 {
		return Blob{}, errorsx.New(errorsx.ReasonMediaConvert, "empty input media")
	}

	tempDir, err := c.mkdirTemp("", "intervo-convert-*")
	if err != nil {
		return Blob{}, errorsx.Wrap(err, errorsx.ReasonMediaConvert)
	}
	defer func() {
		_ = c.removeAll(tempDir)
	}()

	inPath := filepath.Join(tempDir, "input"+extensionFor(blob.MIME))
	outPath := filepath.Join(tempDir, "output.mp3")
	if err := c.writeFile(inPath, blob.Data, 0o600); err != nil {
		return Blob{}, errorsx.Wrap(err, errorsx.ReasonMediaConvert)
	}

	args := buildFFmpegArgs(inPath, outPath)
	cmdResult, runErr := c.runner.Run(ctx, c.ffmpegPath, args...)
	if runErr != nil {
		c.logger.Error("ffmpeg transcode failed",
			slog.Int("exit_code", cmdResult.ExitCode),
			slog.String("stderr_tail", tail(cmdResult.Stderr, 200)))
		return Blob{}, errorsx.Wrap(runErr, errorsx.ReasonMediaConvert)
	}

	data, err := c.readFile(outPath)
	if err != nil {
		c.logger.Error("ffmpeg completed but output file is missing")
		return Blob{}, errorsx.Wrap(err, errorsx.ReasonMediaConvert)
	}

	return Blob{Data: data, MIME: "audio/mp3"}, nil
}

func buildFFmpegArgs(inPath, outPath string) []string {
	return []string{
		"-y",
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		outPath,
	}
}

func extensionFor(mime string) string {
	switch mime {
	case "video/webm":
		return ".webm"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	default:
		return ".bin"
	}
}

func tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
