package media

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// fakeRunner simulates command execution outcomes.
type fakeRunner struct {
	run func(ctx context.Context, name string, args ...string) (commandResult, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	if f.run == nil {
		return commandResult{}, nil
	}
	return f.run(ctx, name, args...)
}

func newTestConverter(runner commandRunner) *Converter {
	return &Converter{
		ffmpegPath: "ffmpeg-test",
		runner:     runner,
		mkdirTemp:  os.MkdirTemp,
		removeAll:  os.RemoveAll,
		writeFile:  os.WriteFile,
		readFile:   os.ReadFile,
		logger:     slog.Default(),
	}
}

func TestToAudioSuccess(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			if name != "ffmpeg-test" {
				t.Fatalf("command name = %q, want ffmpeg-test", name)
			}
			outPath := args[len(args)-1]
			if !strings.HasSuffix(outPath, "output.mp3") {
				t.Fatalf("unexpected output path: %s", outPath)
			}
			if err := os.WriteFile(outPath, []byte("mp3 bytes"), 0o600); err != nil {
				t.Fatalf("write output: %v", err)
			}
			return commandResult{Stdout: "ok"}, nil
		},
	}

	conv := newTestConverter(runner)
	out, err := conv.ToAudio(context.Background(), Blob{Data: []byte("video"), MIME: "video/webm"})
	if err != nil {
		t.Fatalf("ToAudio error: %v", err)
	}
	if out.MIME != "audio/mp3" {
		t.Fatalf("output mime = %q, want audio/mp3", out.MIME)
	}
	if string(out.Data) != "mp3 bytes" {
		t.Fatalf("unexpected output data: %q", out.Data)
	}
}

func TestToAudioTranscodeFailure(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			return commandResult{ExitCode: 1, Stderr: "corrupt input"}, errors.New("exit status 1")
		},
	}

	conv := newTestConverter(runner)
	if _, err := conv.ToAudio(context.Background(), Blob{Data: []byte("video"), MIME: "video/webm"}); err == nil {
		t.Fatalf("expected transcode failure")
	}
}

func TestToAudioMissingOutput(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			// Transcode "succeeds" but never writes the output file.
			return commandResult{}, nil
		},
	}

	conv := newTestConverter(runner)
	if _, err := conv.ToAudio(context.Background(), Blob{Data: []byte("video"), MIME: "video/webm"}); err == nil {
		t.Fatalf("expected missing-output failure")
	}
}

func TestToAudioEmptyInput(t *testing.T) {
	called := false
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			called = true
			return commandResult{}, nil
		},
	}

	conv := newTestConverter(runner)
	if _, err := conv.ToAudio(context.Background(), Blob{MIME: "video/webm"}); err == nil {
		t.Fatalf("expected empty-input failure")
	}
	if called {
		t.Fatalf("transcoder must not run for empty input")
	}
}

func TestToAudioCleansTempDir(t *testing.T) {
	var tempDir string
	conv := newTestConverter(&fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			outPath := args[len(args)-1]
			return commandResult{}, os.WriteFile(outPath, []byte("audio"), 0o600)
		},
	})
	conv.mkdirTemp = func(dir, pattern string) (string, error) {
		var err error
		tempDir, err = os.MkdirTemp(dir, pattern)
		return tempDir, err
	}

	if _, err := conv.ToAudio(context.Background(), Blob{Data: []byte("video"), MIME: "video/mp4"}); err != nil {
		t.Fatalf("ToAudio error: %v", err)
	}
	if _, err := os.Stat(tempDir); !os.IsNotExist(err) {
		t.Fatalf("temp dir %s not cleaned up", tempDir)
	}
}

func TestBlobTagging(t *testing.T) {
	if !(Blob{MIME: "video/webm"}).IsVideo() {
		t.Fatalf("expected video tag")
	}
	if !(Blob{MIME: "audio/mp3"}).IsAudio() {
		t.Fatalf("expected audio tag")
	}
	if (Blob{MIME: "image/png"}).IsVideo() {
		t.Fatalf("image must not be video")
	}
}
