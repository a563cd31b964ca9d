package pipelines

import (
	"context"
	"errors"
	"testing"

	"github.com/intervo/intervo/pkg/media"
	"github.com/intervo/intervo/pkg/providers/mock"
	"github.com/intervo/intervo/pkg/transforms"
)

type fakeConverter struct {
	calls int
	out   media.Blob
	err   error
}

func (f *fakeConverter) ToAudio(ctx context.Context, blob media.Blob) (media.Blob, error) {
	f.calls++
	if f.err != nil {
		return media.Blob{}, f.err
	}
	return f.out, nil
}

func TestTranscriptionHappyPathForVideo(t *testing.T) {
	conv := &fakeConverter{out: media.Blob{Data: []byte("mp3"), MIME: "audio/mp3"}}
	rec := mock.NewRecognizer(mock.STTConfig{Transcript: "i dont no"})
	gen := mock.NewGenerator(mock.GenAIConfig{ResponseText: "I don't know."})
	pipe := NewTranscription(conv, rec, transforms.New(gen))

	res := pipe.Run(context.Background(), media.Blob{Data: []byte("vid"), MIME: "video/webm"}, "en")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if res.Value() != "I don't know." {
		t.Fatalf("unexpected transcript: %q", res.Value())
	}
	if conv.calls != 1 {
		t.Fatalf("converter calls = %d, want 1", conv.calls)
	}
}

func TestTranscriptionSkipsConversionForAudio(t *testing.T) {
	conv := &fakeConverter{}
	rec := mock.NewRecognizer(mock.STTConfig{Transcript: "hello"})
	gen := mock.NewGenerator(mock.GenAIConfig{ResponseText: "Hello."})
	pipe := NewTranscription(conv, rec, transforms.New(gen))

	res := pipe.Run(context.Background(), media.Blob{Data: []byte("opus"), MIME: "audio/webm"}, "en")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if conv.calls != 0 {
		t.Fatalf("converter must be skipped for audio input, calls = %d", conv.calls)
	}
}

func TestTranscriptionConvertsUntaggedContainer(t *testing.T) {
	conv := &fakeConverter{out: media.Blob{Data: []byte("mp3"), MIME: "audio/mp3"}}
	rec := mock.NewRecognizer(mock.STTConfig{Transcript: "hello"})
	gen := mock.NewGenerator(mock.GenAIConfig{ResponseText: "Hello."})
	pipe := NewTranscription(conv, rec, transforms.New(gen))

	res := pipe.Run(context.Background(), media.Blob{Data: []byte("bytes"), MIME: "application/octet-stream"}, "en")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if conv.calls != 1 {
		t.Fatalf("untagged input must be converted, calls = %d", conv.calls)
	}
}

func TestTranscriptionConversionFailureSkipsRecognizer(t *testing.T) {
	conv := &fakeConverter{err: errors.New("transcode failed")}
	rec := mock.NewRecognizer(mock.STTConfig{Transcript: "never"})
	gen := mock.NewGenerator(mock.GenAIConfig{ResponseText: "never"})
	pipe := NewTranscription(conv, rec, transforms.New(gen))

	res := pipe.Run(context.Background(), media.Blob{Data: []byte("vid"), MIME: "video/webm"}, "en")
	if res.OK() {
		t.Fatalf("expected failure")
	}
	if rec.Calls() != 0 {
		t.Fatalf("recognizer must not run after conversion failure, calls = %d", rec.Calls())
	}
	if gen.Calls() != 0 {
		t.Fatalf("formalize must not run after conversion failure, calls = %d", gen.Calls())
	}
}

func TestTranscriptionRecognitionFailureSkipsFormalize(t *testing.T) {
	conv := &fakeConverter{}
	rec := mock.NewRecognizer(mock.STTConfig{Err: errors.New("zero results")})
	gen := mock.NewGenerator(mock.GenAIConfig{ResponseText: "never"})
	pipe := NewTranscription(conv, rec, transforms.New(gen))

	res := pipe.Run(context.Background(), media.Blob{Data: []byte("opus"), MIME: "audio/webm"}, "en")
	if res.OK() {
		t.Fatalf("expected failure")
	}
	if gen.Calls() != 0 {
		t.Fatalf("formalize must not run on a failed transcript, calls = %d", gen.Calls())
	}
}

func TestTranscriptionFormalizeFailureFailsRun(t *testing.T) {
	conv := &fakeConverter{}
	rec := mock.NewRecognizer(mock.STTConfig{Transcript: "raw transcript"})
	gen := mock.NewGenerator(mock.GenAIConfig{Err: errors.New("quota exceeded")})
	pipe := NewTranscription(conv, rec, transforms.New(gen))

	res := pipe.Run(context.Background(), media.Blob{Data: []byte("opus"), MIME: "audio/webm"}, "en")
	if res.OK() {
		t.Fatalf("formalize failure must fail the run, got %q", res.Value())
	}
}
