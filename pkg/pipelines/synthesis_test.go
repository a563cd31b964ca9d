package pipelines

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/intervo/intervo/pkg/artifacts"
	"github.com/intervo/intervo/pkg/providers/mock"
)

func TestSynthesisReturnsPublicPath(t *testing.T) {
	synth := mock.NewSynthesizer(mock.TTSConfig{Audio: []byte("mp3")})
	store := artifacts.NewStore(t.TempDir(), "tts-audio")
	pipe := NewSynthesis(synth, store)

	res := pipe.Run(context.Background(), "Hello there", "en", 1.0)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if res.Value() == "" {
		t.Fatalf("expected a public path")
	}
}

func TestSynthesisConcurrentRunsProduceDistinctArtifacts(t *testing.T) {
	synth := mock.NewSynthesizer(mock.TTSConfig{Audio: []byte("mp3")})
	store := artifacts.NewStore(t.TempDir(), "tts-audio")
	pipe := NewSynthesis(synth, store)

	var wg sync.WaitGroup
	paths := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := pipe.Run(context.Background(), "same text", "en", 1.0)
			if res.OK() {
				paths[i] = res.Value()
			}
		}(i)
	}
	wg.Wait()

	if paths[0] == "" || paths[1] == "" {
		t.Fatalf("both runs must succeed: %v", paths)
	}
	if paths[0] == paths[1] {
		t.Fatalf("identical inputs must produce distinct artifacts: %s", paths[0])
	}
}

func TestSynthesisProviderFailure(t *testing.T) {
	synth := mock.NewSynthesizer(mock.TTSConfig{Err: errors.New("voice unavailable")})
	store := artifacts.NewStore(t.TempDir(), "tts-audio")
	pipe := NewSynthesis(synth, store)

	if res := pipe.Run(context.Background(), "text", "en", 1.0); res.OK() {
		t.Fatalf("expected failure")
	}
}
