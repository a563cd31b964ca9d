package pipelines

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/resilience"
)

// maxImageBytes caps fetched image payloads.
const maxImageBytes = 10 << 20

// describer is satisfied by transforms.Stages.
type describer interface {
	DescribeImageInContext(ctx context.Context, base64Image, task string) (string, error)
}

// Captioning fetches a remote image and produces a short, task-aware
// description. It never fails past its boundary: the worst observable
// outcome is an empty caption.
type Captioning struct {
	client    *http.Client
	describer describer
	retry     resilience.RetryPolicy
	logger    *slog.Logger
}

func NewCaptioning(desc describer) *Captioning {
	return &Captioning{
		client:    &http.Client{Timeout: 30 * time.Second},
		describer: desc,
		retry:     resilience.NewRetryPolicy(2, 200*time.Millisecond),
		logger:    logging.NewComponentLogger(slog.Default(), "captioning_pipeline"),
	}
}

// Run fetches imageURL, base64-encodes the bytes, and asks the describe
// stage for a sentence relevant to the task description.
func (p *Captioning) Run(ctx context.Context, imageURL, task string) string {
	encoded, ok := p.fetchImage(ctx, imageURL)
	if !ok {
		return ""
	}

	caption, err := p.describer.DescribeImageInContext(ctx, encoded, task)
	if err != nil {
		p.logger.Error("image description failed", slog.String("error", err.Error()))
		return ""
	}
	return caption
}

func (p *Captioning) fetchImage(ctx context.Context, imageURL string) (string, bool) {
	if imageURL == "" {
		return "", false
	}
	var data []byte
	err := p.retry.Do(ctx, func() error {
		var err error
		data, err = p.fetchOnce(ctx, imageURL)
		return err
	})
	if err != nil {
		p.logger.Error("image fetch failed",
			slog.String("reason", string(errorsx.Reason(err))),
			slog.String("error", err.Error()))
		return "", false
	}
	return base64.StdEncoding.EncodeToString(data), true
}

func (p *Captioning) fetchOnce(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonImageFetch)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonImageFetch)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errorsx.Wrap(resilience.RateLimitError{Provider: "image_host", Message: resp.Status}, errorsx.ReasonImageFetch)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorsx.Newf(errorsx.ReasonImageFetch, "fetch returned %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonImageFetch)
	}
	if len(data) == 0 {
		return nil, errorsx.New(errorsx.ReasonImageFetch, "empty response body")
	}
	return data, nil
}
