package media

import (
	"encoding/base64"
	"strings"
)

// Blob is an opaque audio or video payload with a declared MIME type.
// Blobs are borrowed from the caller for the duration of one pipeline call
// and never retained after it returns.
type Blob struct {
	Data []byte
	MIME string
}

// IsVideo reports whether the blob is tagged as a video container.
func (b Blob) IsVideo() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(b.MIME)), "video/")
}

// IsAudio reports whether the blob is tagged as an audio container.
func (b Blob) IsAudio() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(b.MIME)), "audio/")
}

// Base64 re-encodes the payload for transport to a provider.
// Derived per call, never cached.
func (b Blob) Base64() string {
	return base64.StdEncoding.EncodeToString(b.Data)
}
