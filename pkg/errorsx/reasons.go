package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonSTTRecognize ReasonCode = "stt_recognize"
	ReasonSTTNoResults ReasonCode = "stt_no_results"
	ReasonSTTRateLimit ReasonCode = "stt_rate_limit"

	ReasonTTSSynthesize ReasonCode = "tts_synthesize"
	ReasonTTSRateLimit  ReasonCode = "tts_rate_limit"

	ReasonVisionAnnotate  ReasonCode = "vision_annotate"
	ReasonVisionRateLimit ReasonCode = "vision_rate_limit"

	ReasonGenAIGenerate    ReasonCode = "genai_generate"
	ReasonGenAIRateLimit   ReasonCode = "genai_rate_limit"
	ReasonGenAICircuitOpen ReasonCode = "genai_circuit_open"

	ReasonMediaConvert  ReasonCode = "media_convert"
	ReasonImageFetch    ReasonCode = "image_fetch"
	ReasonArtifactWrite ReasonCode = "artifact_write"

	ReasonAuthToken ReasonCode = "auth_token"
)
