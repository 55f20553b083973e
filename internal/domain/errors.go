package domain

import "errors"

// Error taxonomy for the pipeline. Lower layers wrap the most specific kind
// with fmt.Errorf("...: %w", ...) and callers check with errors.Is; the HTTP
// boundary maps each kind to a stable client-facing classification.
var (
	// ErrConfiguration means the process is missing credentials or settings
	// it needs to serve at all. Checked once at startup, not per request.
	ErrConfiguration = errors.New("service not configured")

	// ErrInvalidInput covers empty or unusable request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTranscriptUnavailable means no transcript could be obtained in any
	// attempted language, or transcripts are disabled for the video.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrIndexBuildFailed means embedding or indexing the chunk set failed.
	// A session is never published after a failed build.
	ErrIndexBuildFailed = errors.New("index build failed")

	// ErrChainNotReady means the answer chain was invoked before the
	// session's index exists.
	ErrChainNotReady = errors.New("answer chain not ready")

	// ErrGenerationFailed wraps upstream language-model errors.
	ErrGenerationFailed = errors.New("answer generation failed")
)
