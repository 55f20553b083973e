package llm

import "context"

// ChatModel maps a prompt to generated text. Sampling temperature and model
// choice belong to the implementation's configuration, not to callers.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
