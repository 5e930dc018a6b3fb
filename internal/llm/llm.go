package llm

import "context"

// Client abstracts the generative-AI provider. Implementations are constructed
// once in bootstrap and injected; there is no package-level singleton.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
