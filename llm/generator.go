// backend/llm/generator.go
package llm

import "context"

// TextGenerator sends a prompt to a text model and returns its reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Unavailable returns a TextGenerator that fails every call with err. It stands
// in for the real client when startup could not build one.
func Unavailable(err error) TextGenerator {
	return GeneratorFunc(func(context.Context, string) (string, error) { return "", err })
}
