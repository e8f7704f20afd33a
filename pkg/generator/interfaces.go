package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ImageModel はリモート画像生成モデルへの窓口です。
// go-gemini-client の GenerativeModel が満たし、テストではモックに差し替えます。
type ImageModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}
