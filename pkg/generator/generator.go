package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

// Generator は GenerationRequest をリモートモデル呼び出しに変換して実行します。
// レート制限だけは遅延を増やしながら再試行し、それ以外のリモート失敗は
// 種別を保ったまま即座に返します。
type Generator struct {
	aiClient    ImageModel
	model       string
	maxAttempts int
	retryDelay  time.Duration

	// sleep はテストで実時間を待たずに済むよう差し替え可能にしています。
	sleep func(time.Duration)
}

// NewGenerator は Generator を初期化します。
// maxAttempts はレート制限時の総試行回数、retryDelay は初回再試行までの待ち時間で、
// 2回目以降は試行回数に比例して延びます。
func NewGenerator(aiClient ImageModel, model string, maxAttempts int, retryDelay time.Duration) *Generator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Generator{
		aiClient:    aiClient,
		model:       model,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		sleep:       time.Sleep,
	}
}

// Generate は1サブジェクト分のリクエストを送信し、生成結果を返します。
func (g *Generator) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	parts := buildParts(req)
	opts := gemini.GenerateOptions{
		AspectRatio: string(req.AspectRatio),
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
		if err != nil {
			classified := classifyRemoteError(err)
			if !errors.Is(classified, domain.ErrRateLimited) {
				return nil, classified
			}
			lastErr = classified
			if attempt < g.maxAttempts {
				delay := g.retryDelay * time.Duration(attempt)
				slog.Warn("レート制限のため待機してから再試行します",
					"attempt", attempt,
					"max_attempts", g.maxAttempts,
					"delay", delay,
				)
				g.sleep(delay)
			}
			continue
		}
		return parseResponse(resp)
	}

	return nil, fmt.Errorf("%w (attempts: %d): %v", domain.ErrQuotaExceeded, g.maxAttempts, lastErr)
}

// buildParts はリクエストを genai のパート列に変換します。
// 並びは編集モードが [指示文, 編集元画像, 参照画像...]、
// 生成モードが [プロンプト, 参照画像...] です。参照画像は Ordinal 順のままです。
func buildParts(req *domain.GenerationRequest) []*genai.Part {
	parts := make([]*genai.Part, 0, len(req.References)+2)
	parts = append(parts, &genai.Part{Text: req.Prompt})

	if req.Mode == domain.ModeEdit {
		parts = append(parts, inlinePart(req.EditSource, req.EditSourceMime))
	}
	for _, ref := range req.References {
		parts = append(parts, inlinePart(ref.Data, ref.MimeType))
	}
	return parts
}

func inlinePart(data []byte, mimeType string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}
