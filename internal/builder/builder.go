package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/gemini-image-gen/internal/config"
	"github.com/shouni/gemini-image-gen/pkg/asset"
	"github.com/shouni/gemini-image-gen/pkg/generator"
	"github.com/shouni/gemini-image-gen/pkg/publisher"
	"github.com/shouni/gemini-image-gen/pkg/runner"
	"github.com/shouni/gemini-image-gen/pkg/style"
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildGenerateRunner は設定と実行オプションから GenerateRunner を組み立てるのだ。
// gs:// のパスが登場しない限り GCS クライアントは初期化しないのだ。
func BuildGenerateRunner(ctx context.Context, cfg *config.Config, outputPath string) (*runner.GenerateRunner, error) {
	aiClient, err := InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	var gcsFactory gcsfactory.Factory
	ensureFactory := func() error {
		if gcsFactory != nil {
			return nil
		}
		factory, err := gcsfactory.NewGCSClientFactory(ctx)
		if err != nil {
			return fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
		}
		gcsFactory = factory
		return nil
	}

	// 入力側: スタイル・参照・編集元のどれかが gs:// なら GCS リーダーを使う
	var reader asset.Reader = asset.NewLocalReader()
	if anyGCSPath(inputPaths(cfg.Options)) {
		if err := ensureFactory(); err != nil {
			return nil, err
		}
		gcsReader, err := gcsFactory.NewInputReader()
		if err != nil {
			return nil, err
		}
		reader = gcsReader
	}

	// 出力側: gs:// 宛てのときだけ GCS ライターに切り替える
	var writer publisher.Writer = publisher.NewLocalWriter()
	if isGCSPath(outputPath) {
		if err := ensureFactory(); err != nil {
			return nil, err
		}
		gcsWriter, err := gcsFactory.NewOutputWriter()
		if err != nil {
			return nil, err
		}
		writer = gcsWriter
	}

	refCache := cache.New(config.DefaultCacheTTL, config.DefaultCacheCleanupInterval)
	loader := asset.NewLoader(reader, httpClient, refCache)
	resolver := style.NewResolver(reader)

	model := cfg.Options.ImageModel
	if model == "" {
		model = cfg.GeminiImageModel
	}
	gen := generator.NewGenerator(aiClient, model, config.DefaultMaxAttempts, config.DefaultRetryDelay)

	pub := publisher.NewImagePublisher(writer)
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateInterval), 1)

	return runner.NewGenerateRunner(resolver, loader, gen, pub, limiter), nil
}

func inputPaths(opts config.GenerateOptions) []string {
	paths := make([]string, 0, len(opts.References)+2)
	if opts.StyleFile != "" {
		paths = append(paths, opts.StyleFile)
	}
	if opts.EditFile != "" {
		paths = append(paths, opts.EditFile)
	}
	return append(paths, opts.References...)
}

func anyGCSPath(paths []string) bool {
	for _, p := range paths {
		if isGCSPath(p) {
			return true
		}
	}
	return false
}

func isGCSPath(path string) bool {
	return strings.HasPrefix(strings.ToLower(path), "gs://")
}
