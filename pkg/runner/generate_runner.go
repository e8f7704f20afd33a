package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/shouni/gemini-image-gen/pkg/asset"
	"github.com/shouni/gemini-image-gen/pkg/domain"
	"github.com/shouni/gemini-image-gen/pkg/generator"
	"github.com/shouni/gemini-image-gen/pkg/prompts"
	"github.com/shouni/gemini-image-gen/pkg/publisher"
	"github.com/shouni/gemini-image-gen/pkg/style"
)

// Options は1回の実行で処理する入力一式です。CLI 層から渡されます。
type Options struct {
	// OutputPath は出力先のベースパスです。サブジェクトが複数のときは
	// 拡張子の前に _1, _2, ... を挿入したパスへ保存します。
	OutputPath string
	// Subjects は位置引数で渡されたサブジェクト列です。順序が出力番号を決めます。
	Subjects []string
	// StylePath はスタイルテンプレート文書のパスです。空なら未使用です。
	StylePath string
	// EditPath は編集元画像のパスです。指定されると編集モードになります。
	EditPath string
	// RefPaths は --ref で渡された参照画像パス列です。順序は影響度の優先順位です。
	RefPaths []string
	// AspectRatio は出力の縦横比です。検証は generator.BuildRequest が行います。
	AspectRatio string
}

// GenerateRunner はサブジェクト列を順番に処理するバッチディスパッチャです。
// 同時に走るリモート呼び出しは常に1つで、並列化は意図的にしていません。
type GenerateRunner struct {
	resolver  *style.Resolver
	loader    *asset.Loader
	generator *generator.Generator
	publisher *publisher.ImagePublisher
	limiter   *rate.Limiter
}

// NewGenerateRunner は依存関係を注入して初期化します。limiter は nil でも動作します。
func NewGenerateRunner(
	resolver *style.Resolver,
	loader *asset.Loader,
	gen *generator.Generator,
	pub *publisher.ImagePublisher,
	limiter *rate.Limiter,
) *GenerateRunner {
	return &GenerateRunner{
		resolver:  resolver,
		loader:    loader,
		generator: gen,
		publisher: pub,
		limiter:   limiter,
	}
}

// Run は入力の検証とリクエストの組み立てをすべて済ませてから、
// サブジェクトを1件ずつリモートに送り、返った画像を即座に保存します。
// 途中で確定的な失敗が起きた場合でも、それまでに保存したファイルは残ります。
func (r *GenerateRunner) Run(ctx context.Context, opts Options) error {
	if len(opts.Subjects) == 0 {
		return fmt.Errorf("サブジェクトが指定されていません")
	}

	requests, err := r.buildRequests(ctx, opts)
	if err != nil {
		return err
	}

	outputPaths, err := asset.OutputPaths(opts.OutputPath, len(opts.Subjects))
	if err != nil {
		return fmt.Errorf("出力パスの決定に失敗しました: %w", err)
	}

	return r.dispatch(ctx, opts.Subjects, requests, outputPaths)
}

// buildRequests はテンプレート・参照画像・編集元を読み込み、全サブジェクト分の
// リクエストを組み立てます。ここで失敗した場合、リモート呼び出しは一度も起きません。
func (r *GenerateRunner) buildRequests(ctx context.Context, opts Options) ([]*domain.GenerationRequest, error) {
	mode := domain.ModeGenerate
	if opts.EditPath != "" {
		mode = domain.ModeEdit
	}

	var tpl *domain.StyleTemplate
	if opts.StylePath != "" {
		var err error
		tpl, err = r.resolver.Resolve(ctx, opts.StylePath)
		if err != nil {
			return nil, err
		}
	}

	var editSource []byte
	var editSourceMime string
	if mode == domain.ModeEdit {
		var err error
		editSource, editSourceMime, err = r.loader.LoadEditSource(ctx, opts.EditPath)
		if err != nil {
			return nil, err
		}
	}

	refs, err := r.loader.LoadReferences(ctx, opts.RefPaths, asset.ReferenceLimit(mode))
	if err != nil {
		return nil, err
	}

	requests := make([]*domain.GenerationRequest, 0, len(opts.Subjects))
	for _, subject := range opts.Subjects {
		prompt := prompts.Build(tpl, subject)
		req, err := generator.BuildRequest(prompt, opts.AspectRatio, refs, mode, editSource, editSourceMime)
		if err != nil {
			return nil, fmt.Errorf("リクエストの組み立てに失敗しました (subject: %q): %w", subject, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// dispatch はリクエストを順番に送信して保存します。
// コンテンツポリシー拒否はそのサブジェクトだけの失敗としてバッチを継続し、
// それ以外の失敗は残りのサブジェクトを破棄して成功数とともに報告します。
func (r *GenerateRunner) dispatch(
	ctx context.Context,
	subjects []string,
	requests []*domain.GenerationRequest,
	outputPaths []string,
) error {
	total := len(subjects)
	succeeded := 0
	blocked := 0

	for i, req := range requests {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("待機中に中断されました (成功: %d/%d 件): %w", succeeded, total, err)
			}
		}

		slog.Info("画像を生成しています",
			"index", i+1,
			"total", total,
			"subject", subjects[i],
			"aspect_ratio", req.AspectRatio,
		)

		result, err := r.generator.Generate(ctx, req)
		if err != nil {
			if errors.Is(err, domain.ErrContentBlocked) {
				slog.Error("コンテンツポリシーにより拒否されたため、このサブジェクトを飛ばします",
					"index", i+1,
					"subject", subjects[i],
					"error", err,
				)
				blocked++
				continue
			}
			return fmt.Errorf("画像生成を中断しました (成功: %d/%d 件, subject: %q): %w",
				succeeded, total, subjects[i], err)
		}

		if result.Text != "" {
			slog.Info("モデルからの補足テキスト", "subject", subjects[i], "text", result.Text)
		}

		if err := r.publisher.Publish(ctx, outputPaths[i], result); err != nil {
			return fmt.Errorf("画像生成を中断しました (成功: %d/%d 件, subject: %q): %w",
				succeeded, total, subjects[i], err)
		}
		succeeded++
	}

	if blocked > 0 {
		return fmt.Errorf("%d/%d 件のみ成功しました (%d件はポリシー拒否): %w",
			succeeded, total, blocked, domain.ErrContentBlocked)
	}

	slog.Info("すべての画像を保存しました", "count", succeeded)
	return nil
}
