package style

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

// Reader はテンプレート文書の入力元です。go-remote-io の InputReader が満たします。
type Reader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Resolver はスタイルテンプレート文書を読み込んで解析します。
type Resolver struct {
	reader Reader
}

// NewResolver は Resolver を初期化します。
func NewResolver(r Reader) *Resolver {
	return &Resolver{reader: r}
}

// Resolve は path のテンプレート文書を読み込み、解析結果を返します。
// ファイルが存在しない場合は ErrTemplateNotFound、解析できない場合は
// ErrTemplateMalformed を返します。どちらもリモート呼び出し前の失敗です。
func (r *Resolver) Resolve(ctx context.Context, path string) (*domain.StyleTemplate, error) {
	rc, err := r.reader.Open(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s (%v)", domain.ErrTemplateNotFound, path, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗しました (path: %s): %w", path, err)
	}

	tpl, err := ParseTemplate(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w (path: %s)", err, path)
	}

	slog.Info("スタイルテンプレートを読み込みました",
		"path", path,
		"has_placeholder", tpl.HasPlaceholder,
	)
	return tpl, nil
}
