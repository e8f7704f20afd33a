package publisher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

// Writer は出力先への書き込み窓口です。ローカル用の LocalWriter のほか、
// go-remote-io の OutputWriter がそのまま満たすため gs:// 出力にも差し替えられます。
type Writer interface {
	Write(ctx context.Context, path string, reader io.Reader, mime string) error
}

// ImagePublisher は生成結果の画像バイト列を出力先へ永続化します。
// バイト列は再エンコードせずそのまま書き込みます。
type ImagePublisher struct {
	writer Writer
}

// NewImagePublisher は ImagePublisher を初期化します。
func NewImagePublisher(writer Writer) *ImagePublisher {
	return &ImagePublisher{writer: writer}
}

// Publish は1件の生成結果を path へ書き込みます。
// 失敗は ErrWriteFailed としてパス付きで報告します。
func (p *ImagePublisher) Publish(ctx context.Context, path string, result *domain.GenerationResult) error {
	if result == nil || len(result.ImageData) == 0 {
		return fmt.Errorf("%w: 書き込む画像データがありません (path: %s)", domain.ErrWriteFailed, path)
	}

	mimeType := result.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}

	if err := p.writer.Write(ctx, path, bytes.NewReader(result.ImageData), mimeType); err != nil {
		return fmt.Errorf("%w (path: %s): %v", domain.ErrWriteFailed, path, err)
	}

	slog.Info("画像を保存しました", "path", path, "bytes", len(result.ImageData))
	return nil
}
