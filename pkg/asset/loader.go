package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/gemini-image-kit/pkg/imgutil"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

const (
	// MaxReferenceImages は1リクエストに添付できる画像の総数です。
	MaxReferenceImages = 14
	// MaxEditReferenceImages は編集モードでの参照画像の上限です。
	// 編集元画像が1枠を消費するため、明示参照は13枚までになります。
	MaxEditReferenceImages = 13

	// compressThreshold を超える参照画像は JPEG に再圧縮してから添付します。
	compressThreshold = 4 << 20
	compressQuality   = 85

	cacheKeyRefData = "refdata:"
)

// ReferenceLimit はモードに応じた参照画像の上限枚数を返します。
func ReferenceLimit(mode domain.Mode) int {
	if mode == domain.ModeEdit {
		return MaxEditReferenceImages
	}
	return MaxReferenceImages
}

// Reader はローカルパスや gs:// URI の入力元です。go-remote-io の InputReader が満たします。
type Reader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// HTTPClient は http(s) URL から参照画像を取得するクライアントです。
// go-http-kit の ClientInterface が満たします。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Loader は参照画像と編集元画像を読み込み、リクエストに添付できる形へ整えます。
type Loader struct {
	reader     Reader
	httpClient HTTPClient
	cache      *cache.Cache
}

// NewLoader は Loader を初期化します。cache は nil でも動作します。
func NewLoader(reader Reader, httpClient HTTPClient, c *cache.Cache) *Loader {
	return &Loader{
		reader:     reader,
		httpClient: httpClient,
		cache:      c,
	}
}

// LoadReferences は --ref で指定されたパス列を指定順に読み込みます。
// 並び順がそのまま影響度の優先順位になるため、順序の入れ替えも重複除去もしません。
// limit を超える分は末尾から切り捨て、警告ログで何枚落としたかを知らせます。
// 存在しないファイルは ErrReferenceNotFound で即座に失敗します。
func (l *Loader) LoadReferences(ctx context.Context, paths []string, limit int) ([]domain.ReferenceImage, error) {
	if len(paths) > limit {
		slog.Warn("参照画像が上限を超えているため末尾を切り捨てます",
			"limit", limit,
			"given", len(paths),
			"dropped", len(paths)-limit,
		)
		paths = paths[:limit]
	}

	refs := make([]domain.ReferenceImage, 0, len(paths))
	for i, path := range paths {
		data, mimeType, err := l.loadImageData(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, path)
			}
			return nil, fmt.Errorf("参照画像の読み込みに失敗しました (path: %s): %w", path, err)
		}
		refs = append(refs, domain.ReferenceImage{
			Path:     path,
			Data:     data,
			MimeType: mimeType,
			Ordinal:  i,
		})
	}
	return refs, nil
}

// LoadEditSource は --edit で指定された編集元画像を読み込みます。
// 存在しない場合は ErrEditSourceNotFound を返します。
func (l *Loader) LoadEditSource(ctx context.Context, path string) ([]byte, string, error) {
	data, mimeType, err := l.loadImageData(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", domain.ErrEditSourceNotFound, path)
		}
		return nil, "", fmt.Errorf("編集元画像の読み込みに失敗しました (path: %s): %w", path, err)
	}
	return data, mimeType, nil
}

// loadImageData は1枚分のバイト列とMIMEタイプを返します。
// 画像と判定できないデータは ErrReferenceInvalid、巨大な画像は JPEG に再圧縮します。
func (l *Loader) loadImageData(ctx context.Context, path string) ([]byte, string, error) {
	data, err := l.fetch(ctx, path)
	if err != nil {
		return nil, "", err
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%w (detected: %s)", domain.ErrReferenceInvalid, mimeType)
	}

	if len(data) > compressThreshold {
		if compressed, err := imgutil.CompressToJPEG(data, compressQuality); err == nil {
			slog.Debug("参照画像をJPEGに再圧縮しました",
				"path", path,
				"before", len(data),
				"after", len(compressed),
			)
			data = compressed
			mimeType = "image/jpeg"
		}
	}
	return data, mimeType, nil
}

// fetch はパスのスキームに応じて取得経路を切り替えます。
// http(s) は go-http-kit 経由で取得して同一実行内ではキャッシュし、
// それ以外（ローカルパス・gs://）は Reader に委ねます。
func (l *Loader) fetch(ctx context.Context, path string) ([]byte, error) {
	if isHTTPURL(path) {
		if l.cache != nil {
			if val, ok := l.cache.Get(cacheKeyRefData + path); ok {
				if data, ok := val.([]byte); ok {
					return data, nil
				}
			}
		}
		data, err := l.httpClient.FetchBytes(ctx, path)
		if err != nil {
			return nil, err
		}
		if l.cache != nil {
			l.cache.Set(cacheKeyRefData+path, data, cache.DefaultExpiration)
		}
		return data, nil
	}

	rc, err := l.reader.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func isHTTPURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
