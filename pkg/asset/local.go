package asset

import (
	"context"
	"io"
	"os"
)

// LocalReader はローカルファイルシステム用の Reader 実装です。
// gs:// を含まない実行では GCS クライアントを初期化せずに済むように、
// go-remote-io のリーダーと差し替え可能な形にしてあります。
type LocalReader struct{}

// NewLocalReader は LocalReader を返します。
func NewLocalReader() *LocalReader {
	return &LocalReader{}
}

// Open は path をローカルファイルとして開きます。
func (*LocalReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}
