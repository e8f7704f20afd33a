package publisher

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalWriter はローカルファイルシステム向けの Writer 実装です。
// 親ディレクトリを作成した上で、一時ファイルへ書いてからリネームします。
// 途中で失敗した場合は書きかけのファイルを残しません。
type LocalWriter struct{}

// NewLocalWriter は LocalWriter を返します。
func NewLocalWriter() *LocalWriter {
	return &LocalWriter{}
}

// Write は reader の内容を path へ書き込みます。mime はローカルでは使いません。
func (*LocalWriter) Write(_ context.Context, path string, reader io.Reader, _ string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".image-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	// リネーム成功後の Remove は ENOENT になるだけなので無視できます。
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
