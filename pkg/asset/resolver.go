package asset

import (
	"github.com/shouni/go-utils/urlpath"
)

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/image.png", 1 -> "path/to/image_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// OutputPaths は出力ベースパスとサブジェクト数から出力先パス列を決定します。
// サブジェクトが1件ならベースパスをそのまま、複数なら拡張子の前に
// `_<1始まりの連番>` を挿入したパスを件数分返します。
func OutputPaths(basePath string, count int) ([]string, error) {
	if count <= 1 {
		return []string{basePath}, nil
	}
	paths := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		indexed, err := GenerateIndexedPath(basePath, i)
		if err != nil {
			return nil, err
		}
		paths = append(paths, indexed)
	}
	return paths, nil
}
