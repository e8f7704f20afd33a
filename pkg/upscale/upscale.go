package upscale

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultScale は拡大倍率の既定値です。
	DefaultScale = 2

	// jpegQuality は JPEG 書き出し時の品質です。
	jpegQuality = 95

	// maxParallel は同時に処理する画像の上限です。
	maxParallel = 4
)

// Upscale は1枚の画像を Catmull-Rom 補間で拡大し、出力先へ保存します。
// 出力フォーマットは出力パスの拡張子（.jpg / .jpeg は JPEG、それ以外は PNG）で決まります。
func Upscale(inputPath, outputPath string, scale int) error {
	if scale < 1 {
		return fmt.Errorf("拡大倍率は1以上を指定してください: %d", scale)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("入力画像の読み込みに失敗しました (path: %s): %w", inputPath, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("画像のデコードに失敗しました (path: %s): %w", inputPath, err)
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	slog.Info("画像を拡大します",
		"input", inputPath,
		"from", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"to", fmt.Sprintf("%dx%d", dst.Bounds().Dx(), dst.Bounds().Dy()))

	buf := new(bytes.Buffer)
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(buf, dst, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(buf, dst)
	}
	if err != nil {
		return fmt.Errorf("拡大画像のエンコードに失敗しました (path: %s): %w", outputPath, err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("拡大画像の保存に失敗しました (path: %s): %w", outputPath, err)
	}

	slog.Info("拡大画像を保存しました", "path", outputPath)
	return nil
}

// OutputPathFor は入力パスと倍率から既定の出力パスを導出します。
// 例: icon.png と倍率2なら icon_x2.png になります。
func OutputPathFor(inputPath string, scale int) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s_x%d%s", stem, scale, ext)
}

// RunAll は複数の画像を並列に拡大します。
// outputPath は入力が1枚のときだけ指定でき、省略時は OutputPathFor の命名になります。
func RunAll(ctx context.Context, inputs []string, scale int, outputPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("入力画像が指定されていません")
	}
	if outputPath != "" && len(inputs) > 1 {
		return fmt.Errorf("出力先の指定（-o）は入力が1枚のときだけ使えます")
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallel)

	for _, in := range inputs {
		in := in // ゴルーチンのクロージャ対策

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out := outputPath
			if out == "" {
				out = OutputPathFor(in, scale)
			}
			return Upscale(in, out, scale)
		})
	}

	return eg.Wait()
}
