package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-gen/pkg/upscale"

	"github.com/spf13/cobra"
)

var (
	upscaleScale  int
	upscaleOutput string
)

// upscaleCmd は、生成済みの画像を高品質な補間で拡大するサブコマンドなのだ。
// こちらは完全にローカル処理なので、APIキーは不要なのだ。
var upscaleCmd = &cobra.Command{
	Use:   "upscale <input> [input...]",
	Short: "画像を高品質な補間で拡大するのだ。",
	Long: `生成済みの画像を Catmull-Rom 補間で拡大するのだ。
入力を複数並べると <元の名前>_x<倍率> 形式のファイル名で並列に保存するのだよ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: upscaleCommand,
}

// init は、upscale コマンド固有のフラグを定義するのだ。
func init() {
	upscaleCmd.Flags().IntVarP(&upscaleScale, "scale", "x", upscale.DefaultScale, "拡大倍率なのだ。")
	upscaleCmd.Flags().StringVarP(&upscaleOutput, "output", "o", "", "出力先パス（入力が1枚のときだけ指定できるのだ）。")
}

// upscaleCommand は、upscale サブコマンドの実行ロジック本体なのだ。
func upscaleCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if upscaleScale < 1 {
		return fmt.Errorf("拡大倍率は1以上を指定してほしいのだ: %d", upscaleScale)
	}

	slog.Info("画像の拡大を開始するのだ！", "inputs", len(args), "scale", upscaleScale)

	if err := upscale.RunAll(ctx, args, upscaleScale, upscaleOutput); err != nil {
		return fmt.Errorf("画像の拡大に失敗したのだ: %w", err)
	}

	slog.Info("すべての拡大が完了したのだ！")
	return nil
}
