package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/gemini-image-gen/internal/builder"
	"github.com/shouni/gemini-image-gen/internal/config"
	"github.com/shouni/gemini-image-gen/pkg/runner"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// opts は、コマンドラインフラグの値を集約する器なのだ。
var opts config.GenerateOptions

// rootCmd は、出力先と被写体を受け取って画像生成を実行するメインコマンドなのだ。
var rootCmd = &cobra.Command{
	Use:   "gemini-image-gen <output_path> <subject> [subject...]",
	Short: "Gemini APIで被写体ごとの画像を生成・編集するのだ。",
	Long: `スタイルテンプレート（Markdown）と参照画像を組み合わせて、被写体ごとに画像を生成するのだ。
被写体を複数並べると連番付きファイル（output_1.png, output_2.png ...）で一括生成するのだよ。
--edit で既存画像を指定すると、生成ではなく編集モードで動くのだ。`,
	Example: `  # 単発生成
  gemini-image-gen output.png "A minimal geometric cube"

  # スタイルテンプレートを使って3枚まとめて生成
  gemini-image-gen output.png "cube" "sphere" "pyramid" --style assets/styles/emerald_glass_3d.md

  # 既存画像の編集
  gemini-image-gen output.png "Change background to gradient" --edit input.png

  # 参照画像でスタイルを固定
  gemini-image-gen output.png "database icon" --ref examples/1.png --ref examples/2.png`,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
	PreRunE:      preRunAppE,
	RunE:         generateCommand,
}

// addAppFlags は、画像生成コマンドのフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- スタイル・参照入力関連 ---
	rootCmd.Flags().StringVarP(&opts.StyleFile, "style", "s", "", "スタイルテンプレート（{subject} プレースホルダー入りMarkdown）のパスなのだ。")
	rootCmd.Flags().StringVarP(&opts.EditFile, "edit", "e", "", "編集モード: 加工したい既存画像のパスなのだ。指定すると生成モードは無効になるのだ。")
	rootCmd.Flags().StringArrayVarP(&opts.References, "ref", "r", nil, "スタイル参照画像のパスやURL（繰り返し指定できるのだ）。")

	// --- AIモデル・挙動設定 ---
	rootCmd.Flags().StringVarP(&opts.AspectRatio, "aspect", "a", "", "出力アスペクト比（1:1, 3:4, 4:3, 4:5, 5:4, 9:16, 16:9, 21:9）なのだ。")
	rootCmd.Flags().StringVar(&opts.ImageModel, "image-model", "", "使用する Gemini 画像モデル名なのだ。")
	rootCmd.Flags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "参照画像ダウンロードのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_AI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// generateCommand は、root コマンドの実行ロジック本体なのだ。
// 出力先・被写体・フラグ群から実行計画を組み立てて、ランナーに委ねるのだ。
func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	outputPath := args[0]
	subjects := args[1:]

	// 1. 環境変数から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.Options = opts

	// 2. アスペクト比はフラグ > 環境変数 > 既定値の順で決めるのだ
	aspect := opts.AspectRatio
	if aspect == "" {
		aspect = cfg.DefaultAspectRatio
	}

	slog.Info("画像生成を開始するのだ！",
		"output", outputPath,
		"subjects", len(subjects),
		"aspect_ratio", aspect,
		"edit_mode", opts.EditFile != "")

	// 3. 依存を組み立ててランナーを起動するのだ
	run, err := builder.BuildGenerateRunner(ctx, cfg, outputPath)
	if err != nil {
		return fmt.Errorf("実行環境の構築に失敗したのだ: %w", err)
	}

	if err := run.Run(ctx, runner.Options{
		OutputPath:  outputPath,
		Subjects:    subjects,
		StylePath:   opts.StyleFile,
		EditPath:    opts.EditFile,
		RefPaths:    opts.References,
		AspectRatio: aspect,
	}); err != nil {
		return err
	}

	slog.Info("すべての画像生成が完了したのだ！")
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	// .env はあれば読む。無くても環境変数が揃っていれば動くのだ。
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(upscaleCmd)
}
