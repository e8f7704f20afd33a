package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultAspectRatio  = "1:1"
	DefaultMaxAttempts  = 3               // レート制限時の総試行回数
	DefaultRetryDelay   = 2 * time.Second // 再試行の基準待ち時間（試行ごとに倍率が掛かる）
	DefaultRateInterval = 2 * time.Second // バッチ内で連続リクエストを送る間隔

	DefaultCacheTTL             = 5 * time.Minute
	DefaultCacheCleanupInterval = 15 * time.Minute
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey       string
	GeminiImageModel   string
	DefaultAspectRatio string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// APIキーは GEMINI_API_KEY を優先し、無ければ GOOGLE_AI_API_KEY も見るのだ。
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:       envutil.GetEnv("GEMINI_API_KEY", envutil.GetEnv("GOOGLE_AI_API_KEY", "")),
		GeminiImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		DefaultAspectRatio: envutil.GetEnv("IMAGE_ASPECT_RATIO", DefaultAspectRatio),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入力関連
	StyleFile  string   // --style: スタイルテンプレート文書のパス
	EditFile   string   // --edit: 編集元画像のパス（指定で編集モード）
	References []string // --ref: 参照画像パス（繰り返し指定、順序が優先度）

	// 生成挙動
	AspectRatio string // --aspect: 縦横比（未指定なら設定のデフォルト）
	ImageModel  string // --image-model: 画像生成用の Gemini モデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout: 参照画像取得のタイムアウト
}
