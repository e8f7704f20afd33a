package domain

import "errors"

// パイプラインが区別して扱う失敗の種類です。呼び出し側は errors.Is で判定します。
// ローカル検証系（テンプレート・参照・縦横比・編集元）はリモート呼び出し前に検出されます。
var (
	// ErrTemplateNotFound はスタイルテンプレートファイルが存在しない場合のエラーです。
	ErrTemplateNotFound = errors.New("スタイルテンプレートが見つかりません")
	// ErrTemplateMalformed はテンプレートにセクションやコードブロックが無い場合のエラーです。
	ErrTemplateMalformed = errors.New("スタイルテンプレートの形式が不正です")
	// ErrReferenceNotFound は参照画像ファイルが存在しない場合のエラーです。
	ErrReferenceNotFound = errors.New("参照画像が見つかりません")
	// ErrReferenceInvalid は画像として読めないデータだった場合のエラーです。
	ErrReferenceInvalid = errors.New("画像として扱えないデータです")
	// ErrEditSourceNotFound は編集元画像が存在しない場合のエラーです。
	ErrEditSourceNotFound = errors.New("編集元画像が見つかりません")
	// ErrInvalidAspectRatio はサポート外の縦横比が指定された場合のエラーです。
	ErrInvalidAspectRatio = errors.New("サポートされていない縦横比です")

	// ErrUnauthorized は認証情報が欠落・無効な場合のエラーです。リトライしません。
	ErrUnauthorized = errors.New("APIの認証に失敗しました")
	// ErrRateLimited はレート制限応答です。ディスパッチャが再試行します。
	ErrRateLimited = errors.New("レート制限に達しました")
	// ErrQuotaExceeded は再試行を使い切った後の確定エラーです。
	ErrQuotaExceeded = errors.New("リトライ上限までレート制限が解消しませんでした")
	// ErrContentBlocked はポリシー起因の拒否です。そのサブジェクトのみ失敗扱いにします。
	ErrContentBlocked = errors.New("コンテンツポリシーによりリクエストが拒否されました")
	// ErrServiceError はその他のリモート障害です。リトライせず即座に報告します。
	ErrServiceError = errors.New("画像生成サービスでエラーが発生しました")

	// ErrWriteFailed は出力ファイルの書き込み失敗です。
	ErrWriteFailed = errors.New("出力ファイルの書き込みに失敗しました")
)
