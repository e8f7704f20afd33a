package domain

// Mode は生成リクエストの動作モードです。
type Mode string

const (
	// ModeGenerate はプロンプトから新規に画像を生成するモードです。
	ModeGenerate Mode = "generate"
	// ModeEdit は既存画像を編集指示で加工するモードです。
	ModeEdit Mode = "edit"
)

// StyleTemplate はスタイルテンプレート文書を解析した結果です。
// 一度構築したら変更しません。
type StyleTemplate struct {
	// RawText は読み込んだ文書全体のテキストです。
	RawText string
	// PromptBody は "Prompt Template" セクションのフェンスコードブロックの中身です。
	PromptBody string
	// HasPlaceholder は PromptBody が {subject} トークンを含むかどうかです。
	HasPlaceholder bool
}

// ReferenceImage は生成スタイルを誘導するための参照画像です。
// Ordinal が小さいほど影響が強いため、並び順は入力のまま保持します。
type ReferenceImage struct {
	Path     string
	Data     []byte
	MimeType string
	Ordinal  int
}

// GenerationRequest は1サブジェクト分のリモート呼び出し内容です。
// Mode が ModeEdit のときは EditSource が必須、ModeGenerate のときは空でなければなりません。
type GenerationRequest struct {
	Prompt         string
	AspectRatio    AspectRatio
	References     []ReferenceImage
	Mode           Mode
	EditSource     []byte
	EditSourceMime string
}

// GenerationResult はリモートサービスが返した1枚分の成果物です。
type GenerationResult struct {
	// ImageData はそのまま保存すべき画像バイト列です。再エンコードしません。
	ImageData []byte
	MimeType  string
	// Text は画像に添えられた説明文です。ログ出力のみで、ファイルには書きません。
	Text string
}

// PartKind はレスポンスペイロードの種別タグです。
type PartKind string

const (
	PartKindImage PartKind = "image"
	PartKindText  PartKind = "text"
)

// ResponsePart はリモートレスポンスの1パートを閉じたタグ付き表現に落としたものです。
// Kind が PartKindImage のとき Data/MimeType、PartKindText のとき Text を使います。
type ResponsePart struct {
	Kind     PartKind
	Data     []byte
	MimeType string
	Text     string
}
