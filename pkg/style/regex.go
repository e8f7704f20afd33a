package style

import "regexp"

var (
	// TemplateHeadingRegex は "## Prompt Template" や "# Template" 形式の見出し行に一致します。
	TemplateHeadingRegex = regexp.MustCompile(`(?i)^#{1,6}\s*(?:Prompt\s*)?Template\b`)

	// HeadingRegex は任意レベルの見出し行を特定します。セクションの終端判定に使います。
	HeadingRegex = regexp.MustCompile(`^#{1,6}\s`)

	// FenceRegex はフェンスコードブロックの開始行（言語タグ付きを含む）に一致します。
	FenceRegex = regexp.MustCompile("^```")

	// PlaceholderRegex は {subject} プレースホルダの表記ゆれに一致します。
	PlaceholderRegex = regexp.MustCompile(`(?i)\[YOUR SUBJECT[^\]]*\]|\[SUBJECT\]|\{subject\}`)
)
