package style

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

// Placeholder はプロンプト本文に埋め込まれるサブジェクトの置換トークンです。
const Placeholder = "{subject}"

const fenceMarker = "```"

// ParseTemplate はスタイルテンプレート文書のテキストを解析して StyleTemplate を構築します。
// "Prompt Template" 見出しのセクションから最初のフェンスコードブロックを取り出し、
// 前後の空白を除いたものをプロンプト本文とします。Markdownライブラリは使わず、
// 行単位の走査だけで処理します。
func ParseTemplate(raw string) (*domain.StyleTemplate, error) {
	lines := strings.Split(raw, "\n")

	sectionStart := -1
	for i, line := range lines {
		if TemplateHeadingRegex.MatchString(strings.TrimSpace(line)) {
			sectionStart = i + 1
			break
		}
	}
	if sectionStart < 0 {
		return nil, fmt.Errorf("%w: \"Prompt Template\" セクションがありません", domain.ErrTemplateMalformed)
	}

	body, err := extractFencedBlock(lines[sectionStart:])
	if err != nil {
		return nil, err
	}

	body = PlaceholderRegex.ReplaceAllString(body, Placeholder)

	return &domain.StyleTemplate{
		RawText:        raw,
		PromptBody:     body,
		HasPlaceholder: strings.Contains(body, Placeholder),
	}, nil
}

// extractFencedBlock はセクション内の最初のフェンスコードブロックの中身を返します。
// 次の見出しが先に現れた場合やブロックが閉じない場合は形式不正です。
func extractFencedBlock(lines []string) (string, error) {
	opened := false
	var block []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !opened {
			if HeadingRegex.MatchString(trimmed) {
				return "", fmt.Errorf("%w: セクション内にコードブロックがありません", domain.ErrTemplateMalformed)
			}
			if FenceRegex.MatchString(trimmed) {
				opened = true
			}
			continue
		}

		if trimmed == fenceMarker {
			body := strings.TrimSpace(strings.Join(block, "\n"))
			if body == "" {
				return "", fmt.Errorf("%w: コードブロックが空です", domain.ErrTemplateMalformed)
			}
			return body, nil
		}
		block = append(block, line)
	}

	if opened {
		return "", fmt.Errorf("%w: コードブロックが閉じていません", domain.ErrTemplateMalformed)
	}
	return "", fmt.Errorf("%w: セクション内にコードブロックがありません", domain.ErrTemplateMalformed)
}
