package prompts

import (
	"strings"

	"github.com/shouni/gemini-image-gen/pkg/domain"
	"github.com/shouni/gemini-image-gen/pkg/style"
)

// Build はテンプレートとサブジェクトから最終プロンプトを組み立てます。
//
// テンプレートに {subject} がある場合はすべての出現箇所をサブジェクトで
// そのまま置換します（1パスのみ、再帰置換やエスケープはしません）。
// プレースホルダが無いテンプレートでは、サブジェクトを半角スペース1つで
// 本文の前に連結します。テンプレートが無ければサブジェクトがそのまま
// プロンプトになります。純粋関数なので同じ入力は常に同じ結果を返します。
func Build(tpl *domain.StyleTemplate, subject string) string {
	if tpl == nil {
		return subject
	}
	if tpl.HasPlaceholder {
		return strings.ReplaceAll(tpl.PromptBody, style.Placeholder, subject)
	}
	return subject + " " + tpl.PromptBody
}

// BuildAll はサブジェクト列に対して Build を順に適用します。並び順は保持されます。
func BuildAll(tpl *domain.StyleTemplate, subjects []string) []string {
	built := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		built = append(built, Build(tpl, subject))
	}
	return built
}
