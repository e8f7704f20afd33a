package generator

import (
	"fmt"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

// BuildRequest は最終プロンプトと入力一式から GenerationRequest を組み立てます。
// 純粋関数で、副作用もリモート呼び出しもありません。縦横比が列挙外の場合と、
// モードと編集元画像の整合が取れていない場合はここで失敗し、
// 不正なリクエストがネットワークに出ることはありません。
func BuildRequest(
	prompt string,
	aspect string,
	refs []domain.ReferenceImage,
	mode domain.Mode,
	editSource []byte,
	editSourceMime string,
) (*domain.GenerationRequest, error) {
	ratio, err := domain.ParseAspectRatio(aspect)
	if err != nil {
		return nil, err
	}

	switch mode {
	case domain.ModeGenerate:
		if len(editSource) > 0 {
			return nil, fmt.Errorf("生成モードでは編集元画像を指定できません")
		}
	case domain.ModeEdit:
		if len(editSource) == 0 {
			return nil, fmt.Errorf("編集モードには編集元画像が必要です")
		}
	default:
		return nil, fmt.Errorf("未知のモードです: %q", mode)
	}

	return &domain.GenerationRequest{
		Prompt:         prompt,
		AspectRatio:    ratio,
		References:     refs,
		Mode:           mode,
		EditSource:     editSource,
		EditSourceMime: editSourceMime,
	}, nil
}
