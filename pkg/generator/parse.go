package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

const defaultImageMimeType = "image/png"

// parseResponse は生レスポンスを閉じたパート表現に落としてから結果を組み立てます。
// 画像パートが1つも無いレスポンスは失敗です。ポリシー起因の拒否は
// ErrContentBlocked として区別し、ディスパッチャがバッチを継続できるようにします。
func parseResponse(resp *gemini.Response) (*domain.GenerationResult, error) {
	if resp == nil || resp.RawResponse == nil {
		return nil, fmt.Errorf("%w: 空のレスポンスを受け取りました", domain.ErrServiceError)
	}
	raw := resp.RawResponse

	if fb := raw.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("%w (reason: %s)", domain.ErrContentBlocked, fb.BlockReason)
	}
	if len(raw.Candidates) == 0 {
		return nil, fmt.Errorf("%w: レスポンスに候補がありません", domain.ErrServiceError)
	}

	candidate := raw.Candidates[0]
	responseParts := toResponseParts(candidate.Content)

	var texts []string
	for _, part := range responseParts {
		switch part.Kind {
		case domain.PartKindImage:
			return &domain.GenerationResult{
				ImageData: part.Data,
				MimeType:  part.MimeType,
				Text:      strings.Join(texts, "\n"),
			}, nil
		case domain.PartKindText:
			texts = append(texts, part.Text)
		}
	}

	if isBlockedFinish(candidate.FinishReason) {
		return nil, fmt.Errorf("%w (finish_reason: %s)", domain.ErrContentBlocked, candidate.FinishReason)
	}
	return nil, fmt.Errorf("%w: レスポンスに画像データが含まれていません", domain.ErrServiceError)
}

// toResponseParts は genai のパート列を ImagePart / TextPart の閉じた表現へ変換します。
// 型を閉じてからしか画像抽出をしないことで、レスポンス形状の揺れを1箇所に閉じ込めます。
func toResponseParts(content *genai.Content) []domain.ResponsePart {
	if content == nil {
		return nil
	}
	parts := make([]domain.ResponsePart, 0, len(content.Parts))
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		switch {
		case part.InlineData != nil && len(part.InlineData.Data) > 0:
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = defaultImageMimeType
			}
			parts = append(parts, domain.ResponsePart{
				Kind:     domain.PartKindImage,
				Data:     part.InlineData.Data,
				MimeType: mimeType,
			})
		case part.Text != "":
			parts = append(parts, domain.ResponsePart{
				Kind: domain.PartKindText,
				Text: part.Text,
			})
		}
	}
	return parts
}

func isBlockedFinish(reason genai.FinishReason) bool {
	s := strings.ToUpper(string(reason))
	return strings.Contains(s, "SAFETY") || strings.Contains(s, "PROHIBITED") || strings.Contains(s, "BLOCK")
}
