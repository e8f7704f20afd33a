package generator

import (
	"context"
	"errors"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockReply struct {
	resp *gemini.Response
	err  error
}

// mockImageModel は GenerateWithParts の応答をキューで差し替えるモックです。
// キューが尽きたら最後の応答を繰り返します。
type mockImageModel struct {
	replies []mockReply

	calls     int
	lastModel string
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions
	prompts   []string
}

func (m *mockImageModel) GenerateWithParts(_ context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if len(parts) > 0 {
		m.prompts = append(m.prompts, parts[0].Text)
	}

	if len(m.replies) == 0 {
		return nil, errors.New("mockImageModel: 応答が設定されていません")
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply.resp, reply.err
}

// imageResponse は画像1枚だけを含む正常応答を組み立てます。
func imageResponse(data []byte, mimeType string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
				},
			}},
		},
	}
}

// textThenImageResponse はテキストパートを前置した応答を組み立てます。
func textThenImageResponse(texts []string, data []byte) *gemini.Response {
	parts := make([]*genai.Part, 0, len(texts)+1)
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}})
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		},
	}
}

// blockedResponse はプロンプト段階でポリシー拒否された応答を組み立てます。
func blockedResponse(reason string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReason(reason),
			},
		},
	}
}

// textOnlyResponse は画像を含まない応答を組み立てます。finishReason で候補の終了理由を指定します。
func textOnlyResponse(text string, finishReason genai.FinishReason) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
				FinishReason: finishReason,
			}},
		},
	}
}
