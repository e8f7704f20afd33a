package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockReader struct {
	files map[string][]byte
}

func (m *mockReader) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.files[uri]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", uri, os.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type mockHTTPClient struct{}

func (m *mockHTTPClient) FetchBytes(_ context.Context, url string) ([]byte, error) {
	return nil, fmt.Errorf("fetch %s: not found", url)
}

type mockReply struct {
	resp *gemini.Response
	err  error
}

// mockImageModel は応答をキューで差し替えるモックです。キューが尽きたら最後の応答を繰り返します。
type mockImageModel struct {
	replies []mockReply

	calls    int
	allParts [][]*genai.Part
}

func (m *mockImageModel) GenerateWithParts(_ context.Context, _ string, parts []*genai.Part, _ gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	m.allParts = append(m.allParts, parts)

	if len(m.replies) == 0 {
		return nil, errors.New("mockImageModel: 応答が設定されていません")
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply.resp, reply.err
}

type mockWriter struct {
	writes map[string][]byte
	paths  []string
	failOn string
}

func (m *mockWriter) Write(_ context.Context, path string, reader io.Reader, _ string) error {
	if m.failOn != "" && path == m.failOn {
		return errors.New("disk full")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.writes == nil {
		m.writes = make(map[string][]byte)
	}
	m.writes[path] = data
	m.paths = append(m.paths, path)
	return nil
}

func imageResponse(data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}}},
				},
			}},
		},
	}
}

func blockedResponse(reason string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReason(reason),
			},
		},
	}
}

// pngBytes は http.DetectContentType が image/png と判定する最小のダミーです。
func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
}
