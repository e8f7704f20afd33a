package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
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

type mockHTTPClient struct {
	files   map[string][]byte
	fetches int
}

func (m *mockHTTPClient) FetchBytes(_ context.Context, url string) ([]byte, error) {
	m.fetches++
	data, ok := m.files[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: not found", url)
	}
	return data, nil
}

// pngBytes は http.DetectContentType が image/png と判定する最小のダミーです。
func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
}
