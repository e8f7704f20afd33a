package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

func TestBuildRequest(t *testing.T) {
	refs := []domain.ReferenceImage{
		{Path: "a.png", Data: []byte("a"), MimeType: "image/png", Ordinal: 0},
	}

	t.Run("サポートする縦横比はすべて受理される", func(t *testing.T) {
		for _, ratio := range domain.SupportedAspectRatios {
			req, err := BuildRequest("prompt", string(ratio), nil, domain.ModeGenerate, nil, "")
			require.NoError(t, err, "ratio: %s", ratio)
			assert.Equal(t, ratio, req.AspectRatio)
		}
	})

	t.Run("列挙外の縦横比は ErrInvalidAspectRatio", func(t *testing.T) {
		_, err := BuildRequest("prompt", "7:3", nil, domain.ModeGenerate, nil, "")

		assert.ErrorIs(t, err, domain.ErrInvalidAspectRatio)
	})

	t.Run("生成モードでは編集元画像を持てない", func(t *testing.T) {
		_, err := BuildRequest("prompt", "1:1", nil, domain.ModeGenerate, []byte("img"), "image/png")

		assert.Error(t, err)
	})

	t.Run("編集モードには編集元画像が必須", func(t *testing.T) {
		_, err := BuildRequest("prompt", "1:1", nil, domain.ModeEdit, nil, "")

		assert.Error(t, err)
	})

	t.Run("未知のモードは拒否される", func(t *testing.T) {
		_, err := BuildRequest("prompt", "1:1", nil, domain.Mode("remix"), nil, "")

		assert.Error(t, err)
	})

	t.Run("入力がそのままリクエストへ移送される", func(t *testing.T) {
		req, err := BuildRequest("a gear icon", "16:9", refs, domain.ModeEdit, []byte("base"), "image/png")

		require.NoError(t, err)
		assert.Equal(t, "a gear icon", req.Prompt)
		assert.Equal(t, domain.AspectLandscapeWide, req.AspectRatio)
		assert.Equal(t, refs, req.References)
		assert.Equal(t, domain.ModeEdit, req.Mode)
		assert.Equal(t, []byte("base"), req.EditSource)
		assert.Equal(t, "image/png", req.EditSourceMime)
	})
}
