package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

func TestBuild(t *testing.T) {
	t.Run("プレースホルダはすべての出現箇所が置換される", func(t *testing.T) {
		tpl := &domain.StyleTemplate{
			PromptBody:     "an icon of {subject}, with a tiny {subject} motif in the corner",
			HasPlaceholder: true,
		}

		got := Build(tpl, "rocket")

		assert.Equal(t, "an icon of rocket, with a tiny rocket motif in the corner", got)
	})

	t.Run("置換は1パスのみで再帰しない", func(t *testing.T) {
		tpl := &domain.StyleTemplate{
			PromptBody:     "draw {subject}",
			HasPlaceholder: true,
		}

		got := Build(tpl, "a literal {subject} token")

		assert.Equal(t, "draw a literal {subject} token", got)
	})

	t.Run("プレースホルダが無い場合はサブジェクトを前置する", func(t *testing.T) {
		tpl := &domain.StyleTemplate{
			PromptBody:     "clean flat style, white background",
			HasPlaceholder: false,
		}

		got := Build(tpl, "rocket")

		assert.Equal(t, "rocket clean flat style, white background", got)
	})

	t.Run("テンプレートが無ければサブジェクトがそのままプロンプトになる", func(t *testing.T) {
		assert.Equal(t, "a red cube", Build(nil, "a red cube"))
	})

	t.Run("同じ入力からは常に同じプロンプトが得られる", func(t *testing.T) {
		tpl := &domain.StyleTemplate{
			PromptBody:     "render {subject} in amber glass",
			HasPlaceholder: true,
		}

		first := Build(tpl, "gear")
		second := Build(tpl, "gear")

		assert.Equal(t, first, second)
	})
}

func TestBuildAll(t *testing.T) {
	t.Run("サブジェクトの順序がそのまま保たれる", func(t *testing.T) {
		tpl := &domain.StyleTemplate{
			PromptBody:     "icon of {subject}",
			HasPlaceholder: true,
		}

		got := BuildAll(tpl, []string{"cube", "sphere", "pyramid"})

		assert.Equal(t, []string{"icon of cube", "icon of sphere", "icon of pyramid"}, got)
	})
}
