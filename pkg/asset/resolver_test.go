package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPaths(t *testing.T) {
	t.Run("1件ならベースパスをそのまま使う", func(t *testing.T) {
		paths, err := OutputPaths("out/icon.png", 1)

		require.NoError(t, err)
		assert.Equal(t, []string{"out/icon.png"}, paths)
	})

	t.Run("複数件は拡張子の前に1始まりの連番が入る", func(t *testing.T) {
		paths, err := OutputPaths("out/icon.png", 3)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"out/icon_1.png",
			"out/icon_2.png",
			"out/icon_3.png",
		}, paths)
	})
}
