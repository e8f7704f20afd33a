package domain

import (
	"fmt"
	"strings"
)

// AspectRatio は出力画像の縦横比です。閉じた列挙のみを許容します。
type AspectRatio string

const (
	AspectSquare         AspectRatio = "1:1"
	AspectPortrait34     AspectRatio = "3:4"
	AspectLandscape43    AspectRatio = "4:3"
	AspectPortrait45     AspectRatio = "4:5"
	AspectLandscape54    AspectRatio = "5:4"
	AspectPortraitWide   AspectRatio = "9:16"
	AspectLandscapeWide  AspectRatio = "16:9"
	AspectLandscapeUltra AspectRatio = "21:9"
)

// SupportedAspectRatios は受け付ける縦横比の一覧です。表示順も兼ねます。
var SupportedAspectRatios = []AspectRatio{
	AspectSquare,
	AspectPortrait34,
	AspectLandscape43,
	AspectPortrait45,
	AspectLandscape54,
	AspectPortraitWide,
	AspectLandscapeWide,
	AspectLandscapeUltra,
}

// ParseAspectRatio は文字列を検証して AspectRatio に変換します。
// 列挙外の値は ErrInvalidAspectRatio を返し、リモート呼び出し前に弾きます。
func ParseAspectRatio(s string) (AspectRatio, error) {
	for _, ratio := range SupportedAspectRatios {
		if AspectRatio(s) == ratio {
			return ratio, nil
		}
	}
	return "", fmt.Errorf("%w: %q (有効な値: %s)", ErrInvalidAspectRatio, s, aspectRatioList())
}

func aspectRatioList() string {
	values := make([]string, 0, len(SupportedAspectRatios))
	for _, ratio := range SupportedAspectRatios {
		values = append(values, string(ratio))
	}
	return strings.Join(values, ", ")
}
