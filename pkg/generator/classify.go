package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-image-gen/pkg/domain"
)

// classifyRemoteError はリモート呼び出しのエラーをタクソノミーの種別に振り分けます。
// クライアント境界を越えてくるのは文字列化されたエラーなので、
// ステータスコードと代表的なトークンの部分一致で判定します。
func classifyRemoteError(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)

	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "permission"),
		strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)

	default:
		return fmt.Errorf("%w: %v", domain.ErrServiceError, err)
	}
}
