package cloudfront

import (
	"fmt"
	"iter"
	"net/url"

	"empsync/internal/logging"

	"go.uber.org/zap"
)

// PatternOrigin はパスパターンを生成したオリジンの情報
type PatternOrigin struct {
	Domain          string
	SmoothStreaming bool
}

// PatternMap はパスパターンからオリジン情報へのマップ
// 同じパターンを再設定すると値は上書きされるが、反復順は最初に追加された順のまま
type PatternMap struct {
	keys    []string
	entries map[string]PatternOrigin
}

// NewPatternMap は空のPatternMapを作成
func NewPatternMap() *PatternMap {
	return &PatternMap{entries: make(map[string]PatternOrigin)}
}

// Set はパターンに対応するオリジン情報を設定し、上書き前の値を返します
func (m *PatternMap) Set(pattern string, origin PatternOrigin) (previous PatternOrigin, replaced bool) {
	previous, replaced = m.entries[pattern]
	if !replaced {
		m.keys = append(m.keys, pattern)
	}
	m.entries[pattern] = origin
	return previous, replaced
}

// Get はパターンに対応するオリジン情報を返します
func (m *PatternMap) Get(pattern string) (PatternOrigin, bool) {
	origin, ok := m.entries[pattern]
	return origin, ok
}

// Len はパターン数を返します
func (m *PatternMap) Len() int {
	return len(m.keys)
}

// All はパターンとオリジン情報を追加順に列挙します
func (m *PatternMap) All() iter.Seq2[string, PatternOrigin] {
	return func(yield func(string, PatternOrigin) bool) {
		for _, pattern := range m.keys {
			if !yield(pattern, m.entries[pattern]) {
				return
			}
		}
	}
}

// BuildPatternMap は再生エンドポイントURLの一覧から一意なパスパターンのマップを作成します
func BuildPatternMap(endpoints []string, logger *zap.Logger) (*PatternMap, error) {
	logger = logging.OrNop(logger)
	patterns := NewPatternMap()

	for _, endpoint := range endpoints {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("%w: URL '%s' を解析できません: %v", ErrMalformedEndpoint, endpoint, err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("%w: URL '%s' にドメインがありません", ErrMalformedEndpoint, endpoint)
		}

		pathPattern, err := GeneralizePath(u.Path)
		if err != nil {
			return nil, err
		}

		origin := PatternOrigin{Domain: u.Host, SmoothStreaming: pathPattern.SmoothStreaming}
		previous, replaced := patterns.Set(pathPattern.Pattern, origin)
		if replaced && previous.Domain != origin.Domain {
			// 同一パターンで異なるドメインが出現した場合は後勝ち
			logger.Warn("同じパスパターンに異なるオリジンドメインが見つかりました。後のドメインを使用します",
				zap.String("pathPattern", pathPattern.Pattern),
				zap.String("previousDomain", previous.Domain),
				zap.String("domain", origin.Domain))
		}
	}

	logger.Debug("パスパターンを導出しました", zap.Int("count", patterns.Len()))
	return patterns, nil
}
