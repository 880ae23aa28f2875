package cloudfront

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/gobwas/glob"
)

// DefaultPathPattern はデフォルトキャッシュビヘイビアを表す表示用パターン
const DefaultPathPattern = "Default (*)"

// RouteCheck は再生エンドポイントがどのキャッシュビヘイビアで処理されるかの確認結果
type RouteCheck struct {
	Endpoint    string
	Path        string
	PathPattern string // 一致したパスパターン（デフォルトの場合は DefaultPathPattern）
	OriginId    string
	Default     bool // どのキャッシュビヘイビアにも一致せずデフォルトで処理されるか
}

type compiledBehavior struct {
	pattern  string
	originId string
	matcher  glob.Glob
}

// Router はキャッシュビヘイビアの評価順にリクエストパスを照合する
type Router struct {
	behaviors       []compiledBehavior
	defaultOriginId string
}

// NewRouter はディストリビューション設定からRouterを作成します
func NewRouter(cfg *types.DistributionConfig) (*Router, error) {
	router := &Router{}
	if cfg.DefaultCacheBehavior != nil {
		router.defaultOriginId = aws.ToString(cfg.DefaultCacheBehavior.TargetOriginId)
	}
	if cfg.CacheBehaviors == nil {
		return router, nil
	}

	for _, behavior := range cfg.CacheBehaviors.Items {
		pattern := aws.ToString(behavior.PathPattern)
		matcher, err := compilePathPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("パスパターン '%s' を解釈できません: %w", pattern, err)
		}
		router.behaviors = append(router.behaviors, compiledBehavior{
			pattern:  pattern,
			originId: aws.ToString(behavior.TargetOriginId),
			matcher:  matcher,
		})
	}
	return router, nil
}

// Match はリクエストパスに最初に一致するキャッシュビヘイビアを返します
// CloudFrontと同様にリストの先頭から評価し、一致しない場合はデフォルトビヘイビアを返します
func (r *Router) Match(path string) RouteCheck {
	for _, behavior := range r.behaviors {
		if behavior.matcher.Match(path) {
			return RouteCheck{Path: path, PathPattern: behavior.pattern, OriginId: behavior.originId}
		}
	}
	return RouteCheck{Path: path, PathPattern: DefaultPathPattern, OriginId: r.defaultOriginId, Default: true}
}

// CheckRoutes は再生エンドポイントごとに処理されるキャッシュビヘイビアを確認します
func CheckRoutes(cfg *types.DistributionConfig, endpoints []string) ([]RouteCheck, error) {
	router, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}

	checks := make([]RouteCheck, 0, len(endpoints))
	for _, endpoint := range endpoints {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("%w: URL '%s' を解析できません: %v", ErrMalformedEndpoint, endpoint, err)
		}
		check := router.Match(u.Path)
		check.Endpoint = endpoint
		checks = append(checks, check)
	}
	return checks, nil
}

// compilePathPattern はCloudFrontのパスパターンをglobに変換します
// "*" は "/" を含む任意の文字列、"?" は任意の1文字に一致し、それ以外は文字どおりに扱います
func compilePathPattern(pattern string) (glob.Glob, error) {
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}

	var b strings.Builder
	start := 0
	for i, r := range pattern {
		if r != '*' && r != '?' {
			continue
		}
		b.WriteString(glob.QuoteMeta(pattern[start:i]))
		b.WriteRune(r)
		start = i + 1
	}
	b.WriteString(glob.QuoteMeta(pattern[start:]))

	return glob.Compile(b.String())
}
