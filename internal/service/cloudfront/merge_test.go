package cloudfront

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patternMap(entries ...any) *PatternMap {
	m := NewPatternMap()
	for i := 0; i < len(entries); i += 2 {
		m.Set(entries[i].(string), entries[i+1].(PatternOrigin))
	}
	return m
}

func behaviorPatterns(cfg *types.DistributionConfig) []string {
	var patterns []string
	for _, b := range cfg.CacheBehaviors.Items {
		patterns = append(patterns, aws.ToString(b.PathPattern))
	}
	return patterns
}

func existingConfig() *types.DistributionConfig {
	return &types.DistributionConfig{
		Comment: aws.String("hand-authored"),
		Origins: &types.Origins{
			Quantity: aws.Int32(1),
			Items: []types.Origin{
				{Id: aws.String("S3-assets"), DomainName: aws.String("assets.s3.amazonaws.com")},
			},
		},
		CacheBehaviors: &types.CacheBehaviors{
			Quantity: aws.Int32(2),
			Items: []types.CacheBehavior{
				{PathPattern: aws.String("/images/*"), TargetOriginId: aws.String("S3-assets")},
				{PathPattern: aws.String("/api/*"), TargetOriginId: aws.String("S3-assets")},
			},
		},
		DefaultCacheBehavior: &types.DefaultCacheBehavior{TargetOriginId: aws.String("S3-assets")},
	}
}

func TestMergeDistributionConfig_EmptyConfig(t *testing.T) {
	cfg := &types.DistributionConfig{}
	patterns := patternMap("/out/v1/*/grp1/*", PatternOrigin{Domain: testDomain})

	result := MergeDistributionConfig(cfg, patterns, "", nil)

	require.True(t, result.Changed())
	assert.Equal(t, []string{"/out/v1/*/grp1/*"}, result.AddedBehaviors)
	assert.Equal(t, []string{"EMP-abc"}, result.AddedOrigins)

	require.Len(t, cfg.Origins.Items, 1)
	origin := cfg.Origins.Items[0]
	assert.Equal(t, "EMP-abc", aws.ToString(origin.Id))
	assert.Equal(t, testDomain, aws.ToString(origin.DomainName))
	assert.Nil(t, origin.OriginShield)

	require.Len(t, cfg.CacheBehaviors.Items, 1)
	behavior := cfg.CacheBehaviors.Items[0]
	assert.Equal(t, "EMP-abc", aws.ToString(behavior.TargetOriginId))
	assert.False(t, aws.ToBool(behavior.SmoothStreaming))

	assert.Equal(t, int32(1), aws.ToInt32(cfg.CacheBehaviors.Quantity))
	assert.Equal(t, int32(1), aws.ToInt32(cfg.Origins.Quantity))
}

func TestMergeDistributionConfig_NilItemsAreNormalized(t *testing.T) {
	cfg := &types.DistributionConfig{
		Origins:        &types.Origins{Quantity: aws.Int32(0)},
		CacheBehaviors: &types.CacheBehaviors{Quantity: aws.Int32(0)},
	}

	result := MergeDistributionConfig(cfg, NewPatternMap(), "", nil)

	assert.False(t, result.Changed())
	assert.NotNil(t, cfg.Origins.Items)
	assert.NotNil(t, cfg.CacheBehaviors.Items)
	assert.Equal(t, int32(0), aws.ToInt32(cfg.Origins.Quantity))
	assert.Equal(t, int32(0), aws.ToInt32(cfg.CacheBehaviors.Quantity))
}

func TestMergeDistributionConfig_PrependsNewBehaviorsAndKeepsExisting(t *testing.T) {
	cfg := existingConfig()
	patterns := patternMap(
		"/out/v1/*/a/*", PatternOrigin{Domain: testDomain},
		"/out/v1/*/b/*", PatternOrigin{Domain: testDomain},
	)

	MergeDistributionConfig(cfg, patterns, "", nil)

	// 後から処理したパターンほど先頭に来る。既存の順序は維持される
	assert.Equal(t, []string{"/out/v1/*/b/*", "/out/v1/*/a/*", "/images/*", "/api/*"}, behaviorPatterns(cfg))
	assert.Equal(t, "hand-authored", aws.ToString(cfg.Comment))
	assert.Equal(t, "S3-assets", aws.ToString(cfg.Origins.Items[0].Id))
}

func TestMergeDistributionConfig_OriginReuse(t *testing.T) {
	cfg := existingConfig()
	patterns := patternMap(
		"/out/v1/*/a/*", PatternOrigin{Domain: testDomain},
		"/out/v1/*/a/*/index.ism/*", PatternOrigin{Domain: testDomain, SmoothStreaming: true},
	)

	result := MergeDistributionConfig(cfg, patterns, "", nil)

	assert.Equal(t, []string{"EMP-abc"}, result.AddedOrigins)
	require.Len(t, cfg.Origins.Items, 2)
	assert.Equal(t, "EMP-abc", aws.ToString(cfg.Origins.Items[1].Id))

	assert.Equal(t, "EMP-abc", aws.ToString(cfg.CacheBehaviors.Items[0].TargetOriginId))
	assert.Equal(t, "EMP-abc", aws.ToString(cfg.CacheBehaviors.Items[1].TargetOriginId))
	assert.True(t, aws.ToBool(cfg.CacheBehaviors.Items[0].SmoothStreaming))
	assert.Equal(t, int32(4), aws.ToInt32(cfg.CacheBehaviors.Quantity))
	assert.Equal(t, int32(2), aws.ToInt32(cfg.Origins.Quantity))
}

func TestMergeDistributionConfig_ReusesExistingOriginByDomain(t *testing.T) {
	cfg := existingConfig()
	cfg.Origins.Items = append(cfg.Origins.Items, types.Origin{
		Id: aws.String("hand-made-emp"), DomainName: aws.String(testDomain),
	})
	cfg.Origins.Quantity = aws.Int32(2)

	result := MergeDistributionConfig(cfg, patternMap("/out/v1/*/a/*", PatternOrigin{Domain: testDomain}), "", nil)

	assert.Empty(t, result.AddedOrigins)
	assert.Len(t, cfg.Origins.Items, 2)
	assert.Equal(t, "hand-made-emp", aws.ToString(cfg.CacheBehaviors.Items[0].TargetOriginId))
}

func TestMergeDistributionConfig_Idempotent(t *testing.T) {
	cfg := existingConfig()
	patterns := patternMap(
		"/out/v1/*/a/*", PatternOrigin{Domain: testDomain},
		"/out/v1/*/b/*", PatternOrigin{Domain: "xyz.mediapackage.us-east-1.amazonaws.com"},
	)

	first := MergeDistributionConfig(cfg, patterns, "us-east-1", nil)
	require.True(t, first.Changed())
	behaviorsAfterFirst := behaviorPatterns(cfg)

	second := MergeDistributionConfig(cfg, patterns, "us-east-1", nil)

	assert.False(t, second.Changed())
	assert.Empty(t, second.AddedBehaviors)
	assert.Empty(t, second.AddedOrigins)
	assert.ElementsMatch(t, []string{"/out/v1/*/a/*", "/out/v1/*/b/*"}, second.ExistingPatterns)
	assert.Equal(t, behaviorsAfterFirst, behaviorPatterns(cfg))
	assert.Equal(t, int32(3), aws.ToInt32(cfg.Origins.Quantity))
}

func TestMergeDistributionConfig_RecomputesStaleQuantities(t *testing.T) {
	cfg := existingConfig()
	cfg.CacheBehaviors.Quantity = aws.Int32(99)
	cfg.Origins.Quantity = aws.Int32(42)

	MergeDistributionConfig(cfg, patternMap("/out/v1/*/a/*", PatternOrigin{Domain: testDomain}), "", nil)

	assert.Equal(t, int32(3), aws.ToInt32(cfg.CacheBehaviors.Quantity))
	assert.Equal(t, int32(2), aws.ToInt32(cfg.Origins.Quantity))
}

func TestMergeDistributionConfig_OriginShield(t *testing.T) {
	tests := []struct {
		name       string
		region     string
		wantShield bool
		wantRegion string
	}{
		{name: "enabled", region: "us-east-1", wantShield: true, wantRegion: "us-east-1"},
		{name: "trimmed", region: "  eu-west-1 ", wantShield: true, wantRegion: "eu-west-1"},
		{name: "empty", region: ""},
		{name: "blank", region: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &types.DistributionConfig{}
			MergeDistributionConfig(cfg, patternMap("/out/v1/*/a/*", PatternOrigin{Domain: testDomain}), tt.region, nil)

			shield := cfg.Origins.Items[0].OriginShield
			if !tt.wantShield {
				assert.Nil(t, shield)
				return
			}
			require.NotNil(t, shield)
			assert.True(t, aws.ToBool(shield.Enabled))
			assert.Equal(t, tt.wantRegion, aws.ToString(shield.OriginShieldRegion))
		})
	}
}

func TestNewOrigin_FieldValues(t *testing.T) {
	origin := newOrigin("EMP-abc", testDomain, "")

	assert.Equal(t, "", aws.ToString(origin.OriginPath))
	assert.Equal(t, int32(0), aws.ToInt32(origin.CustomHeaders.Quantity))
	assert.Equal(t, int32(3), aws.ToInt32(origin.ConnectionAttempts))
	assert.Equal(t, int32(10), aws.ToInt32(origin.ConnectionTimeout))

	custom := origin.CustomOriginConfig
	require.NotNil(t, custom)
	assert.Equal(t, int32(80), aws.ToInt32(custom.HTTPPort))
	assert.Equal(t, int32(443), aws.ToInt32(custom.HTTPSPort))
	assert.Equal(t, types.OriginProtocolPolicy("https-only"), custom.OriginProtocolPolicy)
	assert.Equal(t, int32(3), aws.ToInt32(custom.OriginSslProtocols.Quantity))
	assert.Equal(t, []types.SslProtocol{"TLSv1", "TLSv1.1", "TLSv1.2"}, custom.OriginSslProtocols.Items)
	assert.Equal(t, int32(30), aws.ToInt32(custom.OriginReadTimeout))
	assert.Equal(t, int32(5), aws.ToInt32(custom.OriginKeepaliveTimeout))
}

func TestNewCacheBehavior_FieldValues(t *testing.T) {
	behavior := newCacheBehavior("/out/v1/*/a/*/index.ism/*", "EMP-abc", true)

	assert.Equal(t, "/out/v1/*/a/*/index.ism/*", aws.ToString(behavior.PathPattern))
	assert.Equal(t, "EMP-abc", aws.ToString(behavior.TargetOriginId))
	assert.False(t, aws.ToBool(behavior.TrustedSigners.Enabled))
	assert.Equal(t, int32(0), aws.ToInt32(behavior.TrustedSigners.Quantity))
	assert.Equal(t, types.ViewerProtocolPolicy("redirect-to-https"), behavior.ViewerProtocolPolicy)

	methods := []types.Method{"HEAD", "GET", "OPTIONS"}
	assert.Equal(t, int32(3), aws.ToInt32(behavior.AllowedMethods.Quantity))
	assert.Equal(t, methods, behavior.AllowedMethods.Items)
	assert.Equal(t, int32(3), aws.ToInt32(behavior.AllowedMethods.CachedMethods.Quantity))
	assert.Equal(t, methods, behavior.AllowedMethods.CachedMethods.Items)

	assert.True(t, aws.ToBool(behavior.SmoothStreaming))
	assert.False(t, aws.ToBool(behavior.Compress))
	assert.Equal(t, int32(0), aws.ToInt32(behavior.LambdaFunctionAssociations.Quantity))
	assert.Equal(t, "", aws.ToString(behavior.FieldLevelEncryptionId))
	assert.Equal(t, "08627262-05a9-4f76-9ded-b50ca2e3a84f", aws.ToString(behavior.CachePolicyId))
}

func TestOriginIdFor(t *testing.T) {
	assert.Equal(t, "EMP-abc", OriginIdFor(testDomain))
	assert.Equal(t, "EMP-localhost", OriginIdFor("localhost"))
}
