package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalTokens(t *testing.T) {
	got := signalTokens("Built 12 Python services in 2023 for the team")

	assert.Contains(t, got, "built")
	assert.Contains(t, got, "python")
	assert.Contains(t, got, "services")
	assert.NotContains(t, got, "12", "纯数字 token 应被过滤")
	assert.NotContains(t, got, "2023")
	assert.NotContains(t, got, "in", "短于 3 个字符的 token 应被过滤")
	assert.NotContains(t, got, "the", "停用词应被过滤")
	assert.NotContains(t, got, "team")
}

func TestSignalTokensEmptyInput(t *testing.T) {
	assert.Empty(t, signalTokens(""))
	assert.Empty(t, signalTokens("  \t  "))
}

func TestCoverageScore(t *testing.T) {
	have := map[string]struct{}{"python": {}, "grpc": {}}

	assert.Equal(t, 100, coverageScore(have, nil), "没有要求即空满足")
	assert.Equal(t, 0, coverageScore(map[string]struct{}{}, map[string]struct{}{"go": {}}))
	assert.Equal(t, 50, coverageScore(have, map[string]struct{}{"python": {}, "kafka": {}}))
	assert.Equal(t, 100, coverageScore(have, map[string]struct{}{"python": {}, "grpc": {}}))
}
