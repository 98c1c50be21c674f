package matcher

import (
	"math"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/parser"
)

// signalTokens 从文本里提取有信息量的 token：
// 长度不小于 3、不是停用词、不是纯数字（年份之类的噪声）
func signalTokens(text string) map[string]struct{} {
	norm := parser.Normalize(text)
	out := make(map[string]struct{}, len(norm.Tokens))
	for _, tok := range norm.Tokens {
		if len([]rune(tok)) < 3 {
			continue
		}
		if _, stop := constants.MatchStopWords[tok]; stop {
			continue
		}
		if allDigits(tok) {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// coverageScore 计算 have 对 want 的覆盖率 ×100。
// want 为空时记满分（没有可核对的要求即空满足）。
func coverageScore(have, want map[string]struct{}) int {
	if len(want) == 0 {
		return 100
	}
	if len(have) == 0 {
		return 0
	}
	hit := 0
	for tok := range want {
		if _, ok := have[tok]; ok {
			hit++
		}
	}
	return ClampScore(int(math.Round(100 * float64(hit) / float64(len(want)))))
}
