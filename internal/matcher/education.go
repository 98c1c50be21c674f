package matcher

import (
	"math"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// EducationMatcher 教育类别评分器：学历层级序数比较与专业匹配加权组合
type EducationMatcher struct{}

// NewEducationMatcher 创建教育评分器
func NewEducationMatcher() *EducationMatcher {
	return &EducationMatcher{}
}

// Score 计算教育分
func (m *EducationMatcher) Score(candidate *types.CandidateProfile, job *types.JobRequirement) int {
	level := levelCredit(candidate.HighestDegree(), job.PreferredDegreeLevel)
	field := fieldCredit(candidate, job.PreferredField)

	final := constants.WeightEduLevel*float64(level) + constants.WeightEduField*float64(field)
	return ClampScore(int(math.Round(final)))
}

// levelCredit 学历层级序数比较：
// 达到或超过要求得满credit，低一级部分credit，低两级以上低credit，
// 任一侧未知时取中性值（既不奖励也不清零）
func levelCredit(have, want types.DegreeLevel) int {
	if want == types.DegreeUnknown {
		// 没有声明学历要求，空满足
		return constants.LevelCreditFull
	}
	if have == types.DegreeUnknown {
		return constants.LevelCreditNeutral
	}
	switch {
	case have >= want:
		return constants.LevelCreditFull
	case want-have == 1:
		return constants.LevelCreditPartial
	default:
		return constants.LevelCreditLow
	}
}

// fieldCredit 专业匹配：候选人所有专业 token 对期望专业 token 的覆盖率。
// 未声明期望专业时空满足。
func fieldCredit(candidate *types.CandidateProfile, preferredField string) int {
	if strings.TrimSpace(preferredField) == "" {
		return 100
	}

	var fields strings.Builder
	for _, e := range candidate.EducationEntries {
		fields.WriteString(e.FieldOfStudy)
		fields.WriteString("\n")
	}

	return coverageScore(signalTokens(fields.String()), signalTokens(preferredField))
}
