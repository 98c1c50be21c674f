package matcher

import (
	"math"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// ExperienceMatcher 经历类别评分器：年限达标度与内容相关性加权组合
type ExperienceMatcher struct{}

// NewExperienceMatcher 创建经历评分器
func NewExperienceMatcher() *ExperienceMatcher {
	return &ExperienceMatcher{}
}

// Score 计算经历分
func (m *ExperienceMatcher) Score(candidate *types.CandidateProfile, job *types.JobRequirement) int {
	years := yearsSubScore(candidate.TotalYearsExperience, job.MinYearsExperience)
	relevance := relevanceSubScore(candidate, job)

	final := constants.WeightExpYears*float64(years) + constants.WeightExpRelevance*float64(relevance)
	return ClampScore(int(math.Round(final)))
}

// yearsSubScore 年限达标度。没有年限要求时直接满分；
// 否则按比例线性计分，超出要求 20% 封顶，再多不加分。
func yearsSubScore(totalYears, minYears float64) int {
	if minYears <= 0 {
		return 100
	}
	ratio := totalYears / minYears
	if ratio < 0 {
		ratio = 0
	}
	if ratio > constants.YearsOvershootCap {
		ratio = constants.YearsOvershootCap
	}
	return ClampScore(int(math.Round(ratio * 100 / constants.YearsOvershootCap)))
}

// relevanceSubScore 内容相关性：候选人经历文本对 JD 信号词的覆盖率，
// 与技能关键词路径同向（分母在岗位侧）
func relevanceSubScore(candidate *types.CandidateProfile, job *types.JobRequirement) int {
	var candText strings.Builder
	for _, e := range candidate.ExperienceEntries {
		candText.WriteString(e.Role)
		candText.WriteString(" ")
		candText.WriteString(e.Description)
		candText.WriteString("\n")
	}

	have := signalTokens(candText.String())
	want := signalTokens(job.Title + "\n" + job.RawText)

	return coverageScore(have, want)
}
