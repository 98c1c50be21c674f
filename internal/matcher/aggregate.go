package matcher

import (
	"math"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// Aggregate 按固定权重聚合三个类别分：
// overall = round(0.5×skills + 0.3×experience + 0.2×education)
func Aggregate(skills, experience, education int) int {
	overall := constants.WeightSkills*float64(skills) +
		constants.WeightExperience*float64(experience) +
		constants.WeightEducation*float64(education)
	return ClampScore(int(math.Round(overall)))
}

// BuildMatchResult 组装最终结果：回填姓名/岗位名的 "Unknown" 哨兵值，
// 并根据语义使用标记填写 matching_method
func BuildMatchResult(candidate *types.CandidateProfile, job *types.JobRequirement,
	skills, experience, education int, usedSemantic bool) *types.MatchResult {

	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		name = constants.UnknownSentinel
	}
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = constants.UnknownSentinel
	}

	method := constants.MethodKeyword
	if usedSemantic {
		method = constants.MethodSemantic
	}

	return &types.MatchResult{
		CandidateName: name,
		JobTitle:      title,
		MatchScores: types.MatchScores{
			SkillsMatch:     ClampScore(skills),
			ExperienceMatch: ClampScore(experience),
			EducationMatch:  ClampScore(education),
			OverallScore:    Aggregate(skills, experience, education),
		},
		Details: types.MatchDetails{
			SemanticMatchingUsed: usedSemantic,
			MatchingMethod:       method,
		},
	}
}
