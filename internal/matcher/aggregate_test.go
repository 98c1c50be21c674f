package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		skills     int
		experience int
		education  int
		want       int
	}{
		{100, 100, 100, 100},
		{0, 0, 0, 0},
		{67, 73, 100, 75},
		{90, 73, 100, 87},
		{50, 50, 50, 50},
		{67, 73, 30, 61},
	}
	for _, tt := range tests {
		got := Aggregate(tt.skills, tt.experience, tt.education)
		assert.Equal(t, tt.want, got, "%d/%d/%d 的加权总分", tt.skills, tt.experience, tt.education)
	}
}

func TestBuildMatchResult(t *testing.T) {
	candidate := &types.CandidateProfile{Name: "Jane Smith"}
	job := &types.JobRequirement{Title: "Backend Engineer"}

	result := BuildMatchResult(candidate, job, 67, 73, 100, false)

	assert.Equal(t, "Jane Smith", result.CandidateName)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Equal(t, 67, result.MatchScores.SkillsMatch)
	assert.Equal(t, 73, result.MatchScores.ExperienceMatch)
	assert.Equal(t, 100, result.MatchScores.EducationMatch)
	assert.Equal(t, 75, result.MatchScores.OverallScore)
	assert.False(t, result.Details.SemanticMatchingUsed)
	assert.Equal(t, constants.MethodKeyword, result.Details.MatchingMethod)
}

func TestBuildMatchResultBackfillsSentinels(t *testing.T) {
	result := BuildMatchResult(&types.CandidateProfile{Name: "  "}, &types.JobRequirement{}, 0, 0, 0, true)

	assert.Equal(t, constants.UnknownSentinel, result.CandidateName)
	assert.Equal(t, constants.UnknownSentinel, result.JobTitle)
	assert.True(t, result.Details.SemanticMatchingUsed)
	assert.Equal(t, constants.MethodSemantic, result.Details.MatchingMethod)
}
