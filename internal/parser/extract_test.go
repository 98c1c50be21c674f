package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

func TestVocabularyScanOrderIsDeterministic(t *testing.T) {
	vocab := NewVocabulary()
	norm := Normalize("Loves AWS, React and Python in equal measure")

	first := vocab.Scan(norm)
	second := vocab.Scan(norm)

	assert.Equal(t, []string{"python", "react", "aws"}, first, "命中应按词表顺序返回")
	assert.Equal(t, first, second, "同一输入的扫描结果应逐次一致")
}

func TestVocabularyScanRespectsTokenBoundaries(t *testing.T) {
	vocab := NewVocabulary()

	hits := vocab.Scan(Normalize("wrote javascript and typescript daily"))
	assert.Contains(t, hits, "javascript")
	assert.Contains(t, hits, "typescript")
	assert.NotContains(t, hits, "java", "java 不应命中 javascript 的前半截")

	hits = vocab.Scan(Normalize("served traffic from golang services"))
	assert.Equal(t, []string{"golang"}, hits, "go 没有作为独立 token 出现时不应命中")
}

func TestVocabularyScanMatchesPhrases(t *testing.T) {
	vocab := NewVocabulary()

	hits := vocab.Scan(Normalize("Background in machine learning and spring boot deployments"))

	assert.Contains(t, hits, "machine learning", "多词条目应按边界子串匹配")
	assert.Contains(t, hits, "spring boot")
}

func TestVocabularyExtraSkills(t *testing.T) {
	vocab := NewVocabulary(" Kubeflow ", "")

	assert.True(t, vocab.Contains("kubeflow"), "配置追加项应规范化后进入词表")
	assert.Contains(t, vocab.Scan(Normalize("built pipelines on kubeflow")), "kubeflow")
}

func TestContainsPhraseBoundaries(t *testing.T) {
	assert.True(t, containsPhrase("hands-on machine learning work", "machine learning"))
	assert.False(t, containsPhrase("javascript everywhere", "java"), "缺少词边界时不应命中")
	assert.True(t, containsPhrase("javascript then java", "java"), "应跳过半截命中继续向后扫描")
	assert.False(t, containsPhrase("anything", ""))
}

func TestScanDegrees(t *testing.T) {
	entries := scanDegrees([]string{
		"phd in machine learning, mit",
		"master degree in data engineering",
		"bachelor of computer science, state university",
		"completed ged in 2010",
		"no credentials here",
	})

	require.Len(t, entries, 4, "每行至多一条记录，未提及学位的行应跳过")

	assert.Equal(t, types.DegreeDoctorate, entries[0].DegreeLevel)
	assert.Equal(t, "machine learning", entries[0].FieldOfStudy)
	assert.Equal(t, "", entries[0].Institution, "不含院校关键词的行不产生院校")

	assert.Equal(t, types.DegreeMaster, entries[1].DegreeLevel)
	assert.Equal(t, "data engineering", entries[1].FieldOfStudy)

	assert.Equal(t, types.DegreeBachelor, entries[2].DegreeLevel)
	assert.Equal(t, "computer science", entries[2].FieldOfStudy)
	assert.Equal(t, "state university", entries[2].Institution)

	assert.Equal(t, types.DegreeHighSchool, entries[3].DegreeLevel)
}

func TestScanDegreesPicksHighestPerLine(t *testing.T) {
	entries := scanDegrees([]string{"bachelor of arts, master of science"})

	require.Len(t, entries, 1)
	assert.Equal(t, types.DegreeMaster, entries[0].DegreeLevel, "同一行出现多个学位时取最高层级")
}

func TestIndexOfKeywordBoundaries(t *testing.T) {
	assert.Equal(t, -1, indexOfKeyword("headmaster of the school", "master"), "master 不应命中 headmaster")
	assert.Equal(t, 0, indexOfKeyword("master's degree", "master"))
	assert.Equal(t, -1, indexOfKeyword("", "phd"))
}

func TestCleanFieldOfStudy(t *testing.T) {
	assert.Equal(t, "computer science", cleanFieldOfStudy(" computer science from mit "))
	assert.Equal(t, "physics", cleanFieldOfStudy("physics at cern"))
	assert.Equal(t, "math", cleanFieldOfStudy("math."))
}

func TestExtractInstitution(t *testing.T) {
	assert.Equal(t, "state university", extractInstitution("bachelor of science, state university, 2015 - 2019"))
	assert.Equal(t, "boston college", extractInstitution("boston college"))
	assert.Equal(t, "", extractInstitution("self taught"))
}

func TestScanYearRanges(t *testing.T) {
	intervals := scanYearRanges("acme corp, 2019 - 2023 and initech 2015 to 2017")

	require.Len(t, intervals, 2)
	assert.Equal(t, yearInterval{start: 2019, end: 2023}, intervals[0])
	assert.Equal(t, yearInterval{start: 2015, end: 2017}, intervals[1])
}

func TestScanYearRangesOpenEnded(t *testing.T) {
	intervals := scanYearRanges("2020 - present")

	require.Len(t, intervals, 1)
	assert.Equal(t, 2020, intervals[0].start)
	assert.GreaterOrEqual(t, intervals[0].end, 2025, "present 应以当前年份封口")
}

func TestScanYearRangesRejectsInvalid(t *testing.T) {
	assert.Empty(t, scanYearRanges("2023 - 2019"), "起止颠倒的区间应丢弃")
	assert.Empty(t, scanYearRanges("from 1850 to 1890"), "19xx/20xx 之外的数字不是年份")
}

func TestScanDurations(t *testing.T) {
	assert.Equal(t, []float64{5}, scanDurations("5 years of backend work"))
	assert.Equal(t, []float64{3}, scanDurations("3+ years required"))
	assert.Equal(t, []float64{2.5}, scanDurations("2.5 yrs consulting"))
	assert.Nil(t, scanDurations("many years of history"))
}

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name      string
		intervals []yearInterval
		want      float64
	}{
		{"空输入", nil, 0},
		{"单个区间", []yearInterval{{2019, 2023}}, 4},
		{"重叠区间不重复累计", []yearInterval{{2019, 2022}, {2020, 2023}}, 4},
		{"不相交区间求和", []yearInterval{{2019, 2023}, {2015, 2017}}, 6},
		{"完全包含", []yearInterval{{2019, 2023}, {2020, 2021}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeIntervals(tt.intervals))
		})
	}
}
