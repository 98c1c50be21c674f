package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

const sampleResumeText = `Jane Smith

Skills
- Languages: Python, Go
- Tools: Docker; Kubernetes | Git

Experience
Software Engineer at Initech, 2019 - 2023
Built internal dashboards and data pipelines.

Education
Bachelor of Computer Science, State University`

func TestResumeParserParse(t *testing.T) {
	p := NewResumeParser(nil)

	profile := p.Parse(Normalize(sampleResumeText))

	assert.Equal(t, "Jane Smith", profile.Name)
	assert.Equal(t, []string{"python", "go", "docker", "kubernetes", "git"}, profile.Skills,
		"技能段应拆掉列表符号与类别前缀，保持出现顺序")

	require.Len(t, profile.ExperienceEntries, 1, "没有年份的描述行不产生经历条目")
	assert.Equal(t, "software engineer", profile.ExperienceEntries[0].Role)
	assert.Equal(t, "initech", profile.ExperienceEntries[0].Organization)
	assert.Equal(t, 4.0, profile.ExperienceEntries[0].Years)
	assert.Equal(t, 4.0, profile.TotalYearsExperience)

	require.Len(t, profile.EducationEntries, 1)
	assert.Equal(t, types.DegreeBachelor, profile.EducationEntries[0].DegreeLevel)
	assert.Equal(t, "computer science", profile.EducationEntries[0].FieldOfStudy)
	assert.Equal(t, "state university", profile.EducationEntries[0].Institution)
}

func TestResumeParserFallsBackToVocabularyScan(t *testing.T) {
	p := NewResumeParser(nil)

	profile := p.Parse(Normalize("Jane Smith\nShipped Python services on AWS with Docker."))

	assert.Equal(t, []string{"python", "aws", "docker"}, profile.Skills, "没有技能段时应走全文词表扫描")
	assert.True(t, profile.HasSkill("aws"))
	assert.False(t, profile.HasSkill("kubernetes"), "未出现的技能不应被误报")
}

func TestResumeParserEmptyInput(t *testing.T) {
	p := NewResumeParser(nil)

	profile := p.Parse(Normalize("   \n\t  "))

	assert.Equal(t, "", profile.Name)
	assert.NotNil(t, profile.Skills, "空档案的切片字段不应为 nil")
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.ExperienceEntries)
	assert.Zero(t, profile.TotalYearsExperience)
	assert.Equal(t, types.DegreeUnknown, profile.HighestDegree())
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"普通姓名行", "Jane Smith\nEngineer", "Jane Smith"},
		{"节标题不是姓名", "Experience\n2019 - 2023 at Acme", ""},
		{"邮箱行不是姓名", "jane@example.com\nJane Smith", ""},
		{"电话行不是姓名", "555-123-4567\nJane Smith", ""},
		{"过长的句子不是姓名", "A passionate engineer who loves building distributed systems", ""},
		{"空输入", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractName(Normalize(tt.raw)))
		})
	}
}

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		line string
		kind sectionKind
		ok   bool
	}{
		{"experience", sectionExperience, true},
		{"work experience:", sectionExperience, true},
		{"## skills", sectionSkills, true},
		{"education", sectionEducation, true},
		{"projects", sectionOther, true},
		{"skills: python, go", sectionNone, false},
		{"we are looking for an engineer", sectionNone, false},
		{"", sectionNone, false},
	}
	for _, tt := range tests {
		kind, ok := classifyHeader(tt.line)

		assert.Equal(t, tt.kind, kind, "行 %q 的分类", tt.line)
		assert.Equal(t, tt.ok, ok, "行 %q 是否节标题", tt.line)
	}
}

func TestSplitSectionsStopsAtOtherSections(t *testing.T) {
	spans := splitSections([]string{
		"jane smith",
		"skills",
		"python, go",
		"projects",
		"wrote a compiler",
		"experience",
		"engineer at acme, 2019 - 2021",
	})

	assert.Equal(t, []string{"python, go"}, spans[sectionSkills], "projects 标题应终止技能段")
	assert.Equal(t, []string{"engineer at acme, 2019 - 2021"}, spans[sectionExperience])
	_, ok := spans[sectionOther]
	assert.False(t, ok, "other 段只终止前一节，不收集正文")
}

func TestParseExperienceAvoidsDoubleCounting(t *testing.T) {
	entries, total := parseExperience([]string{
		"senior engineer at acme corp, 2019 - 2023 (4 years)",
		"2 years freelance consulting",
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "senior engineer", entries[0].Role)
	assert.Equal(t, "acme corp", entries[0].Organization)
	assert.Equal(t, 4.0, entries[0].Years, "区间与显式年限同行时只记区间")
	assert.Equal(t, "freelance consulting", entries[1].Role)
	assert.Equal(t, 2.0, entries[1].Years)
	assert.Equal(t, 6.0, total)
}

func TestParseExperienceMergesOverlappingRanges(t *testing.T) {
	_, total := parseExperience([]string{
		"engineer at acme, 2019 - 2022",
		"consultant at globex, 2020 - 2023",
	})

	assert.Equal(t, 4.0, total, "重叠的任职区间不应重复累计")
}

func TestSplitRoleLine(t *testing.T) {
	tests := []struct {
		line     string
		wantRole string
		wantOrg  string
	}{
		{"software engineer at initech, 2019 - 2023", "software engineer", "initech"},
		{"developer @ globex 2020 - 2022", "developer", "globex"},
		{"data analyst | hooli", "data analyst", "hooli"},
		{"backend engineer - initech, remote", "backend engineer", "initech"},
		{"5 years building web services", "building web services", ""},
		{"worked on a very long description of everything imaginable for ages", "", ""},
	}
	for _, tt := range tests {
		role, org := splitRoleLine(tt.line)

		assert.Equal(t, tt.wantRole, role, "行 %q 的职位", tt.line)
		assert.Equal(t, tt.wantOrg, org, "行 %q 的组织", tt.line)
	}
}
