package parser

import (
	"strings"

	"resume-match-go/internal/types"
)

// JobDescriptionParser 把规范化后的职位描述解析为岗位要求。
// JD 通常没有稳定的节结构，所以全部走全文扫描。
type JobDescriptionParser struct {
	vocab *Vocabulary
}

// NewJobDescriptionParser 创建 JD 解析器，vocab 为 nil 时使用内置词表
func NewJobDescriptionParser(vocab *Vocabulary) *JobDescriptionParser {
	if vocab == nil {
		vocab = NewVocabulary()
	}
	return &JobDescriptionParser{vocab: vocab}
}

// Parse 解析职位描述。任意输入都返回岗位要求，未说明的字段取零值语义。
func (p *JobDescriptionParser) Parse(norm types.NormalizedText) *types.JobRequirement {
	job := &types.JobRequirement{
		RequiredSkills: []string{},
		RawText:        norm.Text,
	}
	if norm.IsEmpty() {
		return job
	}

	// 1. 岗位名称：优先 "position: xxx" 这类显式声明，否则取首个短行
	job.Title = extractTitle(norm)

	// 2. 要求技能：全文词表扫描
	job.RequiredSkills = p.vocab.Scan(norm)

	// 3. 最低年限：取全文所有年限提及的最大值。
	// 多处提及时最大的那个才是硬性门槛。
	for _, line := range norm.Lines {
		for _, d := range scanDurations(line) {
			if d > job.MinYearsExperience {
				job.MinYearsExperience = d
			}
		}
	}

	// 4. 期望学历与专业：与简历教育段相同的关键词扫描，取首个提及
	if entries := scanDegrees(norm.Lines); len(entries) > 0 {
		job.PreferredDegreeLevel = entries[0].DegreeLevel
		job.PreferredField = entries[0].FieldOfStudy
	}

	return job
}

// extractTitle 抽取岗位名称，找不到时返回空串由结果层回填 "Unknown"
func extractTitle(norm types.NormalizedText) string {
	// 显式 "role:/position:/title:" 行优先，返回对应原始行里的片段以保留大小写
	for i, line := range norm.Lines {
		m := titleLineRe.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		if i < len(norm.RawLines) && len(norm.RawLines[i]) == len(line) {
			return strings.TrimSpace(norm.RawLines[i][m[2]:m[3]])
		}
		return strings.TrimSpace(line[m[2]:m[3]])
	}

	// 否则取首个足够短的行
	for i, line := range norm.Lines {
		if len(strings.Fields(line)) <= 6 && !looksLikeContactLine(line) {
			if i < len(norm.RawLines) {
				return norm.RawLines[i]
			}
			return line
		}
	}
	return ""
}
