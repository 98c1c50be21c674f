package parser

import (
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// sectionKind 简历分段类型
type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionExperience
	sectionSkills
	sectionEducation
	sectionOther
)

// ResumeParser 把规范化后的简历文本解析为候选人结构化档案。
// 解析永不失败：找不到节标题就做全文扫描，最坏得到全空档案。
type ResumeParser struct {
	vocab *Vocabulary
}

// NewResumeParser 创建简历解析器，vocab 为 nil 时使用内置词表
func NewResumeParser(vocab *Vocabulary) *ResumeParser {
	if vocab == nil {
		vocab = NewVocabulary()
	}
	return &ResumeParser{vocab: vocab}
}

// Parse 解析简历。任意输入都返回档案，字段缺失时取零值语义。
func (p *ResumeParser) Parse(norm types.NormalizedText) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		Skills:            []string{},
		ExperienceEntries: []types.ExperienceEntry{},
		EducationEntries:  []types.EducationEntry{},
	}
	if norm.IsEmpty() {
		return profile
	}

	// 1. 姓名：首个非空行，不是节标题、足够短、不是联系方式
	profile.Name = extractName(norm)

	// 2. 按节标题分段
	spans := splitSections(norm.Lines)

	// 3. 技能：技能段逐项拆分；没有技能段则全文词表扫描兜底
	if skillLines, ok := spans[sectionSkills]; ok && len(skillLines) > 0 {
		profile.Skills = parseSkillItems(skillLines)
	}
	if len(profile.Skills) == 0 {
		profile.Skills = p.vocab.Scan(norm)
	}

	// 4. 经历：经历段内抽取，没有经历段时对全文扫描
	expLines, ok := spans[sectionExperience]
	if !ok || len(expLines) == 0 {
		expLines = norm.Lines
	}
	profile.ExperienceEntries, profile.TotalYearsExperience = parseExperience(expLines)

	// 5. 教育：教育段内抽取，同样允许全文回退
	eduLines, ok := spans[sectionEducation]
	if !ok || len(eduLines) == 0 {
		eduLines = norm.Lines
	}
	profile.EducationEntries = scanDegrees(eduLines)

	return profile
}

// extractName 取档案姓名。规范化行是小写的，所以从平行的原始行取值，
// 保留 "Jane Smith" 这样的书写
func extractName(norm types.NormalizedText) string {
	if len(norm.Lines) == 0 {
		return ""
	}
	first := norm.Lines[0]
	if kind, isHeader := classifyHeader(first); isHeader && kind != sectionNone {
		return ""
	}
	if len(strings.Fields(first)) > 6 {
		return ""
	}
	if looksLikeContactLine(first) {
		return ""
	}
	if len(norm.RawLines) > 0 {
		return norm.RawLines[0]
	}
	return first
}

// looksLikeContactLine 识别邮箱/电话/链接行，这些行不可能是姓名
func looksLikeContactLine(line string) bool {
	if strings.ContainsAny(line, "@") {
		return true
	}
	for _, marker := range []string{"http://", "https://", "www.", "linkedin", "github"} {
		if strings.Contains(line, marker) {
			return true
		}
	}
	digits := 0
	for _, r := range line {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// classifyHeader 判断一行是否为节标题并给出类型。
// 标题行要么就是标签本身（允许尾部冒号和装饰符），要么以标签开头且很短。
func classifyHeader(line string) (sectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "-•*#> ")
	trimmed = strings.TrimRight(trimmed, ": ")
	if trimmed == "" {
		return sectionNone, false
	}
	// 标题行不会太长
	if len(strings.Fields(trimmed)) > 4 {
		return sectionNone, false
	}

	check := func(labels []string) bool {
		for _, label := range labels {
			if trimmed == label {
				return true
			}
		}
		return false
	}

	switch {
	case check(constants.ExperienceSectionLabels):
		return sectionExperience, true
	case check(constants.SkillsSectionLabels):
		return sectionSkills, true
	case check(constants.EducationSectionLabels):
		return sectionEducation, true
	case check(constants.OtherSectionLabels):
		return sectionOther, true
	}
	return sectionNone, false
}

// splitSections 顺序扫描各行，按节标题把正文行归入对应的节。
// 标题行本身不计入正文。
func splitSections(lines []string) map[sectionKind][]string {
	spans := make(map[sectionKind][]string)
	current := sectionNone
	for _, line := range lines {
		if kind, isHeader := classifyHeader(line); isHeader {
			current = kind
			continue
		}
		if current == sectionNone || current == sectionOther {
			continue
		}
		spans[current] = append(spans[current], line)
	}
	return spans
}

// parseSkillItems 把技能段各行拆成单项技能：
// 去掉行首列表符号和 "languages:" 这类类别前缀，再按常见分隔符切分
func parseSkillItems(lines []string) []string {
	items := make([]string, 0, 16)
	for _, line := range lines {
		line = strings.TrimLeft(line, "-•*·+> ")
		// "languages: python, go" 只保留冒号后的部分
		if idx := strings.Index(line, ":"); idx >= 0 && idx < len(line)-1 {
			line = line[idx+1:]
		}
		for _, piece := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '|' || r == '•' || r == '·'
		}) {
			piece = strings.TrimSpace(strings.Trim(piece, ".,;:()"))
			if piece == "" {
				continue
			}
			// 超长片段是句子不是技能项
			if len(strings.Fields(piece)) > 5 {
				continue
			}
			items = append(items, piece)
		}
	}
	return types.DedupSkills(items)
}

// parseExperience 在经历行中抽取条目并估算总年限。
// 年份区间合并后计数，显式年限只在行内没有区间时计入，避免
// "2019-2023 (4 years)" 这类写法被算两次。
func parseExperience(lines []string) ([]types.ExperienceEntry, float64) {
	entries := make([]types.ExperienceEntry, 0, 4)
	allIntervals := make([]yearInterval, 0, 4)
	durationTotal := 0.0

	for _, line := range lines {
		intervals := scanYearRanges(line)
		durations := scanDurations(line)
		if len(intervals) == 0 && len(durations) == 0 {
			continue
		}

		years := 0.0
		if len(intervals) > 0 {
			allIntervals = append(allIntervals, intervals...)
			for _, iv := range intervals {
				years += float64(iv.end - iv.start)
			}
		} else {
			for _, d := range durations {
				years += d
			}
			durationTotal += years
		}

		role, org := splitRoleLine(line)
		entries = append(entries, types.ExperienceEntry{
			Role:         role,
			Organization: org,
			Years:        years,
			Description:  line,
		})
	}

	return entries, mergeIntervals(allIntervals) + durationTotal
}

// roleSeparators 职位与组织之间的常见分隔写法，按优先级排列
var roleSeparators = []string{" at ", " @ ", " | ", " - ", " – ", " — "}

// splitRoleLine 从 "senior engineer at acme corp, 2019-2023" 里拆出职位和组织
func splitRoleLine(line string) (role, org string) {
	stripped := yearRangeRe.ReplaceAllString(line, "")
	stripped = durationRe.ReplaceAllString(stripped, "")
	stripped = strings.Trim(stripped, ".,;:()- ")

	for _, sep := range roleSeparators {
		idx := strings.Index(stripped, sep)
		if idx <= 0 {
			continue
		}
		role = strings.Trim(stripped[:idx], ".,;:()- ")
		org = strings.Trim(stripped[idx+len(sep):], ".,;:()- ")
		// 组织名只取到下一个逗号
		if c := strings.Index(org, ","); c > 0 {
			org = strings.TrimSpace(org[:c])
		}
		return role, org
	}

	// 没有分隔符时整行（去掉日期）视为职位，过长则放弃
	if len(strings.Fields(stripped)) <= 8 {
		role = stripped
	}
	return role, ""
}
