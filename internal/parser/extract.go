package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// 抽取规则使用的正则，全部在包加载时编译一次
var (
	// yearRangeRe 匹配 "2019-2023"、"2019 – present" 这类年份区间
	yearRangeRe = regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:-|–|—|~|to|till|until)\s*((?:19|20)\d{2}|present|current|now)\b`)
	// durationRe 匹配 "5 years"、"3+ years"、"2.5 yrs" 这类显式年限
	durationRe = regexp.MustCompile(`\b(\d{1,2}(?:\.\d)?)\s*\+?\s*(?:years?|yrs?)\b`)
	// fieldRe 匹配学位关键词之后的 "in computer science" 专业说明
	fieldRe = regexp.MustCompile(`\b(?:in|of)\s+([a-z][a-z .&/+-]{2,60})`)
	// titleLineRe 匹配 JD 中显式声明的岗位名称行
	titleLineRe = regexp.MustCompile(`\b(?:role|position|title)\s*:\s*(.+)`)
)

// degreeSynonyms 学位关键词到层级的映射，按出现优先级排列。
// 新增同义词是数据改动，不碰控制流。
var degreeSynonyms = []struct {
	keyword string
	level   types.DegreeLevel
}{
	{"phd", types.DegreeDoctorate},
	{"ph.d", types.DegreeDoctorate},
	{"doctorate", types.DegreeDoctorate},
	{"doctoral", types.DegreeDoctorate},
	{"master", types.DegreeMaster},
	{"m.s", types.DegreeMaster},
	{"msc", types.DegreeMaster},
	{"m.a", types.DegreeMaster},
	{"mba", types.DegreeMaster},
	{"m.eng", types.DegreeMaster},
	{"bachelor", types.DegreeBachelor},
	{"b.s", types.DegreeBachelor},
	{"bsc", types.DegreeBachelor},
	{"b.a", types.DegreeBachelor},
	{"b.eng", types.DegreeBachelor},
	{"b.tech", types.DegreeBachelor},
	{"undergraduate", types.DegreeBachelor},
	{"associate", types.DegreeAssociate},
	{"diploma", types.DegreeAssociate},
	{"high school", types.DegreeHighSchool},
	{"ged", types.DegreeHighSchool},
}

// Vocabulary 技能词表。单词条目按 token 精确匹配，
// 含空格/连字符/斜杠的条目对规范化全文做边界子串匹配。
type Vocabulary struct {
	entries []string            // 全部条目，保持构建顺序以确保扫描结果确定
	known   map[string]struct{} // 条目集合，供 Contains 查询
}

// NewVocabulary 从内置词表加配置追加项构建词表
func NewVocabulary(extra ...string) *Vocabulary {
	v := &Vocabulary{
		entries: make([]string, 0, len(constants.SkillVocabulary)+len(extra)),
		known:   make(map[string]struct{}, len(constants.SkillVocabulary)+len(extra)),
	}
	for _, entry := range constants.SkillVocabulary {
		v.add(entry)
	}
	for _, entry := range extra {
		v.add(strings.ToLower(strings.TrimSpace(entry)))
	}
	return v
}

func (v *Vocabulary) add(entry string) {
	if entry == "" {
		return
	}
	if _, ok := v.known[entry]; ok {
		return
	}
	v.known[entry] = struct{}{}
	v.entries = append(v.entries, entry)
}

// isSingleToken 判断条目是否会被分词器保留为单个 token
func isSingleToken(entry string) bool {
	for _, r := range entry {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// Scan 在规范化文本中找出所有词表命中，按词表顺序返回。
// 顺序固定保证同一输入的扫描结果确定。
func (v *Vocabulary) Scan(norm types.NormalizedText) []string {
	if norm.IsEmpty() {
		return []string{}
	}

	tokenSet := TokenSet(norm.Tokens)
	found := make([]string, 0, 16)

	for _, entry := range v.entries {
		if isSingleToken(entry) {
			if _, ok := tokenSet[entry]; ok {
				found = append(found, entry)
			}
			continue
		}
		if containsPhrase(norm.Text, entry) {
			found = append(found, entry)
		}
	}

	return found
}

// Contains 判断一个已规范化的技能是否在词表内
func (v *Vocabulary) Contains(skill string) bool {
	_, ok := v.known[skill]
	return ok
}

// containsPhrase 边界敏感的子串匹配：命中位置前后都不能是字母数字，
// 避免 "java" 命中 "javascript" 这类半截匹配
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	start := 0
	for {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		before := idx - 1
		after := idx + len(phrase)
		beforeOK := before < 0 || !isBoundaryRune(rune(text[before]))
		afterOK := after >= len(text) || !isBoundaryRune(rune(text[after]))
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
		if start >= len(text) {
			return false
		}
	}
}

func isBoundaryRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanDegrees 在若干行中找出学位提及，每行至多产生一条记录，
// 同一行出现多个学位关键词时取最高层级
func scanDegrees(lines []string) []types.EducationEntry {
	entries := make([]types.EducationEntry, 0, 2)
	for _, line := range lines {
		level := types.DegreeUnknown
		keywordIdx := -1
		for _, syn := range degreeSynonyms {
			idx := indexOfKeyword(line, syn.keyword)
			if idx < 0 {
				continue
			}
			if syn.level > level {
				level = syn.level
				keywordIdx = idx
			}
		}
		if level == types.DegreeUnknown {
			continue
		}

		entry := types.EducationEntry{DegreeLevel: level}
		// 学位关键词之后的 "in <field>" 作为专业
		if m := fieldRe.FindStringSubmatch(line[keywordIdx:]); m != nil {
			entry.FieldOfStudy = cleanFieldOfStudy(m[1])
		}
		entry.Institution = extractInstitution(line)
		entries = append(entries, entry)
	}
	return entries
}

// indexOfKeyword 边界敏感地查找关键词位置，未命中返回 -1
func indexOfKeyword(line, keyword string) int {
	start := 0
	for {
		idx := strings.Index(line[start:], keyword)
		if idx < 0 {
			return -1
		}
		idx += start
		before := idx - 1
		after := idx + len(keyword)
		beforeOK := before < 0 || !isBoundaryRune(rune(line[before]))
		// 词尾允许紧跟 '.' 或 "'s"（"b.s." / "master's"）
		afterOK := after >= len(line) || !isBoundaryRune(rune(line[after]))
		if beforeOK && afterOK {
			return idx
		}
		start = idx + 1
		if start >= len(line) {
			return -1
		}
	}
}

// cleanFieldOfStudy 去掉专业字符串尾部的标点与悬挂词
func cleanFieldOfStudy(field string) string {
	field = strings.TrimSpace(field)
	field = strings.Trim(field, ".,;:")
	// "computer science from mit" 截断到 from/at 之前
	for _, stop := range []string{" from ", " at ", " with ", ","} {
		if idx := strings.Index(field, stop); idx > 0 {
			field = field[:idx]
		}
	}
	return strings.TrimSpace(field)
}

// extractInstitution 行内包含院校关键词时取对应片段
func extractInstitution(line string) string {
	for _, kw := range []string{"university", "college", "institute", "school of"} {
		idx := strings.Index(line, kw)
		if idx < 0 {
			continue
		}
		// 取该关键词所在的逗号分隔片段
		segStart := strings.LastIndex(line[:idx], ",") + 1
		segEnd := len(line)
		if rel := strings.Index(line[idx:], ","); rel >= 0 {
			segEnd = idx + rel
		}
		seg := strings.TrimSpace(strings.Trim(line[segStart:segEnd], ".,;:- "))
		// 去掉片段里混入的年份区间
		seg = yearRangeRe.ReplaceAllString(seg, "")
		return strings.TrimSpace(strings.Trim(seg, ".,;:- "))
	}
	return ""
}

// yearInterval 年份区间，present/current 以当前年份封口
type yearInterval struct {
	start int
	end   int
}

// scanYearRanges 找出一行中的所有年份区间
func scanYearRanges(line string) []yearInterval {
	matches := yearRangeRe.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	nowYear := time.Now().Year()
	intervals := make([]yearInterval, 0, len(matches))
	for _, m := range matches {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := nowYear
		if m[2] != "present" && m[2] != "current" && m[2] != "now" {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		if end < start {
			continue
		}
		intervals = append(intervals, yearInterval{start: start, end: end})
	}
	return intervals
}

// scanDurations 找出一行中的显式年限提及（"5 years"、"3+ years"）
func scanDurations(line string) []float64 {
	matches := durationRe.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// mergeIntervals 合并重叠的年份区间后求总年数，绝不重复累计重叠部分
func mergeIntervals(intervals []yearInterval) float64 {
	if len(intervals) == 0 {
		return 0
	}
	// 按起始年排序（插入排序，区间数量很小）
	sorted := make([]yearInterval, len(intervals))
	copy(sorted, intervals)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].start < sorted[j-1].start; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	total := 0.0
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.start <= cur.end {
			if iv.end > cur.end {
				cur.end = iv.end
			}
			continue
		}
		total += float64(cur.end - cur.start)
		cur = iv
	}
	total += float64(cur.end - cur.start)
	return total
}
