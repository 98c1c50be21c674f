package types

import "strings"

// DegreeLevel 学历层级，按序数比较（高中 < 大专 < 本科 < 硕士 < 博士）
type DegreeLevel int

const (
	// DegreeUnknown 未知学历，解析失败时的默认值而不是报错
	DegreeUnknown DegreeLevel = iota
	// DegreeHighSchool 高中
	DegreeHighSchool
	// DegreeAssociate 大专
	DegreeAssociate
	// DegreeBachelor 本科
	DegreeBachelor
	// DegreeMaster 硕士
	DegreeMaster
	// DegreeDoctorate 博士
	DegreeDoctorate
)

// String 返回学历层级的可读名称，用于日志和健康检查输出
func (d DegreeLevel) String() string {
	switch d {
	case DegreeHighSchool:
		return "high_school"
	case DegreeAssociate:
		return "associate"
	case DegreeBachelor:
		return "bachelor"
	case DegreeMaster:
		return "master"
	case DegreeDoctorate:
		return "doctorate"
	default:
		return "unknown"
	}
}

// NormalizedText 规范化后的文本：小写、去控制字符、空白折叠
// Lines 和 Tokens 都是切片，可以随时重新遍历；空输入得到空结构而非错误
type NormalizedText struct {
	// Text 折叠后的完整文本，供多词技能的子串扫描使用
	Text string
	// Lines 规范化后的非空行
	Lines []string
	// RawLines 与 Lines 平行的原始大小写版本，姓名/岗位名的透传展示用
	RawLines []string
	// Tokens 分词结果，词边界为字母数字加 + # . 以保留 c++/c#/node.js 这类 token
	Tokens []string
}

// IsEmpty 判断规范化结果是否为空（空输入或全是空白/控制字符）
func (n NormalizedText) IsEmpty() bool {
	return len(n.Tokens) == 0 && len(n.Lines) == 0
}

// ExperienceEntry 一段工作经历
type ExperienceEntry struct {
	Role         string  // 职位，分隔符（" at "等）之前的文本
	Organization string  // 公司/组织，可为空
	Years        float64 // 该段经历的年限，0 表示未能推断
	Description  string  // 该段经历的原始描述行
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	DegreeLevel  DegreeLevel // 学历层级，默认 DegreeUnknown
	FieldOfStudy string      // 专业，可为空
	Institution  string      // 院校，可为空
}

// CandidateProfile 从简历文本解析出的候选人结构化档案
// 所有字段都有定义好的零值语义，解析永不失败
type CandidateProfile struct {
	Name                 string            // 候选人姓名，可为空（结果层回填 "Unknown"）
	Skills               []string          // 规范化技能集合，去重，永不为 nil
	ExperienceEntries    []ExperienceEntry // 工作经历，按出现顺序
	TotalYearsExperience float64           // 总年限，重叠年份区间合并后求和
	EducationEntries     []EducationEntry  // 教育经历，按出现顺序
}

// HighestDegree 返回候选人最高学历，没有教育经历时为 DegreeUnknown
func (p *CandidateProfile) HighestDegree() DegreeLevel {
	highest := DegreeUnknown
	for _, e := range p.EducationEntries {
		if e.DegreeLevel > highest {
			highest = e.DegreeLevel
		}
	}
	return highest
}

// HasSkill 判断候选人是否具备某个规范化技能
func (p *CandidateProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// JobRequirement 从职位描述解析出的岗位要求
type JobRequirement struct {
	Title                string      // 岗位名称，可为空（结果层回填 "Unknown"）
	RequiredSkills       []string    // 要求技能集合，规范化去重
	MinYearsExperience   float64     // 最低年限要求，未说明时为 0；多处提及取最大值
	PreferredDegreeLevel DegreeLevel // 期望学历，未说明时为 DegreeUnknown
	PreferredField       string      // 期望专业，可为空
	RawText              string      // 保留的规范化全文，供关键词回退扫描
}

// MatchScores 三个类别分数加总分，全部为 [0,100] 的整数
type MatchScores struct {
	ExperienceMatch int `json:"experience_match"`
	SkillsMatch     int `json:"skills_match"`
	EducationMatch  int `json:"education_match"`
	OverallScore    int `json:"overall_score"`
}

// MatchDetails 评分方法的可观测说明
type MatchDetails struct {
	// SemanticMatchingUsed 本次评分是否真正走了语义路径，
	// 唯一事实来源是 SkillMatcher 的返回值
	SemanticMatchingUsed bool   `json:"semantic_matching_used"`
	MatchingMethod       string `json:"matching_method"`
}

// MatchResult 单次匹配的最终结果，每次请求构造一次，返回后即丢弃
type MatchResult struct {
	CandidateName string       `json:"candidate_name"`
	JobTitle      string       `json:"job_title"`
	MatchScores   MatchScores  `json:"match_scores"`
	Details       MatchDetails `json:"details"`
}

// DedupSkills 去重并保持首次出现顺序，输入为 nil 时返回空切片而非 nil
func DedupSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
