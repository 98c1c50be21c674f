package constants

const (
	// Application-level constants
	AppVersion = "1.0"

	// HTTP form fields and upload limits
	FormFieldResume  = "resume"
	FormFieldJobDesc = "job_description"
	MaxUploadBytes   = 16 << 20 // 16 MiB, matches the upload cap of the web form

	// Matching method labels surfaced in MatchResult.Details
	MethodSemantic = "Semantic + keyword analysis"
	MethodKeyword  = "Keyword-based analysis"

	// Fallback sentinel when name/title extraction yields nothing
	UnknownSentinel = "Unknown"
)

// Category weights for the overall score. Fixed, not per-request configurable.
const (
	WeightSkills     = 0.5
	WeightExperience = 0.3
	WeightEducation  = 0.2
)

// Experience matcher internals
const (
	// WeightExpYears / WeightExpRelevance 年限与相关性的组合权重
	WeightExpYears     = 0.7
	WeightExpRelevance = 0.3
	// YearsOvershootCap 年限比例的上限，超出要求 20% 以上不再加分
	YearsOvershootCap = 1.2
)

// Education matcher internals
const (
	WeightEduLevel = 0.6
	WeightEduField = 0.4

	// Level credit tiers: meet-or-exceed full, one below partial,
	// further below low, unknown neutral.
	LevelCreditFull    = 100
	LevelCreditPartial = 60
	LevelCreditLow     = 20
	LevelCreditNeutral = 50
)

// Semantic scoring internals
const (
	// SimilarityFloor 余弦相似度低于该值记 0 分，1.0 映射为 100
	SimilarityFloor = 0.3
	// WeightSemantic / WeightSemanticKeyword 语义分与关键词分的混合权重；
	// 关键词分同时作为硬下限，精确命中不会被嵌入噪声拉低
	WeightSemantic        = 0.7
	WeightSemanticKeyword = 0.3
)
