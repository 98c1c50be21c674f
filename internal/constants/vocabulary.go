package constants

// SkillVocabulary 技能词表，供 JD 全文扫描和简历无技能段时的回退扫描使用。
// 单词条目按 token 集合精确匹配，含空格/斜杠的条目按边界子串匹配。
// 可通过配置 matching.extra_skills 追加。
var SkillVocabulary = []string{
	// languages
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c", "c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "perl",
	"r", "matlab", "objective-c", "dart", "lua", "groovy", "bash", "shell",
	"sql", "html", "css",

	// frameworks / runtimes
	"react", "angular", "vue", "svelte", "next.js", "node.js", "express",
	"django", "flask", "fastapi", "spring", "spring boot", "rails",
	"laravel", ".net", "asp.net", "gin", "echo", "flutter", "react native",
	"jquery", "bootstrap", "tailwind",

	// data stores
	"mysql", "postgresql", "postgres", "mongodb", "redis", "elasticsearch",
	"cassandra", "dynamodb", "sqlite", "oracle", "sql server", "neo4j",
	"clickhouse", "snowflake", "bigquery", "hbase", "memcached",

	// cloud / infra
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "gitlab", "github actions", "ci/cd", "linux", "nginx",
	"kafka", "rabbitmq", "grpc", "graphql", "rest", "microservices",
	"serverless", "lambda", "s3", "ec2", "cloudformation", "helm",
	"prometheus", "grafana", "istio",

	// data / ml
	"machine learning", "deep learning", "data analysis", "data science",
	"data engineering", "nlp", "natural language processing",
	"computer vision", "pytorch", "tensorflow", "keras", "scikit-learn",
	"pandas", "numpy", "spark", "hadoop", "airflow", "etl", "tableau",
	"power bi", "statistics", "a/b testing",

	// practices / tooling
	"git", "agile", "scrum", "tdd", "unit testing", "integration testing",
	"distributed systems", "system design", "oop", "design patterns",
	"code review", "debugging", "performance tuning", "security",
	"oauth", "jwt", "websocket", "api design", "project management",
}

// ResumeSectionLabels 简历分段的节标题同义词，全部小写比较
var (
	ExperienceSectionLabels = []string{
		"experience", "work experience", "employment", "work history",
		"professional experience", "employment history",
	}
	SkillsSectionLabels = []string{
		"skills", "technical skills", "core competencies", "expertise",
		"technologies", "tech stack",
	}
	EducationSectionLabels = []string{
		"education", "academic background", "qualifications",
		"academic qualifications",
	}
	// OtherSectionLabels 其余常见节标题，只用于终止上一节，不参与抽取
	OtherSectionLabels = []string{
		"projects", "achievements", "awards", "certifications", "summary",
		"objective", "publications", "references", "interests", "languages",
	}
)

// MatchStopWords 相关性扫描的停用词，过滤 JD 与经历文本中的噪声 token
var MatchStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "are": {},
	"our": {}, "your": {}, "will": {}, "have": {}, "has": {}, "was": {},
	"this": {}, "that": {}, "from": {}, "into": {}, "all": {}, "can": {},
	"per": {}, "who": {}, "what": {}, "when": {}, "where": {}, "how": {},
	"about": {}, "above": {}, "after": {}, "before": {}, "being": {},
	"between": {}, "both": {}, "but": {}, "not": {}, "they": {}, "them": {},
	"their": {}, "there": {}, "these": {}, "those": {}, "than": {},
	"then": {}, "some": {}, "such": {}, "within": {}, "without": {},
	"would": {}, "should": {}, "could": {}, "must": {}, "may": {},
	"more": {}, "most": {}, "other": {}, "over": {}, "under": {},
	"years": {}, "year": {}, "experience": {}, "work": {}, "working": {},
	"team": {}, "role": {}, "job": {}, "position": {}, "candidate": {},
	"required": {}, "requirements": {}, "preferred": {}, "responsibilities": {},
	"ability": {}, "strong": {}, "excellent": {}, "good": {}, "plus": {},
	"etc": {}, "including": {}, "knowledge": {}, "skills": {}, "using": {},
	"company": {}, "looking": {}, "join": {}, "develop": {}, "development": {},
}
