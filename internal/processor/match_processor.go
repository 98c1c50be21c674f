// Package processor 实现简历与职位描述的匹配流水线：
// 文本提取、规整、双方解析、三路评分、加权聚合。
package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-match-go/internal/config"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/semantic"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

var tracer = otel.Tracer("processor")

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	Extractor TextExtractor  // 文件文本提取
	Engine    SemanticEngine // 语义引擎，未配置时为 nil
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	ExtraSkills []string // 追加进技能词表的自定义条目
	Debug       bool
}

// FileInput 一份待匹配的上传文件
type FileInput struct {
	Data     []byte
	Filename string
}

// MatchProcessor 匹配流水线聚合类
type MatchProcessor struct {
	extractor TextExtractor
	engine    SemanticEngine

	resumeParser *parser.ResumeParser
	jobParser    *parser.JobDescriptionParser
	skills       *matcher.SkillMatcher
	experience   *matcher.ExperienceMatcher
	education    *matcher.EducationMatcher

	debug bool
	log   zerolog.Logger
}

// NewMatchProcessor 创建匹配处理器，使用明确分离的组件和设置
func NewMatchProcessor(comp *Components, set *Settings, opts ...SettingOpt) *MatchProcessor {
	if comp == nil {
		comp = &Components{}
	}
	if set == nil {
		set = &Settings{}
	}
	for _, opt := range opts {
		opt(set)
	}

	vocab := parser.NewVocabulary(set.ExtraSkills...)

	return &MatchProcessor{
		extractor:    comp.Extractor,
		engine:       comp.Engine,
		resumeParser: parser.NewResumeParser(vocab),
		jobParser:    parser.NewJobDescriptionParser(vocab),
		skills:       matcher.NewSkillMatcher(comp.Engine),
		experience:   matcher.NewExperienceMatcher(),
		education:    matcher.NewEducationMatcher(),
		debug:        set.Debug,
		log:          logger.Component("processor"),
	}
}

// CreateProcessorFromConfig 从配置创建处理器及其语义引擎。
// 引擎单独返回给调用方做预热和健康上报。
func CreateProcessorFromConfig(ctx context.Context, cfg *config.Config, opts ...SettingOpt) (*MatchProcessor, *semantic.Engine, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("配置不能为空")
	}

	// 1. 创建文本提取分发器
	dispatcher, err := extractor.NewDispatcherFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建文本提取器失败: %w", err)
	}

	// 2. 创建语义引擎，配置关闭时引擎保持未初始化
	engine := semantic.NewEngineFromConfig(cfg)

	// 3. 组装处理器
	components := &Components{
		Extractor: dispatcher,
		Engine:    engine,
	}
	settings := &Settings{
		ExtraSkills: cfg.Matching.ExtraSkills,
		Debug:       cfg.Logger.Level == "debug",
	}

	return NewMatchProcessor(components, settings, opts...), engine, nil
}

// CreateProcessor 便捷工厂函数，按选项显式组装组件和设置。
// 适用于不走配置文件、需要逐项注入组件的场景（嵌入式使用或测试）。
func CreateProcessor(compOpts []ComponentOpt, setOpts []SettingOpt) (*MatchProcessor, error) {
	components := &Components{}
	settings := &Settings{}

	for _, opt := range compOpts {
		opt(components)
	}
	for _, opt := range setOpts {
		opt(settings)
	}

	if components.Extractor == nil {
		return nil, fmt.Errorf("必须提供文本提取器组件")
	}

	return NewMatchProcessor(components, settings), nil
}

// MatchFiles 完成一次文件级匹配：两份文件分别提取文本后进入评分流水线
func (mp *MatchProcessor) MatchFiles(ctx context.Context, requestID string, resume, job FileInput) (*types.MatchResult, error) {
	ctx, span := tracer.Start(ctx, "MatchProcessor.MatchFiles",
		trace.WithAttributes(
			attribute.String("request_id", requestID),
			attribute.String("resume_filename", tracing.SafeFilename(resume.Filename)),
			attribute.String("job_filename", tracing.SafeFilename(job.Filename)),
		),
	)
	defer span.End()

	if mp.extractor == nil {
		return nil, fmt.Errorf("MatchProcessor: 文本提取器未初始化")
	}

	resumeText, err := mp.extractor.Extract(ctx, resume.Data, resume.Filename)
	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeExtraction,
			attribute.String("document", "resume"))
		return nil, NewResumeExtractError(requestID, err)
	}
	// 简历含PII，span上只记字符数不记内容
	span.AddEvent("resume text extracted", trace.WithAttributes(
		attribute.Int("chars", len(resumeText)),
	))

	jobText, err := mp.extractor.Extract(ctx, job.Data, job.Filename)
	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeExtraction,
			attribute.String("document", "job_description"))
		return nil, NewJobExtractError(requestID, err)
	}
	span.AddEvent("job text extracted", trace.WithAttributes(
		attribute.Int("chars", len(jobText)),
		attribute.String("preview", tracing.SafeContent(jobText)),
	))

	return mp.MatchTexts(ctx, resumeText, jobText), nil
}

// MatchTexts 对纯文本的简历和职位描述执行完整匹配流程。
// 评分永不失败：语义路径不可用时自动退回关键词比对。
func (mp *MatchProcessor) MatchTexts(ctx context.Context, resumeText, jobText string) *types.MatchResult {
	ctx, span := tracer.Start(ctx, "MatchProcessor.MatchTexts")
	defer span.End()

	// 1. 规整文本
	resumeNorm := parser.Normalize(resumeText)
	jobNorm := parser.Normalize(jobText)

	// 2. 解析候选人画像与岗位要求
	profile := mp.resumeParser.Parse(resumeNorm)
	requirement := mp.jobParser.Parse(jobNorm)

	// 3. 懒加载语义引擎。未就绪时本次请求直接走关键词路径，不阻塞等待。
	if mp.engine != nil && !mp.engine.Ready() {
		mp.engine.TriggerInit()
	}

	// 4. 三路评分
	skillScore, usedSemantic := mp.skills.Score(ctx, profile.Skills, requirement.RequiredSkills)
	expScore := mp.experience.Score(profile, requirement)
	eduScore := mp.education.Score(profile, requirement)

	// 5. 聚合结果
	result := matcher.BuildMatchResult(profile, requirement, skillScore, expScore, eduScore, usedSemantic)

	span.SetAttributes(
		attribute.Int("score.skills", skillScore),
		attribute.Int("score.experience", expScore),
		attribute.Int("score.education", eduScore),
		attribute.Int("score.overall", result.MatchScores.OverallScore),
		attribute.Bool("semantic_used", usedSemantic),
	)

	if mp.debug {
		mp.log.Debug().
			Str("candidate", tracing.MaskPII(result.CandidateName)).
			Str("job", result.JobTitle).
			Int("overall", result.MatchScores.OverallScore).
			Bool("semantic", usedSemantic).
			Msg("匹配评分完成")
	}

	return result
}
