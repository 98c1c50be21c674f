// Package matcher 实现三个类别的评分器和总分聚合。
// 评分器都是无状态纯函数：同样的结构化输入（加上相同的语义引擎状态）
// 永远得到同样的分数。
package matcher

import (
	"context"
	"math"

	"resume-match-go/internal/constants"
)

// SemanticScorer 语义相似度能力。实现方负责嵌入与余弦计算，
// Ready 为 false 或调用出错时评分器回退到纯关键词路径。
type SemanticScorer interface {
	// MaxSimilarities 对每个 required 技能返回它与 candidate 集合的最大余弦相似度，
	// 返回切片与 required 等长
	MaxSimilarities(ctx context.Context, required, candidate []string) ([]float64, error)
	// Ready 引擎是否已就绪（Ready 状态以外都视为不可用）
	Ready() bool
}

// SkillMatcher 技能类别评分器。语义引擎作为能力注入，可以为 nil。
type SkillMatcher struct {
	engine SemanticScorer
}

// NewSkillMatcher 创建技能评分器，engine 可为 nil（纯关键词模式）
func NewSkillMatcher(engine SemanticScorer) *SkillMatcher {
	return &SkillMatcher{engine: engine}
}

// Score 计算技能分。返回值 usedSemantic 是 semantic_matching_used
// 的唯一事实来源：只有语义路径真正算完才为 true。
func (m *SkillMatcher) Score(ctx context.Context, candidateSkills, requiredSkills []string) (score int, usedSemantic bool) {
	keyword := KeywordSkillScore(candidateSkills, requiredSkills)

	// 空集上没有语义可算：要求为空是空满足，候选为空只能得关键词分
	if m.engine == nil || !m.engine.Ready() || len(requiredSkills) == 0 || len(candidateSkills) == 0 {
		return keyword, false
	}

	maxima, err := m.engine.MaxSimilarities(ctx, requiredSkills, candidateSkills)
	if err != nil || len(maxima) != len(requiredSkills) {
		// 引擎故障只降级不失败，错误由引擎侧记录
		return keyword, false
	}

	avg := 0.0
	for _, v := range maxima {
		avg += v
	}
	avg /= float64(len(maxima))

	semantic := similarityToScore(avg)

	// 混合后以关键词分为硬下限：精确命中不被嵌入噪声拉低
	blended := constants.WeightSemantic*float64(semantic) + constants.WeightSemanticKeyword*float64(keyword)
	final := int(math.Round(math.Max(blended, float64(keyword))))

	return ClampScore(final), true
}

// KeywordSkillScore 纯关键词路径：100 × |交集| / |要求集|。
// 要求集为空时记满分（空满足），绝不除零。
func KeywordSkillScore(candidateSkills, requiredSkills []string) int {
	if len(requiredSkills) == 0 {
		return 100
	}
	if len(candidateSkills) == 0 {
		return 0
	}

	candidateSet := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		candidateSet[s] = struct{}{}
	}

	matched := 0
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, req := range requiredSkills {
		if _, dup := seen[req]; dup {
			continue
		}
		seen[req] = struct{}{}
		if _, ok := candidateSet[req]; ok {
			matched++
		}
	}

	score := int(math.Round(100 * float64(matched) / float64(len(seen))))
	return ClampScore(score)
}

// similarityToScore 把平均余弦相似度仿射映射到 [0,100]：
// 1.0 → 100，低于下限（constants.SimilarityFloor）→ 0，中间线性
func similarityToScore(cos float64) int {
	if cos <= constants.SimilarityFloor {
		return 0
	}
	if cos >= 1.0 {
		return 100
	}
	scaled := (cos - constants.SimilarityFloor) / (1.0 - constants.SimilarityFloor)
	return ClampScore(int(math.Round(scaled * 100)))
}

// ClampScore 把分数收敛到 [0,100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
