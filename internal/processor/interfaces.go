package processor

import (
	"context"
)

//
// 文本提取相关接口
//

// TextExtractor 文件文本提取接口
type TextExtractor interface {
	// Extract 从文件内容提取纯文本，filename 用于格式路由
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

//
// 语义引擎相关接口
//

// SemanticEngine 语义引擎生命周期接口。
// 引擎未就绪时评分自动退回关键词路径，处理流程不等待加载。
type SemanticEngine interface {
	// MaxSimilarities 对每个必备技能返回与候选技能集的最大余弦相似度
	MaxSimilarities(ctx context.Context, required, candidate []string) ([]float64, error)

	// Ready 引擎是否可用
	Ready() bool

	// TriggerInit 异步触发初始化，幂等
	TriggerInit()
}
