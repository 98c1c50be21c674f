package semantic

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
)

// OpenAIEmbedder 基于 OpenAI 官方 SDK 的嵌入客户端，
// 实现 cloudwego/eino 的 embedding.Embedder 接口。
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	log        zerolog.Logger
}

// NewOpenAIEmbedder 创建 OpenAI 嵌入客户端。BaseURL 留空时使用官方端点。
func NewOpenAIEmbedder(cfg config.EmbeddingProviderConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIEmbedder{
		client:     openai.NewClient(clientOpts...),
		model:      model,
		dimensions: cfg.Dimensions,
		log:        logger.Component("openai_embedder"),
	}, nil
}

// GetDimensions 返回配置的向量维度
func (o *OpenAIEmbedder) GetDimensions() int {
	return o.dimensions
}

// EmbedStrings 将文本批量转换为向量
func (o *OpenAIEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)

	effectiveModel := o.model
	if options.Model != nil && *options.Model != "" {
		effectiveModel = *options.Model
	}

	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	params := openai.EmbeddingNewParams{
		Input:          openai.F[openai.EmbeddingNewParamsInputUnion](openai.EmbeddingNewParamsInputArrayOfStrings(texts)),
		Model:          openai.F(openai.EmbeddingModel(effectiveModel)),
		EncodingFormat: openai.F(openai.EmbeddingNewParamsEncodingFormatFloat),
	}
	if o.dimensions > 0 {
		params.Dimensions = openai.F(int64(o.dimensions))
	}

	resp, err := o.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("调用嵌入接口失败: %w", err)
	}

	out := make([][]float64, len(texts))
	for _, entry := range resp.Data {
		idx := int(entry.Index)
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("响应向量索引越界: %d", idx)
		}
		out[idx] = entry.Embedding
	}
	for i, vec := range out {
		if vec == nil {
			return nil, fmt.Errorf("响应缺少第 %d 条文本的向量", i)
		}
	}

	o.log.Debug().
		Int("texts", len(texts)).
		Str("model", resp.Model).
		Msg("嵌入调用完成")

	return out, nil
}
