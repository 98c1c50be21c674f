package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
)

// DashScopeEmbedder 通过 DashScope 的 OpenAI 兼容端点生成嵌入向量，
// 实现 cloudwego/eino 的 embedding.Embedder 接口。
type DashScopeEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewDashScopeEmbedder 创建 DashScope 嵌入客户端
func NewDashScopeEmbedder(cfg config.EmbeddingProviderConfig) (*DashScopeEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &DashScopeEmbedder{
		apiKey:     cfg.APIKey,
		model:      model,
		dimensions: cfg.Dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.Component("dashscope_embedder"),
	}, nil
}

// GetDimensions 返回配置的向量维度
func (d *DashScopeEmbedder) GetDimensions() int {
	return d.dimensions
}

// dashscopeEmbeddingRequest OpenAI 兼容的请求体。Input 为单条文本时
// 直接传字符串，多条时传数组。
type dashscopeEmbeddingRequest struct {
	Input          interface{} `json:"input"`
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`
	EncodingFormat string      `json:"encoding_format,omitempty"`
}

type dashscopeEmbeddingResponse struct {
	Object string               `json:"object"`
	Data   []dashscopeDataEntry `json:"data"`
	Model  string               `json:"model"`
	Usage  dashscopeUsage       `json:"usage"`
	ID     string               `json:"id,omitempty"`
	Error  *dashscopeAPIError   `json:"error,omitempty"`
}

type dashscopeDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type dashscopeUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// dashscopeAPIError 部分错误会随 200 状态码一起返回
type dashscopeAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本批量转换为向量
func (d *DashScopeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)

	effectiveModel := d.model
	if options.Model != nil && *options.Model != "" {
		effectiveModel = *options.Model
	}

	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var input interface{}
	if len(texts) == 1 {
		input = texts[0]
	} else {
		input = texts
	}

	reqBody := dashscopeEmbeddingRequest{
		Input: input,
		Model: effectiveModel,
	}
	if d.dimensions > 0 {
		reqBody.Dimensions = d.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dashscopeAPIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s, Code: %s",
				resp.StatusCode, apiErr.Type, apiErr.Message, apiErr.Code)
		}
		return nil, fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var parsed dashscopeEmbeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("API返回错误: 类型=%s, 消息='%s', Code=%s",
			parsed.Error.Type, parsed.Error.Message, parsed.Error.Code)
	}

	// 响应顺序按 Index 对齐输入顺序
	out := make([][]float64, len(texts))
	for _, entry := range parsed.Data {
		if entry.Index < 0 || entry.Index >= len(out) {
			return nil, fmt.Errorf("响应向量索引越界: %d", entry.Index)
		}
		out[entry.Index] = entry.Embedding
	}
	for i, vec := range out {
		if vec == nil {
			return nil, fmt.Errorf("响应缺少第 %d 条文本的向量", i)
		}
	}

	d.log.Debug().
		Int("texts", len(texts)).
		Str("model", parsed.Model).
		Int("total_tokens", parsed.Usage.TotalTokens).
		Msg("嵌入调用完成")

	return out, nil
}
