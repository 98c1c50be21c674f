package semantic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/config"
)

func TestNewDashScopeEmbedder(t *testing.T) {
	_, err := NewDashScopeEmbedder(config.EmbeddingProviderConfig{})
	require.Error(t, err, "缺少API密钥应拒绝创建")

	embedder, err := NewDashScopeEmbedder(config.EmbeddingProviderConfig{
		APIKey:     "test-key",
		Dimensions: 1024,
	})
	require.NoError(t, err)
	assert.Equal(t, 1024, embedder.GetDimensions())
	assert.Equal(t, "text-embedding-v3", embedder.model, "未指定模型时应使用默认模型")
	assert.NotEmpty(t, embedder.baseURL, "未指定端点时应使用默认端点")
}

func TestDashScopeEmbedStrings(t *testing.T) {
	var gotReq dashscopeEmbeddingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		// 故意乱序返回，验证按 index 对齐
		resp := dashscopeEmbeddingResponse{
			Object: "list",
			Model:  "text-embedding-v3",
			Data: []dashscopeDataEntry{
				{Object: "embedding", Embedding: []float64{0, 1}, Index: 1},
				{Object: "embedding", Embedding: []float64{1, 0}, Index: 0},
			},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	embedder, err := NewDashScopeEmbedder(config.EmbeddingProviderConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Dimensions: 2,
	})
	require.NoError(t, err)

	vectors, err := embedder.EmbedStrings(context.Background(), []string{"go", "python"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{1, 0}, vectors[0], "乱序响应应按index对齐回输入顺序")
	assert.Equal(t, []float64{0, 1}, vectors[1])

	assert.Equal(t, "text-embedding-v3", gotReq.Model)
	assert.Equal(t, 2, gotReq.Dimensions, "配置的维度应随请求下发")
	assert.Equal(t, []interface{}{"go", "python"}, gotReq.Input, "多条文本应以数组形式提交")
}

func TestDashScopeEmbedStringsSingleInput(t *testing.T) {
	var gotReq dashscopeEmbeddingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		resp := dashscopeEmbeddingResponse{
			Data: []dashscopeDataEntry{{Embedding: []float64{1}, Index: 0}},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	embedder, err := NewDashScopeEmbedder(config.EmbeddingProviderConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"solo"})
	require.NoError(t, err)
	assert.Equal(t, "solo", gotReq.Input, "单条文本应直接以字符串形式提交")
}

func TestDashScopeEmbedStringsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"Requests rate limit exceeded","type":"requests","code":"rate_limit"}`))
	}))
	defer server.Close()

	embedder, err := NewDashScopeEmbedder(config.EmbeddingProviderConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429", "错误信息应携带状态码供重试判定")
}

func TestDashScopeEmbedStringsMissingVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 两条输入只回一条向量
		resp := dashscopeEmbeddingResponse{
			Data: []dashscopeDataEntry{{Embedding: []float64{1}, Index: 0}},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	embedder, err := NewDashScopeEmbedder(config.EmbeddingProviderConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"go", "python"})
	require.Error(t, err, "响应缺向量应报错而不是静默产出nil向量")
}

func TestNewOpenAIEmbedder(t *testing.T) {
	_, err := NewOpenAIEmbedder(config.EmbeddingProviderConfig{})
	require.Error(t, err, "缺少API密钥应拒绝创建")

	embedder, err := NewOpenAIEmbedder(config.EmbeddingProviderConfig{
		APIKey:     "test-key",
		Dimensions: 1536,
	})
	require.NoError(t, err)
	assert.Equal(t, 1536, embedder.GetDimensions())
	assert.Equal(t, "text-embedding-3-small", embedder.model, "未指定模型时应使用默认模型")
}
