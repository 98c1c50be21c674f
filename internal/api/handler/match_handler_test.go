package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/config"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"
)

// passthroughExtractor 把文件字节原样当作文本
type passthroughExtractor struct{}

func (passthroughExtractor) Extract(_ context.Context, data []byte, _ string) (string, error) {
	return string(data), nil
}

// rejectingExtractor 模拟不支持的文件格式
type rejectingExtractor struct{}

func (rejectingExtractor) Extract(_ context.Context, _ []byte, filename string) (string, error) {
	return "", fmt.Errorf("%w: %s", extractor.ErrUnsupportedFormat, filename)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.MaxUploadMB = 1
	cfg.Server.RequestTimeout = "5s"
	return cfg
}

func newTestHandler(t *testing.T, ext processor.TextExtractor) *MatchHandler {
	t.Helper()
	proc, err := processor.CreateProcessor(
		[]processor.ComponentOpt{processor.WithcompExtractor(ext)},
		nil,
	)
	require.NoError(t, err, "组装测试处理器失败")
	return NewMatchHandler(testConfig(), proc, nil)
}

// buildMatchForm 构建匹配请求的multipart表单
func buildMatchForm(t *testing.T, resume []byte, jobText string, jobFile []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if resume != nil {
		fw, err := w.CreateFormFile("resume", "resume.txt")
		require.NoError(t, err, "创建简历表单字段失败")
		_, err = fw.Write(resume)
		require.NoError(t, err)
	}
	if jobText != "" {
		require.NoError(t, w.WriteField("job_description", jobText))
	}
	if jobFile != nil {
		fw, err := w.CreateFormFile("job_description", "job.txt")
		require.NoError(t, err, "创建JD表单字段失败")
		_, err = fw.Write(jobFile)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func performMatch(h *MatchHandler, buf *bytes.Buffer, contentType string) *app.RequestContext {
	body := ut.Body{Body: bytes.NewReader(buf.Bytes()), Len: buf.Len()}
	c := ut.CreateUtRequestContext(consts.MethodPost, "/api/v1/match", &body, ut.Header{
		Key:   "Content-Type",
		Value: contentType,
	})
	h.HandleMatch(context.Background(), c)
	return c
}

const handlerResume = `Jane Smith

Skills:
Python, React, AWS

Experience:
Software Engineer at Initech, 2019 - 2023`

const handlerJob = `Role: Backend Engineer

Skills: Python, AWS`

func TestHandleMatchSuccess(t *testing.T) {
	h := newTestHandler(t, passthroughExtractor{})

	buf, contentType := buildMatchForm(t, []byte(handlerResume), handlerJob, nil)
	c := performMatch(h, buf, contentType)

	require.Equal(t, consts.StatusOK, c.Response.StatusCode())
	assert.NotEmpty(t, c.Response.Header.Get("X-Request-ID"), "响应应携带请求ID")

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(c.Response.Body(), &result))
	assert.Equal(t, "Jane Smith", result.CandidateName)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Equal(t, 100, result.MatchScores.SkillsMatch, "两项要求技能全部命中")
	assert.False(t, result.Details.SemanticMatchingUsed)
}

func TestHandleMatchJobAsFile(t *testing.T) {
	h := newTestHandler(t, passthroughExtractor{})

	buf, contentType := buildMatchForm(t, []byte(handlerResume), "", []byte(handlerJob))
	c := performMatch(h, buf, contentType)

	require.Equal(t, consts.StatusOK, c.Response.StatusCode(), "JD以文件形式上传同样有效")

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(c.Response.Body(), &result))
	assert.Equal(t, "Backend Engineer", result.JobTitle)
}

func TestHandleMatchMissingResume(t *testing.T) {
	h := newTestHandler(t, passthroughExtractor{})

	buf, contentType := buildMatchForm(t, nil, handlerJob, nil)
	c := performMatch(h, buf, contentType)

	assert.Equal(t, consts.StatusBadRequest, c.Response.StatusCode())
}

func TestHandleMatchMissingJobDescription(t *testing.T) {
	h := newTestHandler(t, passthroughExtractor{})

	buf, contentType := buildMatchForm(t, []byte(handlerResume), "", nil)
	c := performMatch(h, buf, contentType)

	assert.Equal(t, consts.StatusBadRequest, c.Response.StatusCode())
}

func TestHandleMatchOversizedResume(t *testing.T) {
	h := newTestHandler(t, passthroughExtractor{})

	// 上限为1MiB，上传1MiB+1字节
	oversized := bytes.Repeat([]byte("a"), 1<<20+1)
	buf, contentType := buildMatchForm(t, oversized, handlerJob, nil)
	c := performMatch(h, buf, contentType)

	assert.Equal(t, consts.StatusBadRequest, c.Response.StatusCode())
}

func TestHandleMatchUnsupportedFormat(t *testing.T) {
	h := newTestHandler(t, rejectingExtractor{})

	buf, contentType := buildMatchForm(t, []byte(handlerResume), handlerJob, nil)
	c := performMatch(h, buf, contentType)

	assert.Equal(t, consts.StatusBadRequest, c.Response.StatusCode(), "不支持的格式属于请求错误而非服务错误")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(c.Response.Body(), &resp))
	assert.NotEmpty(t, resp["error"])
	assert.NotEmpty(t, resp["request_id"])
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t, passthroughExtractor{})

	c := ut.CreateUtRequestContext(consts.MethodGet, "/api/v1/health", nil)
	h.HandleHealth(context.Background(), c)

	require.Equal(t, consts.StatusOK, c.Response.StatusCode())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(c.Response.Body(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "disabled", resp["semantic_engine"], "未配置引擎时上报disabled")
	assert.NotEmpty(t, resp["version"])
}

func TestClassifyMatchError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"不支持的格式", fmt.Errorf("包装: %w", extractor.ErrUnsupportedFormat), consts.StatusBadRequest},
		{"提取失败", fmt.Errorf("包装: %w", extractor.ErrExtractionFailed), consts.StatusBadRequest},
		{"简历提取错误", processor.NewResumeExtractError("req", extractor.ErrExtractionFailed), consts.StatusBadRequest},
		{"超时", context.DeadlineExceeded, consts.StatusGatewayTimeout},
		{"未知错误", fmt.Errorf("boom"), consts.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyMatchError(tc.err))
		})
	}
}
