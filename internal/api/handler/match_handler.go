package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/semantic"
	"resume-match-go/internal/tracing"
)

// MatchHandler 负责处理匹配相关的API请求
type MatchHandler struct {
	cfg       *config.Config
	processor *processor.MatchProcessor
	engine    *semantic.Engine
	log       zerolog.Logger
}

// NewMatchHandler 创建一个新的 MatchHandler
func NewMatchHandler(cfg *config.Config, proc *processor.MatchProcessor, engine *semantic.Engine) *MatchHandler {
	return &MatchHandler{
		cfg:       cfg,
		processor: proc,
		engine:    engine,
		log:       logger.Component("api"),
	}
}

// HandleMatch 处理简历与职位描述的匹配请求
// POST /api/v1/match
// FormData: resume (file), job_description (text 或 file)
func (h *MatchHandler) HandleMatch(ctx context.Context, c *app.RequestContext) {
	// 1. 生成请求ID，贯穿日志与链路追踪
	uuidV7, err := uuid.NewV7()
	if err != nil {
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "生成请求ID失败"})
		return
	}
	requestID := uuidV7.String()
	c.Header("X-Request-ID", requestID)

	// 2. 获取简历文件
	resumeHeader, err := c.FormFile(constants.FormFieldResume)
	if err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{
			"error":      "无效的匹配请求: 未找到 resume 文件字段",
			"request_id": requestID,
		})
		return
	}

	maxBytes := int64(h.cfg.Server.MaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = constants.MaxUploadBytes
	}
	if resumeHeader.Size > maxBytes {
		c.JSON(consts.StatusBadRequest, utils.H{
			"error":      "简历文件超过大小上限",
			"request_id": requestID,
		})
		return
	}

	resumeBytes, err := readFormFile(resumeHeader)
	if err != nil {
		h.log.Error().Err(err).Str("request_id", requestID).Msg("读取简历文件失败")
		c.JSON(consts.StatusInternalServerError, utils.H{
			"error":      "读取上传文件失败",
			"request_id": requestID,
		})
		return
	}

	// 3. 职位描述：优先取文本字段，其次取同名文件字段
	jobInput, ok := h.resolveJobInput(c, maxBytes)
	if !ok {
		c.JSON(consts.StatusBadRequest, utils.H{
			"error":      "无效的匹配请求: 缺少 job_description",
			"request_id": requestID,
		})
		return
	}

	h.log.Info().
		Str("request_id", requestID).
		Str("resume_filename", tracing.SafeFilename(resumeHeader.Filename)).
		Int64("resume_size", resumeHeader.Size).
		Msg("收到匹配请求")

	// 4. 带超时执行匹配流水线
	reqCtx, cancel := context.WithTimeout(ctx, h.cfg.RequestTimeout())
	defer cancel()

	result, err := h.processor.MatchFiles(reqCtx, requestID,
		processor.FileInput{Data: resumeBytes, Filename: resumeHeader.Filename},
		jobInput,
	)
	if err != nil {
		status := classifyMatchError(err)
		h.log.Error().
			Err(err).
			Str("request_id", requestID).
			Int("status", status).
			Msg("匹配请求处理失败")
		c.JSON(status, utils.H{
			"error":      err.Error(),
			"request_id": requestID,
		})
		return
	}

	// 5. 返回匹配结果
	c.JSON(consts.StatusOK, result)
}

// HandleHealth 健康检查，同时暴露语义引擎状态供运维观察降级情况
// GET /api/v1/health
func (h *MatchHandler) HandleHealth(ctx context.Context, c *app.RequestContext) {
	engineState := "disabled"
	if h.engine != nil {
		engineState = h.engine.State().String()
	}

	c.JSON(consts.StatusOK, utils.H{
		"status":          "ok",
		"semantic_engine": engineState,
		"version":         constants.AppVersion,
	})
}

// resolveJobInput 解析职位描述输入。文本字段优先，文件字段兜底。
func (h *MatchHandler) resolveJobInput(c *app.RequestContext, maxBytes int64) (processor.FileInput, bool) {
	if text := c.PostForm(constants.FormFieldJobDesc); text != "" {
		return processor.FileInput{Data: []byte(text), Filename: "job_description.txt"}, true
	}

	jobHeader, err := c.FormFile(constants.FormFieldJobDesc)
	if err != nil || jobHeader.Size > maxBytes {
		return processor.FileInput{}, false
	}
	jobBytes, err := readFormFile(jobHeader)
	if err != nil {
		return processor.FileInput{}, false
	}
	return processor.FileInput{Data: jobBytes, Filename: jobHeader.Filename}, true
}

// classifyMatchError 把流水线错误映射为HTTP状态码。
// 输入内容导致的失败一律算请求错误，只有基础设施问题才是500。
func classifyMatchError(err error) int {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat),
		errors.Is(err, extractor.ErrExtractionFailed),
		errors.Is(err, processor.ErrResumeExtractFailed),
		errors.Is(err, processor.ErrJobExtractFailed):
		return consts.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return consts.StatusGatewayTimeout
	default:
		return consts.StatusInternalServerError
	}
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
