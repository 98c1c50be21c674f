package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"
)

var tikaTracer = otel.Tracer("resume-match-go/extractor/tika")

// TikaExtractor 调用 Apache Tika 服务提取任意格式文档的纯文本。
// Tika 自己做格式探测，这里只传文件名作为提示。
type TikaExtractor struct {
	serverURL string
	client    *http.Client
	log       zerolog.Logger
}

// TikaOption TikaExtractor 的配置选项
type TikaOption func(*TikaExtractor)

// WithTikaTimeout 配置HTTP客户端超时时间
func WithTikaTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaExtractor) {
		if timeout > 0 {
			e.client.Timeout = timeout
		}
	}
}

// WithTikaClient 替换HTTP客户端
func WithTikaClient(client *http.Client) TikaOption {
	return func(e *TikaExtractor) {
		if client != nil {
			e.client = client
		}
	}
}

// NewTikaExtractor 创建 Tika 客户端
func NewTikaExtractor(serverURL string, options ...TikaOption) *TikaExtractor {
	e := &TikaExtractor{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: 60 * time.Second},
		log:       logger.Component("tika"),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Extract 提取文档纯文本
func (e *TikaExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	startTime := time.Now()

	// 创建请求和span
	ctx, span := tikaTracer.Start(ctx, "PUT /tika",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("net.peer.name", e.serverURL),
		attribute.String("tika.resource_name", tracing.SafeFilename(filename)),
		attribute.Int("http.request.body.size", len(data)),
	)

	url := fmt.Sprintf("%s/tika", e.serverURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "text/plain")
	if filename != "" {
		req.Header.Set("X-Tika-Resource-Name", filename)
	}

	// 注入trace context
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := e.client.Do(req)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeHTTP)
		return "", fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
		tracing.RecordHTTPError(span, err, resp.StatusCode)
		return "", err
	}

	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeHTTP)
		return "", fmt.Errorf("读取Tika响应失败: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.body.size", len(textBytes)))

	e.log.Debug().
		Str("filename", filename).
		Int("chars", len(textBytes)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Tika文本提取完成")

	return string(textBytes), nil
}
