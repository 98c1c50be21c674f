package extractor

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"resume-match-go/internal/logger"
)

// EinoPDFExtractor 使用 Eino PDF Parser 在进程内提取 PDF 文本，
// 不依赖外部服务。
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
	log    zerolog.Logger
}

// NewEinoPDFExtractor 初始化本地 PDF 提取器。
// ToPages 关闭，整个文档作为一段连续文本返回。
func NewEinoPDFExtractor(ctx context.Context) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建PDF解析器失败: %w", err)
	}
	return &EinoPDFExtractor{
		parser: p,
		log:    logger.Component("pdf_eino"),
	}, nil
}

// Extract 提取 PDF 纯文本
func (e *EinoPDFExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(filename),
	)
	if err != nil {
		return "", fmt.Errorf("解析PDF失败: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("PDF解析无结果: %s", filename)
	}

	var buf bytes.Buffer
	for i, doc := range docs {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(doc.Content)
	}

	e.log.Debug().
		Str("filename", filename).
		Int("chars", buf.Len()).
		Dur("elapsed", time.Since(startTime)).
		Msg("PDF文本提取完成")

	return buf.String(), nil
}
