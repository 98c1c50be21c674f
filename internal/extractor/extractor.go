// Package extractor 负责把上传的简历/职位文件转成纯文本。
// PDF 走本地解析或 Tika，DOC/DOCX 只能走 Tika，纯文本直接透传。
package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
)

var (
	// ErrUnsupportedFormat 文件格式不受支持
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	// ErrExtractionFailed 提取过程失败
	ErrExtractionFailed = errors.New("文本提取失败")
)

// TextExtractor 从文件内容提取纯文本
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// Dispatcher 按文件扩展名路由到具体提取器
type Dispatcher struct {
	pdf   TextExtractor
	tika  TextExtractor
	cache *resultCache
	log   zerolog.Logger
}

// DispatcherOption Dispatcher 的可选配置
type DispatcherOption func(*Dispatcher)

// WithPDFExtractor 指定 PDF 提取器
func WithPDFExtractor(e TextExtractor) DispatcherOption {
	return func(d *Dispatcher) {
		d.pdf = e
	}
}

// WithTikaExtractor 指定 Tika 提取器，用于 DOC/DOCX 等其他格式
func WithTikaExtractor(e TextExtractor) DispatcherOption {
	return func(d *Dispatcher) {
		d.tika = e
	}
}

// WithCacheSize 设置结果缓存容量，0 表示关闭缓存
func WithCacheSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.cache = newResultCache(n)
		} else {
			d.cache = nil
		}
	}
}

// NewDispatcher 创建分发器
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		cache: newResultCache(128),
		log:   logger.Component("extractor"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDispatcherFromConfig 根据配置组装分发器。PDF 引擎可选本地 eino
// 解析或 Tika，DOC/DOCX 始终依赖 Tika。
func NewDispatcherFromConfig(ctx context.Context, cfg *config.Config) (*Dispatcher, error) {
	var tika TextExtractor
	if cfg.Tika.ServerURL != "" {
		tika = NewTikaExtractor(cfg.Tika.ServerURL, WithTikaTimeout(time.Duration(cfg.Tika.Timeout)*time.Second))
	}

	var pdf TextExtractor
	switch cfg.Extractor.PDFEngine {
	case "tika":
		if tika == nil {
			return nil, fmt.Errorf("PDF引擎配置为tika但未配置Tika服务地址")
		}
		pdf = tika
	default:
		einoPDF, err := NewEinoPDFExtractor(ctx)
		if err != nil {
			return nil, fmt.Errorf("初始化PDF解析器失败: %w", err)
		}
		pdf = einoPDF
	}

	return NewDispatcher(
		WithPDFExtractor(pdf),
		WithTikaExtractor(tika),
		WithCacheSize(cfg.Extractor.CacheSize),
	), nil
}

// Extract 提取文件纯文本。相同内容的重复上传直接命中缓存。
func (d *Dispatcher) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if d.cache != nil {
		if text, ok := d.cache.get(data); ok {
			d.log.Debug().Str("filename", filename).Msg("提取结果缓存命中")
			return text, nil
		}
	}

	text, err := d.dispatch(ctx, data, filename)
	if err != nil {
		return "", err
	}

	if d.cache != nil {
		d.cache.put(data, text)
	}
	return text, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, data []byte, filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt", ".text", ".md", "":
		// 纯文本直接透传，非法 UTF-8 字节丢弃
		return strings.ToValidUTF8(string(data), ""), nil
	case ".pdf":
		if d.pdf == nil {
			return "", fmt.Errorf("%w: 未配置PDF提取器", ErrUnsupportedFormat)
		}
		text, err := d.pdf.Extract(ctx, data, filename)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text, nil
	case ".doc", ".docx", ".rtf", ".odt":
		if d.tika == nil {
			return "", fmt.Errorf("%w: %s 需要Tika服务支持", ErrUnsupportedFormat, ext)
		}
		text, err := d.tika.Extract(ctx, data, filename)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
