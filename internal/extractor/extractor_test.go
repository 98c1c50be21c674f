package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor 返回固定文本并记录调用次数
type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.text, f.err
}

func (f *fakeExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestDispatcherPlainText(t *testing.T) {
	d := NewDispatcher()

	text, err := d.Extract(context.Background(), []byte("Go developer\n5 years"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n5 years", text, "纯文本应原样透传")

	// 非法 UTF-8 字节应被丢弃而不是报错
	text, err = d.Extract(context.Background(), []byte{'o', 'k', 0xff, 0xfe}, "note.txt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text, "非法字节应被剔除")
}

func TestDispatcherPDFRouting(t *testing.T) {
	pdf := &fakeExtractor{text: "pdf 内容"}
	d := NewDispatcher(WithPDFExtractor(pdf), WithCacheSize(0))

	text, err := d.Extract(context.Background(), []byte("%PDF-1.4"), "resume.PDF")
	require.NoError(t, err)
	assert.Equal(t, "pdf 内容", text)
	assert.Equal(t, 1, pdf.callCount(), "扩展名大小写不应影响路由")
}

func TestDispatcherDocxRequiresTika(t *testing.T) {
	d := NewDispatcher(WithPDFExtractor(&fakeExtractor{}))

	_, err := d.Extract(context.Background(), []byte("PK"), "resume.docx")
	require.ErrorIs(t, err, ErrUnsupportedFormat, "未配置Tika时DOCX应报不支持")

	tika := &fakeExtractor{text: "docx 内容"}
	d = NewDispatcher(WithTikaExtractor(tika), WithCacheSize(0))
	text, err := d.Extract(context.Background(), []byte("PK"), "resume.docx")
	require.NoError(t, err)
	assert.Equal(t, "docx 内容", text)
}

func TestDispatcherUnsupportedFormat(t *testing.T) {
	d := NewDispatcher(WithPDFExtractor(&fakeExtractor{}), WithTikaExtractor(&fakeExtractor{}))

	_, err := d.Extract(context.Background(), []byte("MZ"), "resume.exe")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDispatcherExtractionFailure(t *testing.T) {
	pdf := &fakeExtractor{err: errors.New("文件损坏")}
	d := NewDispatcher(WithPDFExtractor(pdf))

	_, err := d.Extract(context.Background(), []byte("%PDF"), "broken.pdf")
	require.ErrorIs(t, err, ErrExtractionFailed, "后端失败应映射为提取失败错误")
}

func TestDispatcherCacheDedup(t *testing.T) {
	pdf := &fakeExtractor{text: "缓存测试"}
	d := NewDispatcher(WithPDFExtractor(pdf), WithCacheSize(8))

	data := []byte("%PDF-1.7 same bytes")
	for i := 0; i < 3; i++ {
		text, err := d.Extract(context.Background(), data, "resume.pdf")
		require.NoError(t, err)
		assert.Equal(t, "缓存测试", text)
	}
	assert.Equal(t, 1, pdf.callCount(), "相同内容的重复上传应命中缓存")

	_, err := d.Extract(context.Background(), []byte("%PDF-1.7 other bytes"), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, pdf.callCount(), "不同内容不应命中缓存")
}

func TestResultCacheEviction(t *testing.T) {
	cache := newResultCache(2)

	cache.put([]byte("a"), "1")
	cache.put([]byte("b"), "2")
	cache.put([]byte("c"), "3")

	assert.Equal(t, 2, cache.len(), "缓存不应超过容量上限")
	_, ok := cache.get([]byte("a"))
	assert.False(t, ok, "最早的条目应被淘汰")
	_, ok = cache.get([]byte("c"))
	assert.True(t, ok, "最新的条目应保留")
}

func TestTikaExtractor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tika", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))
		assert.Equal(t, "resume.docx", r.Header.Get("X-Tika-Resource-Name"))
		fmt.Fprint(w, "提取出来的文本")
	}))
	defer server.Close()

	tika := NewTikaExtractor(server.URL, WithTikaClient(server.Client()))
	text, err := tika.Extract(context.Background(), []byte("PK fake docx"), "resume.docx")
	require.NoError(t, err)
	assert.Equal(t, "提取出来的文本", text)
}

func TestTikaExtractorServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	tika := NewTikaExtractor(server.URL)
	_, err := tika.Extract(context.Background(), []byte("junk"), "resume.docx")
	require.Error(t, err, "非200状态码应返回错误")
	assert.Contains(t, err.Error(), "422")
}
