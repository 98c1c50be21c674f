package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrResumeExtractFailed = errors.New("提取简历文本失败")
	ErrJobExtractFailed    = errors.New("提取职位描述文本失败")
)

// MatchProcessError 包含详细错误信息的自定义错误
type MatchProcessError struct {
	RequestID string
	Op        string
	BaseErr   error
	Cause     error
}

func (e *MatchProcessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (操作:%s, 请求:%s): %s", e.BaseErr, e.Op, e.RequestID, e.Cause)
	}
	return fmt.Sprintf("%s (操作:%s, 请求:%s)", e.BaseErr, e.Op, e.RequestID)
}

// Unwrap 同时暴露分类哨兵和底层原因，errors.Is 两者都能命中
func (e *MatchProcessError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.BaseErr, e.Cause}
	}
	return []error{e.BaseErr}
}

// 错误构造函数
func NewResumeExtractError(requestID string, cause error) error {
	return &MatchProcessError{
		RequestID: requestID,
		Op:        "extract_resume",
		BaseErr:   ErrResumeExtractFailed,
		Cause:     cause,
	}
}

func NewJobExtractError(requestID string, cause error) error {
	return &MatchProcessError{
		RequestID: requestID,
		Op:        "extract_job",
		BaseErr:   ErrJobExtractFailed,
		Cause:     cause,
	}
}
