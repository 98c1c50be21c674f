package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateMD5 计算字节内容的 MD5 摘要并返回十六进制串。
// 提取缓存用它做键：同一份文件内容不论文件名如何都命中同一条缓存。
func CalculateMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
