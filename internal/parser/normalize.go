package parser

import (
	"strings"
	"unicode"

	"resume-match-go/internal/types"
)

// isWordRune 判断是否为 token 组成字符。
// 字母数字之外保留 + # .，使 c++ / c# / node.js 不被拆散。
func isWordRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return r == '+' || r == '#' || r == '.'
}

// Normalize 规范化原始文本：小写、去控制字符、折叠空白、分行、分词。
// 对任意输入都是全函数，空输入得到空结果而不是错误。
func Normalize(raw string) types.NormalizedText {
	if raw == "" {
		return types.NormalizedText{Lines: []string{}, RawLines: []string{}, Tokens: []string{}}
	}

	// 1. 去掉除换行外的控制字符，制表符当作空格
	var cleaned strings.Builder
	cleaned.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r == '\n':
			cleaned.WriteRune('\n')
		case r == '\t' || r == '\r':
			cleaned.WriteRune(' ')
		case unicode.IsControl(r):
			// 丢弃
		default:
			cleaned.WriteRune(r)
		}
	}

	// 2. 按行折叠空白，只保留非空行；小写行与原始行保持平行，
	// 匹配都在小写行上做，原始行只用于姓名/岗位名透传
	split := strings.Split(cleaned.String(), "\n")
	lines := make([]string, 0, len(split))
	rawLines := make([]string, 0, len(split))
	for _, line := range split {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		joined := strings.Join(fields, " ")
		rawLines = append(rawLines, joined)
		lines = append(lines, strings.ToLower(joined))
	}

	text := strings.Join(lines, "\n")

	return types.NormalizedText{
		Text:     text,
		Lines:    lines,
		RawLines: rawLines,
		Tokens:   tokenize(text),
	}
}

// tokenize 按词边界切分文本，词尾的句点去掉（句末的 "java." 和 "java" 等价，
// 但 "node.js" 内部的句点保留）
func tokenize(text string) []string {
	tokens := make([]string, 0, 64)
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := strings.TrimRight(b.String(), ".")
		b.Reset()
		if tok == "" {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		if isWordRune(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// TokenSet 把 token 切片转成集合，供交集类计算使用
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
