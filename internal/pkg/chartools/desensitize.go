package chartools

import (
	"strings"
)

// ScrubName 将文本中的角色名称替换为 replacement
//
// 先替换完整名称，再逐个替换以空格分隔的名称片段。使用字面子串替换，
// 不考虑单词边界（"Marion" 中的 "Mario" 也会被替换）。
//
// Args:
//
//	text: 待处理文本
//	name: 角色名称
//	replacement: 替换文本
//
// Returns:
//
//	string: 替换后的文本
func ScrubName(text, name, replacement string) string {
	if name == "" {
		return text
	}

	scrubbed := strings.ReplaceAll(text, name, replacement)

	for _, component := range strings.Split(name, " ") {
		// 连续空格会切出空片段，空串替换会在每个字符之间插入 replacement
		if component == "" {
			continue
		}
		scrubbed = strings.ReplaceAll(scrubbed, component, replacement)
	}

	return scrubbed
}
