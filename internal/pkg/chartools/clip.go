package chartools

import (
	"unicode/utf8"
)

// 各图片模型的提示词长度上限（字符数）
var promptLimits = map[string]int{
	"dall-e-2": 1000,
	"dall-e-3": 4000,
}

// PromptLimit 返回模型的提示词长度上限，未知模型返回 0（不裁剪）
func PromptLimit(imageModel string) int {
	return promptLimits[imageModel]
}

// ClipPrompt 将提示词截断为前 limit 个字符
// 不考虑单词边界；limit <= 0 时不裁剪。第二个返回值表示是否发生了裁剪
func ClipPrompt(prompt string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(prompt) <= limit {
		return prompt, false
	}

	n := 0
	for i := range prompt {
		if n == limit {
			return prompt[:i], true
		}
		n++
	}
	return prompt, false
}
