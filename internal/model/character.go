package model

// CharacterQuery 一次运行的用户输入
// 在运行开始时收集，之后不再修改
type CharacterQuery struct {
	Name        string // 角色名称
	Replacement string // 用于替换角色名称的文本
	Setting     string // 场景，native 模式下为空
	HasSetting  bool   // 是否提供了场景（native 模式为 false）
	Style       string // 视觉风格
}

// Completion 一次对话补全返回的单条文本
type Completion struct {
	Text     string     `json:"text"`
	Template TemplateID `json:"template"` // 产生该文本的模板
}

// TemplateID 提示词模板标识
type TemplateID string

// RankedCandidate 按向量相似度排序后的候选文本
type RankedCandidate struct {
	Index int     `json:"index"` // 在原始候选列表中的位置
	Text  string  `json:"text"`
	Score float64 `json:"score"` // 余弦相似度，理论范围 [-1, 1]
}

// ImageResult 图片生成结果
type ImageResult struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"` // 上游改写后的提示词（可能为空）
}
