// Package prompts 提示词模板库
//
// 模板表在包初始化时构建，之后只读。渲染时缺少任何必填字段都会返回
// ErrMissingField，不会输出带占位符的半成品提示词。
package prompts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"chargen/internal/model"
)

// 模板标识
const (
	CharacterDescription  model.TemplateID = "character-description"
	SubjectWithSetting    model.TemplateID = "subject-with-setting"
	SubjectNativeSetting  model.TemplateID = "subject-native-setting"
	StyleSummary          model.TemplateID = "style-summary"
	FinalImagePrompt      model.TemplateID = "final-image-prompt"
	SimplifiedImagePrompt model.TemplateID = "final-image-prompt-simplified"
)

var (
	// ErrUnknownTemplate 模板不存在
	ErrUnknownTemplate = errors.New("unknown prompt template")
	// ErrMissingField 缺少必填字段
	ErrMissingField = errors.New("missing prompt field")
)

// Meta 模板元信息
type Meta struct {
	ID        model.TemplateID
	Fields    []string // 必填字段
	MaxTokens int      // 对话补全的 max_tokens，0 表示不调用模型
}

type entry struct {
	meta Meta
	tmpl *template.Template
}

var table = map[model.TemplateID]entry{}

func register(id model.TemplateID, maxTokens int, text string, fields ...string) {
	table[id] = entry{
		meta: Meta{ID: id, Fields: fields, MaxTokens: maxTokens},
		tmpl: template.Must(template.New(string(id)).Option("missingkey=error").Parse(text)),
	}
}

func init() {
	register(CharacterDescription, 250,
		"Give a detailed physical description of the character {{.character}} in 50 words.",
		"character")

	register(SubjectWithSetting, 500, `Create a detailed physical description of the following subject and setting in 100 words.

Subject: {{.subject}}

Setting: {{.setting}}
`, "subject", "setting")

	register(SubjectNativeSetting, 500, `Create a detailed physical description of the following subject in an appropriate setting in 100 words.

Subject: {{.character}}
`, "character")

	register(StyleSummary, 150,
		"Create a 50 word summary of the visual aspects of the following artistic style: {{.style}}",
		"style")

	register(FinalImagePrompt, 700, `Write a prompt for an image generator using the following content and style in 150 words.

Image content: {{.content}}

Image Style: {{.style}}
`, "content", "style")

	register(SimplifiedImagePrompt, 0, `{{.scene_details}}

Style: {{.style}}`, "scene_details", "style")
}

// Lookup 返回模板元信息
func Lookup(id model.TemplateID) (Meta, error) {
	e, ok := table[id]
	if !ok {
		return Meta{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	meta := e.meta
	meta.Fields = slices.Clone(meta.Fields)
	return meta, nil
}

// IDs 返回所有模板标识（有序）
func IDs() []model.TemplateID {
	ids := make([]model.TemplateID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Render 用 fields 填充模板
func Render(id model.TemplateID, fields map[string]string) (string, error) {
	e, ok := table[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}

	var missing []string
	for _, f := range e.meta.Fields {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: template %s requires %s", ErrMissingField, id, strings.Join(missing, ", "))
	}

	var b strings.Builder
	if err := e.tmpl.Execute(&b, fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	return b.String(), nil
}
