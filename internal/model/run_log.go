package model

import (
	"fmt"
	"strings"
)

// RunLog 按产生顺序累积本次运行的所有中间文本
// 仅由流水线持有，保存模式下在运行结束时整体写入 prompts.txt
type RunLog struct {
	b strings.Builder
}

// Query 写入输入头
func (l *RunLog) Query(q *CharacterQuery) {
	setting := "None"
	if q.HasSetting {
		setting = q.Setting
	}
	fmt.Fprintf(&l.b, "Character: %s\nReplacement: %s\nSetting:%s\nStyle: %s\n\n", q.Name, q.Replacement, setting, q.Style)
}

// Section 写入一个带标题的段落，返回写入的文本
func (l *RunLog) Section(title, body string) string {
	s := fmt.Sprintf("%s:\n%s\n\n", title, body)
	l.b.WriteString(s)
	return s
}

// Raw 原样写入
func (l *RunLog) Raw(s string) {
	l.b.WriteString(s)
}

// String 返回累积的全部文本
func (l *RunLog) String() string {
	return l.b.String()
}
