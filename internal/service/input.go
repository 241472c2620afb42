package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chargen/internal/model"
)

// CollectQuery 从交互输入读取角色、替换名、场景（native 模式跳过）和风格
// 所有输入在发起任何网络请求之前读取完毕
func CollectQuery(r io.Reader, w io.Writer, native bool) (*model.CharacterQuery, error) {
	scanner := bufio.NewScanner(r)

	ask := func(label string) (string, error) {
		if _, err := fmt.Fprint(w, label); err != nil {
			return "", err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("read %q: %w", strings.TrimSpace(label), err)
			}
			return "", fmt.Errorf("read %q: %w", strings.TrimSpace(label), io.ErrUnexpectedEOF)
		}
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}

	q := &model.CharacterQuery{}
	var err error

	if q.Name, err = ask("Character: "); err != nil {
		return nil, err
	}
	if q.Replacement, err = ask("Name replacement: "); err != nil {
		return nil, err
	}
	if !native {
		if q.Setting, err = ask("Setting: "); err != nil {
			return nil, err
		}
		q.HasSetting = true
	}
	if q.Style, err = ask("Style: "); err != nil {
		return nil, err
	}

	if q.Name == "" {
		return nil, errors.New("character name is required")
	}
	return q, nil
}
