// Package ranker 按余弦相似度对候选向量排序
package ranker

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrZeroVector 向量范数为 0，余弦相似度无定义
	ErrZeroVector = errors.New("cosine similarity undefined for zero-norm vector")
	// ErrDimensionMismatch 两个向量长度不一致
	ErrDimensionMismatch = errors.New("vector dimensions differ")
)

// Ranked 排序结果
type Ranked struct {
	Index int     // 候选在输入中的下标
	Score float64 // 与参考向量的余弦相似度
}

// Cosine 计算 dot(a,b) / (|a|*|b|)
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// Rank 计算每个候选与 key 的相似度，按分数降序返回
// 分数相同的候选保持输入顺序
func Rank(key []float64, candidates [][]float64) ([]Ranked, error) {
	out := make([]Ranked, 0, len(candidates))
	for i, c := range candidates {
		score, err := Cosine(key, c)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out = append(out, Ranked{Index: i, Score: score})
	}

	slices.SortStableFunc(out, func(x, y Ranked) int {
		return cmp.Compare(y.Score, x.Score)
	})

	return out, nil
}
