// Package vector 提供特征向量的纯函数运算：点积、模长、数乘、余弦相似度。
// 除 AddInPlace 累加到 dst 外，所有函数都不修改入参。
package vector

import (
	"math"

	"github.com/rushteam/vecrec/core"
)

// Dot 计算两个等长向量的点积；长度不一致返回 INVALID_ARGUMENT。
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, core.Errorf(core.ModuleVector, core.ErrorCodeInvalidArgument,
			"dimension mismatch: %d != %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Magnitude 返回向量的欧氏长度。
func Magnitude(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(math.Abs(sum))
}

// Scale 返回 c*v 的新切片。
func Scale(c float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = c * x
	}
	return out
}

// AddInPlace 执行 dst += src。
func AddInPlace(dst, src []float64) error {
	if len(dst) != len(src) {
		return core.Errorf(core.ModuleVector, core.ErrorCodeInvalidArgument,
			"dimension mismatch: %d != %d", len(dst), len(src))
	}
	for i := range src {
		dst[i] += src[i]
	}
	return nil
}

// Cosine 计算余弦相似度：dot(a,b) / (sqrt(|dot(a,a)|) * sqrt(|dot(b,b)|))。
//
// 根号下取绝对值，避免浮点噪声产生极小的负数。
// 任一向量为零向量时结果为 NaN，由调用方决定如何处理。
func Cosine(a, b []float64) (float64, error) {
	ab, err := Dot(a, b)
	if err != nil {
		return 0, err
	}
	aa, _ := Dot(a, a)
	bb, _ := Dot(b, b)
	return ab / (math.Sqrt(math.Abs(aa)) * math.Sqrt(math.Abs(bb))), nil
}
