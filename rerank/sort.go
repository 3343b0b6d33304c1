package rerank

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pipeline"
)

// SortNode 按分数降序稳定排序：同分保留输入顺序（即目录顺序），NaN 排在最后。
// 没有 NaN 分数时，排序后首个候选与 recall 的 Recommend 结果一致。
type SortNode struct{}

func (n *SortNode) Name() string        { return "rerank.sort" }
func (n *SortNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	out := make([]*core.Candidate, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Score, out[j].Score
		if math.IsNaN(a) {
			return false
		}
		return math.IsNaN(b) || a > b
	})
	return out, nil
}
