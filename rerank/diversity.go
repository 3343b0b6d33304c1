package rerank

import (
	"context"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pipeline"
)

// Diversity 是一个简单的多样性 ReRank：按分组去重，每组只保留首个出现的候选。
// 分组来源：
//   - LabelKey 非空：label[LabelKey].Value（无该 label 的候选不参与去重）
//   - LabelKey 为空：物品名称，即同名不同年份的物品只保留一个
type Diversity struct {
	LabelKey string
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]bool, len(items))
	out := make([]*core.Candidate, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		group := n.groupOf(it)
		if group == "" {
			out = append(out, it)
			continue
		}
		if seen[group] {
			continue
		}
		seen[group] = true
		out = append(out, it)
	}
	return out, nil
}

func (n *Diversity) groupOf(it *core.Candidate) string {
	if n.LabelKey == "" {
		return it.Item.Name
	}
	return it.Labels[n.LabelKey].Value
}
