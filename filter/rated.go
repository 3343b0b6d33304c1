package filter

import (
	"context"

	"github.com/rushteam/vecrec/core"
)

// RatedFilter 过滤掉用户已经评分过的物品。
// 召回节点本身只产出未评分物品，外部注入候选时用它兜底。
type RatedFilter struct{}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Candidate,
) (bool, error) {
	return rctx.Ratings().Has(item.Item), nil
}
