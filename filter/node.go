package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pipeline"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 任何一个过滤器返回 true，该候选就会被移除；任何一个过滤器出错，整个节点返回错误。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Candidate, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		drop, err := n.shouldFilter(ctx, rctx, item)
		if err != nil {
			return nil, err
		}
		if !drop {
			out = append(out, item)
		}
	}
	return out, nil
}

func (n *FilterNode) shouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error) {
	for _, f := range n.Filters {
		ok, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			return false, fmt.Errorf("%s: %w", f.Name(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
