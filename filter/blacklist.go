package filter

import (
	"context"

	"github.com/rushteam/vecrec/core"
)

// BlacklistFilter 是黑名单过滤器。
// Names 按名称屏蔽（所有年份），Items 按 (name, year) 精确屏蔽。
type BlacklistFilter struct {
	Names []string
	Items []core.Item
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(names []string, items ...core.Item) *BlacklistFilter {
	return &BlacklistFilter{Names: names, Items: items}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Candidate,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	for _, name := range f.Names {
		if item.Item.Name == name {
			return true, nil
		}
	}
	for _, it := range f.Items {
		if item.Item == it {
			return true, nil
		}
	}
	return false, nil
}
