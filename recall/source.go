package recall

import (
	"context"
	"slices"

	"github.com/rushteam/vecrec/core"
)

// Source 表示一个可复用的召回源（内容 / 物品协同过滤 / ...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error)
}

// weightedItem 是带权重的已评分物品。内容推荐用去均值后的评分，
// 协同过滤用原始评分，两者通过不同的构造函数得到，避免混用。
type weightedItem struct {
	item   core.Item
	weight float64
}

// ratedInOrder 按目录顺序（core.Compare）返回已评分物品，保证浮点累加顺序确定。
func ratedInOrder(ratings core.Ratings) []core.Item {
	items := make([]core.Item, 0, len(ratings))
	for it := range ratings {
		items = append(items, it)
	}
	slices.SortFunc(items, core.Compare)
	return items
}

// rawRatings 返回原始评分（协同过滤使用）。
func rawRatings(ratings core.Ratings) []weightedItem {
	items := ratedInOrder(ratings)
	out := make([]weightedItem, len(items))
	for i, it := range items {
		out[i] = weightedItem{item: it, weight: ratings[it]}
	}
	return out
}

// meanRating 返回评分均值；评分为空时均值无定义，返回 INVALID_STATE。
func meanRating(ratings core.Ratings) (float64, error) {
	if len(ratings) == 0 {
		return 0, core.Errorf(core.ModuleRecall, core.ErrorCodeInvalidState,
			"cannot average an empty rating mapping")
	}
	var sum float64
	for _, w := range rawRatings(ratings) {
		sum += w.weight
	}
	return sum / float64(len(ratings)), nil
}

// centeredRatings 返回去均值后的评分（内容推荐使用）。
func centeredRatings(ratings core.Ratings) ([]weightedItem, error) {
	mean, err := meanRating(ratings)
	if err != nil {
		return nil, err
	}
	out := rawRatings(ratings)
	for i := range out {
		out[i].weight -= mean
	}
	return out, nil
}

// best 返回分数最高的候选；并列时保留最先出现的（严格大于才替换）。
// 分数为 NaN 的候选永远不会替换已有的最优值。
func best(cands []*core.Candidate) *core.Candidate {
	var top *core.Candidate
	for _, c := range cands {
		if top == nil || c.Score > top.Score {
			top = c
		}
	}
	return top
}

func noCandidates() error {
	return core.Errorf(core.ModuleRecall, core.ErrorCodeNoCandidates,
		"every catalog item is already rated")
}

func catalogNotSet(name string) error {
	return core.Errorf(core.ModuleRecall, core.ErrorCodeInvalidState, "%s: catalog not set", name)
}
