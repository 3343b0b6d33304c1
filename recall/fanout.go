package recall

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pipeline"
	"github.com/rushteam/vecrec/pkg/utils"
)

// 合并策略
const (
	MergeFirst = "first" // 按物品去重，保留优先级最高（Sources 中靠前）的那条，合并 labels
	MergeUnion = "union" // 不去重，按 Sources 顺序拼接
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按 Sources 顺序合并结果。
// 任一召回源出错时整体返回错误，除非设置了 IgnoreErrors。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy string        // first / union，默认 first
	IgnoreErrors  bool          // 为 true 时出错的召回源贡献空结果
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return n.Recall(ctx, rctx)
}

// Recall 实现 Source 接口，Fanout 本身也可以嵌套进另一个 Fanout。
func (n *Fanout) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个召回源写自己的槽位，合并时按优先级顺序读取，结果与调度顺序无关
	results := make([][]*core.Candidate, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := src.Recall(recallCtx, rctx)
			if err != nil {
				if n.IgnoreErrors {
					return nil
				}
				return err
			}

			// 记录召回优先级 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(i), Source: "recall"})
			}
			results[i] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	switch n.MergeStrategy {
	case MergeUnion:
		return mergeUnion(results), nil
	default:
		return mergeFirst(results), nil
	}
}

// mergeFirst 按物品去重，保留第一个出现的，后出现的 labels 合并进来。
func mergeFirst(results [][]*core.Candidate) []*core.Candidate {
	seen := make(map[core.Item]*core.Candidate)
	out := make([]*core.Candidate, 0)
	for _, items := range results {
		for _, it := range items {
			if it == nil {
				continue
			}
			if old, ok := seen[it.Item]; ok {
				for _, k := range utils.SortedKeys(it.Labels) {
					old.PutLabel(k, it.Labels[k])
				}
				continue
			}
			seen[it.Item] = it
			out = append(out, it)
		}
	}
	return out
}

func mergeUnion(results [][]*core.Candidate) []*core.Candidate {
	out := make([]*core.Candidate, 0)
	for _, items := range results {
		out = append(out, items...)
	}
	return out
}

var (
	_ Source        = (*Fanout)(nil)
	_ Source        = (*ContentRecall)(nil)
	_ Source        = (*ItemBasedCF)(nil)
	_ pipeline.Node = (*Fanout)(nil)
	_ pipeline.Node = (*ContentRecall)(nil)
	_ pipeline.Node = (*ItemBasedCF)(nil)
)
