package engine

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/vecrec/core"
)

// Strategy 选择推荐算法。
type Strategy string

const (
	StrategyContent Strategy = "content"
	StrategyCF      Strategy = "cf"
)

// ParseStrategy 解析策略名。
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyContent:
		return StrategyContent, nil
	case StrategyCF:
		return StrategyCF, nil
	default:
		return "", core.Errorf(core.ModuleConfig, core.ErrorCodeInvalidArgument,
			"unknown strategy %q (supported: content, cf)", s)
	}
}

// Result 是单个用户的推荐结果。Err 非空时 Item 无意义。
type Result struct {
	User string
	Item core.Item
	Err  error
}

// RecommendBatch 并发地为多个用户推荐，目录在此期间只读。
//
// 单个用户的失败（例如 NO_CANDIDATES）记录在对应的 Result.Err 中，不影响其他用户；
// 只有 ctx 被取消或策略非法时整体返回错误。结果顺序与 users 一致。
func (e *Engine) RecommendBatch(ctx context.Context, users []core.Rater, strategy Strategy, k int) ([]Result, error) {
	var recommend func(core.Rater) (core.Item, error)
	switch strategy {
	case StrategyContent:
		recommend = e.RecommendByContent
	case StrategyCF:
		recommend = func(u core.Rater) (core.Item, error) { return e.RecommendByCF(u, k) }
	default:
		return nil, core.Errorf(core.ModuleRecall, core.ErrorCodeInvalidArgument, "unknown strategy %q", strategy)
	}

	results := make([]Result, len(users))
	eg, egCtx := errgroup.WithContext(ctx)
	if e.batchConcurrency > 0 {
		eg.SetLimit(e.batchConcurrency)
	}
	for i, u := range users {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			it, err := recommend(u)
			results[i] = Result{Item: it, Err: err}
			if u != nil {
				results[i].User = u.Name()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	e.logger.Debug().Str("strategy", string(strategy)).Int("users", len(users)).Int("failed", failed).Msg("batch recommendation")
	return results, nil
}
