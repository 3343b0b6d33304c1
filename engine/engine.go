// Package engine 是推荐引擎的对外入口：物品目录 + 内容推荐 + 物品协同过滤。
//
// 引擎只通过 core.Rater 读取用户评分，从不修改用户；目录只通过 Register 增长。
//
// 示例：
//
//	e := engine.New(catalog.New())
//	alien, _ := e.Register("Alien", 1979, []float64{7, 2, 9, 1})
//	u := user.New("alice", core.Ratings{alien: 8})
//	it, err := e.RecommendByContent(u)
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rushteam/vecrec/catalog"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/recall"
)

// Engine 组合目录与两种推荐算法，两种算法互不依赖。
type Engine struct {
	catalog *catalog.Catalog
	content *recall.ContentRecall
	cf      *recall.ItemBasedCF

	logger           zerolog.Logger
	batchConcurrency int
}

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 注入 logger，默认不输出。
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l.With().Str("component", "engine").Logger()
	}
}

// WithBatchConcurrency 设置 RecommendBatch 的最大并发数，<= 0 表示不限制。
func WithBatchConcurrency(n int) Option {
	return func(e *Engine) {
		e.batchConcurrency = n
	}
}

// New 创建引擎；cat 为 nil 时使用默认配置的空目录。
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.New()
	}
	e := &Engine{
		catalog: cat,
		content: &recall.ContentRecall{Catalog: cat},
		cf:      &recall.ItemBasedCF{Catalog: cat},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog 返回底层目录。
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Register 注册物品。
func (e *Engine) Register(name string, year int, features []float64) (core.Item, error) {
	it, err := e.catalog.Register(name, year, features)
	if err != nil {
		e.logger.Debug().Err(err).Str("item", name).Int("year", year).Msg("register rejected")
		return core.Item{}, err
	}
	e.logger.Debug().Str("item", name).Int("year", year).Int("dim", len(features)).Msg("item registered")
	return it, nil
}

// Lookup 按 (name, year) 查找物品。
func (e *Engine) Lookup(name string, year int) (core.Item, bool) {
	return e.catalog.Lookup(name, year)
}

// UnratedItems 按目录顺序返回用户未评分的物品。
func (e *Engine) UnratedItems(u core.Rater) []core.Item {
	if u == nil {
		return e.catalog.Items()
	}
	return e.catalog.UnratedItems(u.Ratings())
}

// RecommendByContent 基于内容推荐一个用户未评分的物品。
func (e *Engine) RecommendByContent(u core.Rater) (core.Item, error) {
	if err := checkUser(u); err != nil {
		return core.Item{}, err
	}
	it, err := e.content.Recommend(u.Ratings())
	if err != nil {
		return core.Item{}, fmt.Errorf("recommend by content for %q: %w", u.Name(), err)
	}
	e.logger.Debug().Str("user", u.Name()).Str("item", it.Name).Int("year", it.Year).Msg("content recommendation")
	return it, nil
}

// RecommendByCF 基于物品协同过滤推荐一个用户未评分的物品。
func (e *Engine) RecommendByCF(u core.Rater, k int) (core.Item, error) {
	if err := checkUser(u); err != nil {
		return core.Item{}, err
	}
	it, err := e.cf.Recommend(u.Ratings(), k)
	if err != nil {
		return core.Item{}, fmt.Errorf("recommend by cf for %q: %w", u.Name(), err)
	}
	e.logger.Debug().Str("user", u.Name()).Str("item", it.Name).Int("year", it.Year).Int("k", k).Msg("cf recommendation")
	return it, nil
}

// PredictScore 预测用户对物品的评分。
func (e *Engine) PredictScore(u core.Rater, it core.Item, k int) (float64, error) {
	if err := checkUser(u); err != nil {
		return 0, err
	}
	score, err := e.cf.Predict(u.Ratings(), it, k)
	if err != nil {
		return 0, fmt.Errorf("predict %q (%d) for %q: %w", it.Name, it.Year, u.Name(), err)
	}
	return score, nil
}

// PredictScoreByName 先按 (name, year) 查找物品再预测；未注册返回 NOT_FOUND。
func (e *Engine) PredictScoreByName(u core.Rater, name string, year int, k int) (float64, error) {
	it, err := e.catalog.Find(name, year)
	if err != nil {
		return 0, err
	}
	return e.PredictScore(u, it, k)
}

// Names 按目录顺序返回物品名，仅用于调试/日志。
func (e *Engine) Names() []string {
	return e.catalog.Names()
}

// String 每行一个物品名。
func (e *Engine) String() string {
	return e.catalog.String()
}

func checkUser(u core.Rater) error {
	if u == nil {
		return core.Errorf(core.ModuleRecall, core.ErrorCodeInvalidArgument, "user is nil")
	}
	return nil
}
