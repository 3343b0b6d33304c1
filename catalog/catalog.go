// Package catalog 维护物品目录：(name, year) -> 特征向量 的有序映射。
//
// 目录只会通过注册增长，不提供删除。所有向量的维度由第一个注册的物品确定，
// 之后注册的物品必须与之一致。
package catalog

import (
	"slices"
	"strings"
	"sync"

	"github.com/rushteam/vecrec/core"
)

// DuplicatePolicy 决定同一 (name, year) 被再次注册时的行为。
type DuplicatePolicy string

const (
	// Reject 拒绝重复注册，返回 ALREADY_EXISTS（默认）。
	Reject DuplicatePolicy = "reject"
	// Overwrite 用新的特征向量覆盖旧值。
	Overwrite DuplicatePolicy = "overwrite"
)

// ParseDuplicatePolicy 解析配置中的策略名，空串视为 Reject。
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Reject:
		return Reject, nil
	case Overwrite:
		return Overwrite, nil
	default:
		return "", core.Errorf(core.ModuleCatalog, core.ErrorCodeInvalidArgument,
			"unknown duplicate policy %q (supported: reject, overwrite)", s)
	}
}

// Option 配置 Catalog。
type Option func(*Catalog)

// WithDuplicatePolicy 设置重复注册策略。
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *Catalog) {
		c.policy = p
	}
}

// Catalog 是并发安全的物品目录。
// 插入与全量扫描在同一把读写锁下串行化，扫描不会看到写了一半的映射。
type Catalog struct {
	mu       sync.RWMutex
	features map[core.Item][]float64
	order    []core.Item // 按 core.Compare 升序
	policy   DuplicatePolicy
}

func New(opts ...Option) *Catalog {
	c := &Catalog{
		features: make(map[core.Item][]float64),
		policy:   Reject,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy 返回当前的重复注册策略。
func (c *Catalog) Policy() DuplicatePolicy {
	return c.policy
}

// Register 注册物品并保存特征向量的拷贝，返回可作为 map key 的物品身份。
func (c *Catalog) Register(name string, year int, features []float64) (core.Item, error) {
	it := core.NewItem(name, year)
	if len(features) == 0 {
		return core.Item{}, core.Errorf(core.ModuleCatalog, core.ErrorCodeInvalidArgument,
			"item %q (%d) has no features", name, year)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if dim, ok := c.dimensionLocked(); ok && dim != len(features) {
		return core.Item{}, core.Errorf(core.ModuleCatalog, core.ErrorCodeInvalidArgument,
			"item %q (%d) has %d features, catalog dimension is %d", name, year, len(features), dim)
	}

	if _, exists := c.features[it]; exists {
		if c.policy != Overwrite {
			return core.Item{}, core.Errorf(core.ModuleCatalog, core.ErrorCodeAlreadyExists,
				"item %q (%d) already registered", name, year)
		}
		c.features[it] = slices.Clone(features)
		return it, nil
	}

	c.features[it] = slices.Clone(features)
	pos, _ := slices.BinarySearchFunc(c.order, it, core.Compare)
	c.order = slices.Insert(c.order, pos, it)
	return it, nil
}

// Lookup 按 (name, year) 精确查找。
func (c *Catalog) Lookup(name string, year int) (core.Item, bool) {
	it := core.NewItem(name, year)
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.features[it]
	return it, ok
}

// Find 与 Lookup 相同，但在不存在时返回 NOT_FOUND。
func (c *Catalog) Find(name string, year int) (core.Item, error) {
	it, ok := c.Lookup(name, year)
	if !ok {
		return core.Item{}, core.Errorf(core.ModuleCatalog, core.ErrorCodeNotFound,
			"item %q (%d) not registered", name, year)
	}
	return it, nil
}

// Contains 判断物品是否已注册。
func (c *Catalog) Contains(it core.Item) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.features[it]
	return ok
}

// FeaturesOf 返回物品特征向量的拷贝。
func (c *Catalog) FeaturesOf(it core.Item) ([]float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.features[it]
	if !ok {
		return nil, core.Errorf(core.ModuleCatalog, core.ErrorCodeNotFound,
			"item %q (%d) not registered", it.Name, it.Year)
	}
	return slices.Clone(f), nil
}

// Dimension 返回特征维度；空目录返回 INVALID_STATE。
func (c *Catalog) Dimension() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dim, ok := c.dimensionLocked()
	if !ok {
		return 0, core.Errorf(core.ModuleCatalog, core.ErrorCodeInvalidState, "catalog is empty")
	}
	return dim, nil
}

func (c *Catalog) dimensionLocked() (int, bool) {
	if len(c.order) == 0 {
		return 0, false
	}
	return len(c.features[c.order[0]]), true
}

// UnratedItems 按目录顺序返回 ratings 中不存在的物品。
func (c *Catalog) UnratedItems(ratings core.Ratings) []core.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Item, 0, len(c.order))
	for _, it := range c.order {
		if !ratings.Has(it) {
			out = append(out, it)
		}
	}
	return out
}

// Items 按目录顺序返回全部物品。
func (c *Catalog) Items() []core.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Len 返回物品数量。
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Names 按目录顺序返回物品展示名，仅用于调试/日志。
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	for i, it := range c.order {
		names[i] = it.String()
	}
	return names
}

// String 每行一个物品名。
func (c *Catalog) String() string {
	var b strings.Builder
	for _, name := range c.Names() {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}
