package core

import (
	"cmp"
	"strings"

	"github.com/rushteam/vecrec/pkg/utils"
)

// Item 是物品的身份：(Name, Year) 二元组，值类型、可比较、可作为 map key。
// catalog 和用户评分都持有它的拷贝，不存在共享的可变节点。
type Item struct {
	Name string
	Year int
}

// NewItem 构造物品身份。
func NewItem(name string, year int) Item {
	return Item{Name: name, Year: year}
}

// String 返回展示名（catalog 调试列表只输出名称）。
func (it Item) String() string {
	return it.Name
}

// Compare 先按名称字典序，再按年份数值序。
func Compare(a, b Item) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Year, b.Year)
}

// Less 等价于 Compare(a, b) < 0。
func Less(a, b Item) bool {
	return Compare(a, b) < 0
}

// Ratings 是用户的评分映射：物品 -> 评分。由用户侧持有，引擎只读。
type Ratings map[Item]float64

// Clone 返回浅拷贝。
func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has 判断物品是否已被评分。
func (r Ratings) Has(it Item) bool {
	_, ok := r[it]
	return ok
}

// Candidate 是推荐链路中的候选结构：物品、分数、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Candidate struct {
	Item   Item
	Score  float64
	Labels map[string]utils.Label
}

func NewCandidate(it Item, score float64) *Candidate {
	return &Candidate{
		Item:   it,
		Score:  score,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	c.Labels[key] = utils.MergeLabel(c.Labels[key], lbl)
}
