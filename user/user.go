// Package user 是引擎的外部协作方：一个带名字的评分映射。
package user

import (
	"strings"
	"sync"

	"github.com/rushteam/vecrec/core"
)

// Registrar 是可以注册物品的目录（catalog.Catalog / engine.Engine 都满足）。
type Registrar interface {
	Register(name string, year int, features []float64) (core.Item, error)
}

// Lister 按目录顺序列出物品名。
type Lister interface {
	Names() []string
}

// User 实现 core.Rater，并发安全。
type User struct {
	name string

	mu      sync.RWMutex
	ratings core.Ratings
}

// New 创建用户，ratings 会被拷贝。
func New(name string, ratings core.Ratings) *User {
	if ratings == nil {
		ratings = make(core.Ratings)
	}
	return &User{name: name, ratings: ratings.Clone()}
}

func (u *User) Name() string {
	return u.name
}

// Ratings 返回评分映射的拷贝，引擎读取期间用户可以继续评分。
func (u *User) Ratings() core.Ratings {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.ratings.Clone()
}

// Rate 写入（或覆盖）一条评分。
func (u *User) Rate(it core.Item, rating float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ratings[it] = rating
}

// AddItem 注册物品并立即评分。注册失败时不写评分。
func (u *User) AddItem(reg Registrar, name string, year int, features []float64, rating float64) (core.Item, error) {
	it, err := reg.Register(name, year, features)
	if err != nil {
		return core.Item{}, err
	}
	u.Rate(it, rating)
	return it, nil
}

// Describe 输出 "name: <name>" 以及目录中的物品名（每行一个）。
func (u *User) Describe(l Lister) string {
	var b strings.Builder
	b.WriteString("name: ")
	b.WriteString(u.name)
	b.WriteByte('\n')
	if l != nil {
		for _, name := range l.Names() {
			b.WriteString(name)
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (u *User) String() string {
	return u.Describe(nil)
}

var _ core.Rater = (*User)(nil)
