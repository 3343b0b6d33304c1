package user

import (
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-json"

	"github.com/rushteam/vecrec/core"
)

// RatingStore 把用户评分快照保存到 core.Store（内存 / Redis）。
// key 形如 {KeyPrefix}:user:{name}，value 是按物品顺序排列的 JSON 数组。
type RatingStore struct {
	store core.Store

	KeyPrefix string
	// TTL 秒，0 表示不过期
	TTL int
}

type ratingRecord struct {
	Name   string  `json:"name"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
}

// NewRatingStore 创建评分快照存储，keyPrefix 为空时使用 "ratings"。
func NewRatingStore(s core.Store, keyPrefix string) *RatingStore {
	if keyPrefix == "" {
		keyPrefix = "ratings"
	}
	return &RatingStore{store: s, KeyPrefix: keyPrefix}
}

func (s *RatingStore) key(name string) string {
	return s.KeyPrefix + ":user:" + name
}

// Save 保存用户当前的评分。
func (s *RatingStore) Save(ctx context.Context, u core.Rater) error {
	data, err := encodeRatings(u.Ratings())
	if err != nil {
		return fmt.Errorf("encode ratings of %q: %w", u.Name(), err)
	}
	return s.store.Set(ctx, s.key(u.Name()), data, s.ttl()...)
}

// Load 读取用户评分；不存在时返回 NOT_FOUND。
func (s *RatingStore) Load(ctx context.Context, name string) (*User, error) {
	data, err := s.store.Get(ctx, s.key(name))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.Errorf(core.ModuleStore, core.ErrorCodeNotFound, "no ratings saved for user %q", name)
		}
		return nil, err
	}
	ratings, err := decodeRatings(data)
	if err != nil {
		return nil, fmt.Errorf("decode ratings of %q: %w", name, err)
	}
	return New(name, ratings), nil
}

// LoadMany 批量读取，返回顺序与 names 一致；缺失的用户被跳过。
func (s *RatingStore) LoadMany(ctx context.Context, names []string) ([]*User, error) {
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = s.key(name)
	}
	values, err := s.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]*User, 0, len(values))
	for i, name := range names {
		data, ok := values[keys[i]]
		if !ok {
			continue
		}
		ratings, err := decodeRatings(data)
		if err != nil {
			return nil, fmt.Errorf("decode ratings of %q: %w", name, err)
		}
		out = append(out, New(name, ratings))
	}
	return out, nil
}

// Delete 删除用户的评分快照。
func (s *RatingStore) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, s.key(name))
}

func (s *RatingStore) ttl() []int {
	if s.TTL > 0 {
		return []int{s.TTL}
	}
	return nil
}

func encodeRatings(ratings core.Ratings) ([]byte, error) {
	items := make([]core.Item, 0, len(ratings))
	for it := range ratings {
		items = append(items, it)
	}
	slices.SortFunc(items, core.Compare)

	records := make([]ratingRecord, len(items))
	for i, it := range items {
		records[i] = ratingRecord{Name: it.Name, Year: it.Year, Rating: ratings[it]}
	}
	return json.Marshal(records)
}

func decodeRatings(data []byte) (core.Ratings, error) {
	var records []ratingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	ratings := make(core.Ratings, len(records))
	for _, r := range records {
		ratings[core.NewItem(r.Name, r.Year)] = r.Rating
	}
	return ratings, nil
}
