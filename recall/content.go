package recall

import (
	"context"

	"github.com/rushteam/vecrec/catalog"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pipeline"
	"github.com/rushteam/vecrec/pkg/utils"
	"github.com/rushteam/vecrec/vector"
)

// ContentRecall 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："用户喜欢具有某些特征的物品，推荐具有相似特征的其他物品"
//
// 算法流程：
//  1. 计算用户评分均值，得到去均值评分
//  2. 偏好向量 = Σ(去均值评分_i * 物品特征_i)
//  3. 对每个未评分物品计算与偏好向量的余弦相似度
//  4. 取相似度最高者（并列取目录顺序中最先出现的）
//
// ContentRecall 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type ContentRecall struct {
	Catalog *catalog.Catalog
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口，返回全部未评分物品（目录顺序）及其相似度。
func (r *ContentRecall) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Rank(rctx.Ratings())
}

// PreferenceVector 由去均值评分加权物品特征得到用户偏好向量。
func (r *ContentRecall) PreferenceVector(ratings core.Ratings) ([]float64, error) {
	if r.Catalog == nil {
		return nil, catalogNotSet(r.Name())
	}
	centered, err := centeredRatings(ratings)
	if err != nil {
		return nil, err
	}
	dim, err := r.Catalog.Dimension()
	if err != nil {
		return nil, err
	}

	pref := make([]float64, dim)
	for _, w := range centered {
		features, err := r.Catalog.FeaturesOf(w.item)
		if err != nil {
			return nil, err
		}
		if err := vector.AddInPlace(pref, vector.Scale(w.weight, features)); err != nil {
			return nil, err
		}
	}
	return pref, nil
}

// Rank 按目录顺序给每个未评分物品打分（与偏好向量的余弦相似度）。
// 零偏好向量会得到 NaN 分数，原样返回。
func (r *ContentRecall) Rank(ratings core.Ratings) ([]*core.Candidate, error) {
	pref, err := r.PreferenceVector(ratings)
	if err != nil {
		return nil, err
	}
	unrated := r.Catalog.UnratedItems(ratings)
	if len(unrated) == 0 {
		return nil, noCandidates()
	}

	out := make([]*core.Candidate, 0, len(unrated))
	for _, it := range unrated {
		features, err := r.Catalog.FeaturesOf(it)
		if err != nil {
			return nil, err
		}
		score, err := vector.Cosine(pref, features)
		if err != nil {
			return nil, err
		}
		c := core.NewCandidate(it, score)
		c.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		c.PutLabel("recall_metric", utils.Label{Value: "cosine", Source: "recall"})
		out = append(out, c)
	}
	return out, nil
}

// Recommend 返回与偏好向量最相似的未评分物品。
func (r *ContentRecall) Recommend(ratings core.Ratings) (core.Item, error) {
	cands, err := r.Rank(ratings)
	if err != nil {
		return core.Item{}, err
	}
	return best(cands).Item, nil
}
