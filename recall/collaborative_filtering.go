package recall

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/rushteam/vecrec/catalog"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pipeline"
	"github.com/rushteam/vecrec/pkg/utils"
	"github.com/rushteam/vecrec/vector"
)

// ItemBasedCF 是基于物品的协同过滤召回源（Item-based Collaborative Filtering, Item-CF）。
//
// 核心思想："用户对相似物品的评分也相似"
//
// 算法流程（对每个未评分的目标物品）：
//  1. 计算目标物品与每个已评分物品的特征余弦相似度
//  2. 按相似度降序取 TopK 个已评分物品
//  3. 预测分 = Σ(sim_i * rating_i) / Σ(sim_i)，使用原始评分（不去均值）
//  4. 推荐预测分最高的物品（并列取目录顺序中最先出现的）
//
// 约束：
//   - k 必须在 [1, 已评分物品数] 之间，越界返回 INVALID_ARGUMENT，不做截断
//   - 相似度之和为 0 时预测无定义，返回 INVALID_STATE
type ItemBasedCF struct {
	Catalog *catalog.Catalog

	// K 作为 Pipeline 节点使用时的默认近邻数；RecommendContext.K > 0 时优先使用后者
	K int
}

func (r *ItemBasedCF) Name() string        { return "recall.i2i" }
func (r *ItemBasedCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ItemBasedCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口，返回全部未评分物品（目录顺序）及其预测分。
func (r *ItemBasedCF) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := r.K
	if rctx != nil && rctx.K > 0 {
		k = rctx.K
	}
	return r.Rank(rctx.Ratings(), k)
}

type itemSimilarity struct {
	weightedItem
	similarity float64
}

// Predict 预测用户对 target 的评分。
func (r *ItemBasedCF) Predict(ratings core.Ratings, target core.Item, k int) (float64, error) {
	if r.Catalog == nil {
		return 0, catalogNotSet(r.Name())
	}
	if k <= 0 || k > len(ratings) {
		return 0, core.Errorf(core.ModuleRecall, core.ErrorCodeInvalidArgument,
			"k must be in [1, %d], got %d", len(ratings), k)
	}
	targetFeatures, err := r.Catalog.FeaturesOf(target)
	if err != nil {
		return 0, err
	}

	neighbours, err := r.mostSimilar(rawRatings(ratings), targetFeatures, k)
	if err != nil {
		return 0, err
	}

	var weighted, simSum float64
	for _, n := range neighbours {
		weighted += n.similarity * n.weight
		simSum += n.similarity
	}
	if simSum == 0 {
		return 0, core.Errorf(core.ModuleRecall, core.ErrorCodeInvalidState,
			"similarity sum of the %d nearest items to %q (%d) is zero", k, target.Name, target.Year)
	}
	return weighted / simSum, nil
}

// mostSimilar 返回与目标特征最相似的 k 个已评分物品。
// 稳定排序：相似度相同保留目录顺序；NaN 相似度排在最后。
func (r *ItemBasedCF) mostSimilar(rated []weightedItem, target []float64, k int) ([]itemSimilarity, error) {
	sims := make([]itemSimilarity, 0, len(rated))
	for _, w := range rated {
		features, err := r.Catalog.FeaturesOf(w.item)
		if err != nil {
			return nil, err
		}
		sim, err := vector.Cosine(features, target)
		if err != nil {
			return nil, err
		}
		sims = append(sims, itemSimilarity{weightedItem: w, similarity: sim})
	}
	sort.SliceStable(sims, func(i, j int) bool {
		return descNaNLast(sims[i].similarity, sims[j].similarity)
	})
	return sims[:k], nil
}

// descNaNLast 是降序比较：a 排在 b 之前当且仅当 a > b；NaN 视为最小。
func descNaNLast(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	return math.IsNaN(b) || a > b
}

// Rank 按目录顺序给每个未评分物品打预测分。
func (r *ItemBasedCF) Rank(ratings core.Ratings, k int) ([]*core.Candidate, error) {
	if r.Catalog == nil {
		return nil, catalogNotSet(r.Name())
	}
	unrated := r.Catalog.UnratedItems(ratings)
	if len(unrated) == 0 {
		return nil, noCandidates()
	}

	out := make([]*core.Candidate, 0, len(unrated))
	for _, it := range unrated {
		score, err := r.Predict(ratings, it, k)
		if err != nil {
			return nil, err
		}
		c := core.NewCandidate(it, score)
		c.PutLabel("recall_source", utils.Label{Value: "i2i", Source: "recall"})
		c.PutLabel("cf_k", utils.Label{Value: strconv.Itoa(k), Source: "recall"})
		out = append(out, c)
	}
	return out, nil
}

// Recommend 返回预测分最高的未评分物品。
func (r *ItemBasedCF) Recommend(ratings core.Ratings, k int) (core.Item, error) {
	cands, err := r.Rank(ratings, k)
	if err != nil {
		return core.Item{}, err
	}
	return best(cands).Item, nil
}

// I2IRecall 是 ItemBasedCF 的类型别名，i2i (Item-to-Item) 是工业界的习惯叫法。
type I2IRecall = ItemBasedCF
