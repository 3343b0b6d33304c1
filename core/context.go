package core

import "github.com/rushteam/vecrec/pkg/utils"

// Rater 是引擎对"用户"的全部依赖：一个展示名加一份评分映射。
// 引擎只调用 Ratings()，从不修改用户。
type Rater interface {
	Name() string
	Ratings() Ratings
}

// RecommendContext 承载用户/请求参数，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	User Rater

	// K 是协同过滤预测使用的近邻数
	K int

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数，可在 filter 表达式中通过 rctx.params 访问
	Params map[string]any
}

// Ratings 返回当前用户的评分；无用户时返回 nil。
func (rctx *RecommendContext) Ratings() Ratings {
	if rctx == nil || rctx.User == nil {
		return nil
	}
	return rctx.User.Ratings()
}

// UserName 返回当前用户名。
func (rctx *RecommendContext) UserName() string {
	if rctx == nil || rctx.User == nil {
		return ""
	}
	return rctx.User.Name()
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	rctx.Labels[key] = utils.MergeLabel(rctx.Labels[key], lbl)
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
