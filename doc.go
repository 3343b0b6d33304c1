// Package vecrec 是一个基于特征向量的物品目录与推荐引擎。
//
// 设计要点：
// - 两种互相独立的推荐算法：基于内容（用户偏好向量与物品特征的余弦相似度）
//   和基于物品的协同过滤（用最相似的 k 个已评分物品预测评分）
// - 目录按 (name, year) 有序，结果确定：并列时取目录中最先出现的物品
// - Pipeline-first: 召回、过滤、重排都可以通过 Node 串联并由 YAML 配置驱动
package vecrec

import (
	"github.com/rushteam/vecrec/catalog"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/engine"
	"github.com/rushteam/vecrec/pipeline"
)

// 轻量 facade：便于用户直接 import "vecrec" 使用核心抽象。
type (
	Item     = core.Item
	Ratings  = core.Ratings
	Rater    = core.Rater
	Catalog  = catalog.Catalog
	Engine   = engine.Engine
	Pipeline = pipeline.Pipeline
	Node     = pipeline.Node
	Kind     = pipeline.Kind
)

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// New 创建一个使用默认目录（重复注册即报错）的引擎。
func New(opts ...engine.Option) *Engine {
	return engine.New(nil, opts...)
}
