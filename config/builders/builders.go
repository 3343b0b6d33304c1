// Package builders 在 init 中把内置 Node 注册到 config 注册表。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/vecrec/config"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/filter"
	"github.com/rushteam/vecrec/pipeline"
	"github.com/rushteam/vecrec/pkg/conv"
	"github.com/rushteam/vecrec/recall"
	"github.com/rushteam/vecrec/rerank"
)

func init() {
	config.Register("recall.content", BuildContentNode)
	config.Register("recall.cf", BuildCFNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.sort", BuildSortNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

func requireCatalog(env pipeline.Env, nodeType string) error {
	if env.Catalog == nil {
		return core.Errorf(core.ModuleConfig, core.ErrorCodeInvalidState, "%s: catalog not set in env", nodeType)
	}
	return nil
}

func BuildContentNode(env pipeline.Env, _ map[string]any) (pipeline.Node, error) {
	if err := requireCatalog(env, "recall.content"); err != nil {
		return nil, err
	}
	return &recall.ContentRecall{Catalog: env.Catalog}, nil
}

// BuildCFNode 的 k 只作为默认值，RecommendContext.K > 0 时以请求为准。
func BuildCFNode(env pipeline.Env, cfg map[string]any) (pipeline.Node, error) {
	if err := requireCatalog(env, "recall.cf"); err != nil {
		return nil, err
	}
	return &recall.ItemBasedCF{Catalog: env.Catalog, K: int(conv.ConfigGetInt64(cfg, "k", 0))}, nil
}

func BuildFanoutNode(env pipeline.Env, cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		var (
			node pipeline.Node
			err  error
		)
		switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
		case "content":
			node, err = BuildContentNode(env, sourceMap)
		case "cf", "i2i":
			node, err = BuildCFNode(env, sourceMap)
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, node.(recall.Source))
	}

	fanout := &recall.Fanout{
		Sources:      sources,
		IgnoreErrors: conv.ConfigGet(cfg, "ignore_errors", false),
	}
	if ms := conv.ConfigGetInt64(cfg, "timeout_ms", 0); ms > 0 {
		fanout.Timeout = time.Duration(ms) * time.Millisecond
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	switch strategy := conv.ConfigGet(cfg, "merge_strategy", ""); strategy {
	case "", recall.MergeFirst:
		fanout.MergeStrategy = recall.MergeFirst
	case recall.MergeUnion:
		fanout.MergeStrategy = recall.MergeUnion
	default:
		return nil, fmt.Errorf("unknown merge strategy: %s", strategy)
	}
	return fanout, nil
}

func BuildFilterNode(_ pipeline.Env, cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "blacklist":
			names := conv.SliceAnyToString(filterMap["names"])
			filters = append(filters, filter.NewBlacklistFilter(names))
		case "rated":
			filters = append(filters, &filter.RatedFilter{})
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""))
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildSortNode(_ pipeline.Env, _ map[string]any) (pipeline.Node, error) {
	return &rerank.SortNode{}, nil
}

func BuildTopNNode(_ pipeline.Env, cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildDiversityNode(_ pipeline.Env, cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{LabelKey: conv.ConfigGet(cfg, "label_key", "")}, nil
}
