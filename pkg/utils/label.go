package utils

import "sort"

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// Value 与 Source 的语义由业务自定义；这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rerank ...
}

// MergeLabel 合并同名 Label，保留历史：Value 以 '|' 累积，Source 以 ',' 累积。
// 空 Value 视为不存在。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	return Label{
		Value:  existing.Value + "|" + incoming.Value,
		Source: joinNonEmpty(existing.Source, incoming.Source, ","),
	}
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}

// LabelValues 把 labels 摊平成 key -> value，供 DSL 表达式使用。
func LabelValues(labels map[string]Label) map[string]any {
	out := make(map[string]any, len(labels))
	for k, v := range labels {
		out[k] = v.Value
	}
	return out
}

// SortedKeys 返回排序后的 label key，用于稳定输出。
func SortedKeys(labels map[string]Label) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
