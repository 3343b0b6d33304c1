package filter

import (
	"context"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pkg/dsl"
)

// ExprFilter 用 CEL 表达式选择要保留的候选：表达式为 true 时保留，false 时过滤。
//
// 示例：`item.year >= 2000 && item.score > 0`
type ExprFilter struct {
	expr *dsl.Expr
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	e, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.Errorf(core.ModuleConfig, core.ErrorCodeInvalidArgument, "filter expr: %v", err)
	}
	return &ExprFilter{expr: e}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Candidate,
) (bool, error) {
	keep, err := f.expr.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
