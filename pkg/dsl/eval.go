// Package dsl 是候选过滤表达式的解释器，使用 CEL (Common Expression Language) 实现。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/pkg/utils"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expr 是编译好的布尔表达式，可并发复用。
//
// 可用变量：
//   - item.name / item.year / item.score
//   - label.<key>：候选 label 的 Value
//   - rctx.user / rctx.k / rctx.params
//
// 示例：
//   - `item.year >= 2000`
//   - `label.recall_source == "content" && item.score > 0.5`
//   - `!(item.name in rctx.params.blocked)`
type Expr struct {
	src string
	prg cel.Program
}

// Compile 编译表达式；空表达式恒为 true。
func Compile(expr string) (*Expr, error) {
	if expr == "" {
		return &Expr{}, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Expr{src: expr, prg: prg}, nil
}

// String 返回表达式源码。
func (e *Expr) String() string {
	return e.src
}

// Evaluate 对单个候选求值。
func (e *Expr) Evaluate(item *core.Candidate, rctx *core.RecommendContext) (bool, error) {
	if e.prg == nil {
		return true, nil
	}
	out, _, err := e.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", e.src, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", e.src, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Candidate, rctx *core.RecommendContext) map[string]any {
	in := map[string]any{
		"item":  map[string]any{},
		"label": map[string]any{},
		"rctx": map[string]any{
			"user":   rctx.UserName(),
			"k":      0,
			"params": map[string]any{},
		},
	}
	if item != nil {
		in["item"] = map[string]any{
			"name":  item.Item.Name,
			"year":  item.Item.Year,
			"score": item.Score,
		}
		in["label"] = utils.LabelValues(item.Labels)
	}
	if rctx != nil {
		params := rctx.Params
		if params == nil {
			params = map[string]any{}
		}
		in["rctx"] = map[string]any{
			"user":   rctx.UserName(),
			"k":      rctx.K,
			"params": params,
		}
	}
	return in
}
