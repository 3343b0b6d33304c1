// Package config 负责应用配置（YAML）与 Node 构建器注册表。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/vecrec/catalog"
	"github.com/rushteam/vecrec/core"
	"github.com/rushteam/vecrec/engine"
	"github.com/rushteam/vecrec/pipeline"
	"github.com/rushteam/vecrec/pkg/logging"
)

// App 是应用级配置。
//
//	log:
//	  level: debug
//	  format: console
//	catalog:
//	  duplicate_policy: reject
//	recommend:
//	  strategy: cf
//	  k: 2
//	batch:
//	  concurrency: 4
//	pipeline:
//	  name: demo
//	  nodes:
//	    - type: recall.content
type App struct {
	Log       logging.Config  `yaml:"log"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Recommend RecommendConfig `yaml:"recommend"`
	Batch     BatchConfig     `yaml:"batch"`
	Pipeline  pipeline.Config `yaml:"pipeline"`
}

type CatalogConfig struct {
	DuplicatePolicy string `yaml:"duplicate_policy"` // reject / overwrite，默认 reject
}

type RecommendConfig struct {
	Strategy string `yaml:"strategy"` // content / cf，默认 content
	K        int    `yaml:"k"`        // 协同过滤近邻数，默认 1
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"` // <= 0 表示不限制
}

// Default 返回默认配置。
func Default() *App {
	return &App{
		Log:       logging.Config{Level: "info", Format: "json"},
		Catalog:   CatalogConfig{DuplicatePolicy: string(catalog.Reject)},
		Recommend: RecommendConfig{Strategy: string(engine.StrategyContent), K: 1},
	}
}

// LoadFile 读取 YAML 配置文件，未填写的字段使用默认值，然后校验。
func LoadFile(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置。
func Parse(data []byte) (*App, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置；pipeline 中的 node 类型需已通过 Register 注册。
func (a *App) Validate() error {
	if _, err := catalog.ParseDuplicatePolicy(a.Catalog.DuplicatePolicy); err != nil {
		return err
	}
	if _, err := engine.ParseStrategy(a.Recommend.Strategy); err != nil {
		return err
	}
	if a.Recommend.K <= 0 {
		return core.Errorf(core.ModuleConfig, core.ErrorCodeInvalidArgument,
			"recommend.k must be positive, got %d", a.Recommend.K)
	}
	if len(a.Pipeline.Nodes) > 0 {
		if err := ValidatePipelineConfig(&a.Pipeline); err != nil {
			return core.Errorf(core.ModuleConfig, core.ErrorCodeInvalidArgument, "pipeline: %v", err)
		}
	}
	return nil
}

// NewEngine 按配置创建目录、logger 和引擎。
func (a *App) NewEngine() (*engine.Engine, error) {
	policy, err := catalog.ParseDuplicatePolicy(a.Catalog.DuplicatePolicy)
	if err != nil {
		return nil, err
	}
	cat := catalog.New(catalog.WithDuplicatePolicy(policy))
	return engine.New(cat,
		engine.WithLogger(logging.New(a.Log)),
		engine.WithBatchConcurrency(a.Batch.Concurrency),
	), nil
}

// Strategy 返回已解析的推荐策略。
func (a *App) Strategy() engine.Strategy {
	s, err := engine.ParseStrategy(a.Recommend.Strategy)
	if err != nil {
		return engine.StrategyContent
	}
	return s
}

// BuildPipeline 用 DefaultFactory 构建配置中的 pipeline。
func (a *App) BuildPipeline(cat *catalog.Catalog) (*pipeline.Pipeline, error) {
	return a.Pipeline.BuildPipeline(DefaultFactory(), pipeline.Env{Catalog: cat})
}
