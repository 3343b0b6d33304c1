// Package logging 基于 zerolog 构建结构化 logger。
//
// 库代码默认使用 zerolog.Nop()，只有入口（examples / 调用方）通过 New 构建真正输出的 logger，
// 然后用 engine.WithLogger 注入。
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config 是日志配置。
type Config struct {
	Level  string    `yaml:"level" json:"level"`   // trace / debug / info / warn / error / disabled，默认 info
	Format string    `yaml:"format" json:"format"` // json / console，默认 json
	Caller bool      `yaml:"caller" json:"caller"`
	Output io.Writer `yaml:"-" json:"-"` // 默认 os.Stderr
}

// New 根据配置构建 logger。
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// ParseLevel 把字符串转换为 zerolog.Level，无法识别时返回 InfoLevel。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Component 返回带 component 字段的子 logger。
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
