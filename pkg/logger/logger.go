// Package logger 提供统一的日志框架
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level 日志级别
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config 日志配置
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init 初始化日志器
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 获取日志器
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

// WithContext 从上下文创建日志器
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	
	// 添加请求ID
	if reqID, ok := ctx.Value("request_id").(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}
	
	// 添加组织ID
	if orgID, ok := ctx.Value("org_id").(string); ok {
		l = l.With().Str("org_id", orgID).Logger()
	}
	
	return &l
}

// Debug 记录调试日志
func Debug() *zerolog.Event {
	return Get().Debug()
}

// Info 记录信息日志
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn 记录警告日志
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error 记录错误日志
func Error() *zerolog.Event {
	return Get().Error()
}

// Fatal 记录致命错误日志
func Fatal() *zerolog.Event {
	return Get().Fatal()
}

// WithError 添加错误信息
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// WithField 添加字段
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// WithFields 添加多个字段
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// RosterLogger 排班引擎专用日志器，承载一条独立于结果通道的诊断日志：
// 对外响应体只携带 roster JSON 本身，这里记录的字段从不进入响应体。
type RosterLogger struct {
	base *zerolog.Logger
}

// NewRosterLogger 创建排班引擎日志器
func NewRosterLogger() *RosterLogger {
	l := Get().With().Str("component", "roster").Logger()
	return &RosterLogger{base: &l}
}

// StartRun 记录一次排班运行的开始
func (l *RosterLogger) StartRun(runID string, mode string, employees, requests int) {
	l.base.Info().
		Str("run_id", runID).
		Str("mode", mode).
		Int("employees", employees).
		Int("requests", requests).
		Msg("roster run started")
}

// Preprocessed 记录输入规整完成后的索引规模
func (l *RosterLogger) Preprocessed(runID string, dates, slots, eligiblePairs int) {
	l.base.Debug().
		Str("run_id", runID).
		Int("dates", dates).
		Int("slots", slots).
		Int("eligible_pairs", eligiblePairs).
		Msg("input normalized")
}

// SolverFinished 记录 CP-SAT 求解器的终止状态（individual 模式）
func (l *RosterLogger) SolverFinished(runID, status string, objective float64, wallTime time.Duration) {
	l.base.Info().
		Str("run_id", runID).
		Str("status", status).
		Float64("objective", objective).
		Dur("wall_time", wallTime).
		Msg("solver finished")
}

// ConstraintSlack 记录一次运行的累计 understaffing/偏差总量
func (l *RosterLogger) ConstraintSlack(runID string, understaff, deviations int) {
	l.base.Info().
		Str("run_id", runID).
		Int("total_understaff", understaff).
		Int("total_deviations", deviations).
		Msg("constraint slack summary")
}

// RunComplete 记录排班运行成功完成
func (l *RosterLogger) RunComplete(runID string, duration time.Duration) {
	l.base.Info().
		Str("run_id", runID).
		Dur("duration", duration).
		Msg("roster run complete")
}

// RunFailed 记录排班运行以错误结束
func (l *RosterLogger) RunFailed(runID string, err error) {
	l.base.Error().
		Str("run_id", runID).
		Err(err).
		Msg("roster run failed")
}

