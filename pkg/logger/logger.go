package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	log *zap.Logger

	mu     sync.Mutex
	logBuf *bytes.Buffer
}

// New пишет логи в память, чтобы потом отдать их на страницу через HTML
func New() *ZapLogger {
	return NewLevel(zapcore.DebugLevel)
}

// NewLevel - как New, но пишет только записи от level и выше
func NewLevel(level zapcore.Level) *ZapLogger {
	logBuf := &bytes.Buffer{}
	z := &ZapLogger{logBuf: logBuf}
	z.log = newZap(zapcore.AddSync(&lockedWriter{mu: &z.mu, w: logBuf}), level)
	return z
}

// NewWriter пишет логи в w (для cli - stderr), начиная с level
func NewWriter(w io.Writer, level zapcore.Level) *ZapLogger {
	return &ZapLogger{log: newZap(zapcore.AddSync(w), level)}
}

// NewNop ничего не пишет
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

func newZap(ws zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)
	core := zapcore.NewCore(encoder, ws, level)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiRe = regexp.MustCompile(`\033\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	var open bool

	result.WriteString("<pre>")
	for _, match := range ansiRe.FindAllStringSubmatchIndex(input, -1) {
		start, end := match[0], match[1]
		if start > lastIndex {
			result.WriteString(escapeHTML(input[lastIndex:start]))
		}

		colorCode := input[match[2]:match[3]]
		if color, ok := colorMap[colorCode]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if colorCode == "0" && open {
			result.WriteString("</span>")
			open = false
		}
		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(escapeHTML(input[lastIndex:]))
	}
	if open {
		result.WriteString("</span>")
	}
	result.WriteString("</pre>")
	return result.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",    // Red
	"32": "green",  // Green
	"33": "yellow", // Yellow
	"34": "blue",   // Blue
	"36": "cyan",   // Cyan
}

// HTML отдает накопленные логи в виде <pre> с цветами уровней.
// Для логгеров без буфера возвращает пустую строку.
func (z *ZapLogger) HTML() string {
	if z.logBuf == nil {
		return ""
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	return ansiToHTML(z.logBuf.String())
}

func (z *ZapLogger) ClearLogs() {
	if z.logBuf == nil {
		return
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	z.logBuf.Reset()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	z.log.Fatal(wrappedMsg, fields...)
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}
