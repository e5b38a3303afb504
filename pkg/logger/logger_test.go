package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tdewolff/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestAnsiToHTML(t *testing.T) {
	var tts = []struct {
		in  string
		out string
	}{
		{"", "<pre></pre>"},
		{"plain", "<pre>plain</pre>"},
		{"\033[32minfo\033[0m msg", `<pre><span style="color: green;">info</span> msg</pre>`},
		{"\033[31merr", `<pre><span style="color: red;">err</span></pre>`},
		{"\033[99mx\033[0m", "<pre>x</pre>"},
		{"a<b>&c", "<pre>a&lt;b&gt;&amp;c</pre>"},
	}
	for _, tt := range tts {
		t.Run(tt.in, func(t *testing.T) {
			test.String(t, ansiToHTML(tt.in), tt.out)
		})
	}
}

func TestBufferedLogger(t *testing.T) {
	log := New()
	log.Debug("[f] первая", zap.Int("n", 1))
	log.Warn("[f] вторая")

	html := log.HTML()
	test.That(t, strings.HasPrefix(html, "<pre>"))
	test.That(t, strings.Contains(html, "[f] первая"))
	test.That(t, strings.Contains(html, "n=1") || strings.Contains(html, `"n": 1`), html)
	test.That(t, strings.Contains(html, `<span style="color: yellow;">warn</span>`), html)

	log.ClearLogs()
	test.String(t, log.HTML(), "<pre></pre>")
}

func TestBufferedLevel(t *testing.T) {
	log := NewLevel(zapcore.InfoLevel)
	for i := 0; i < 100; i++ {
		log.Debug("[f-for] Текущая итерация", zap.Int("c", i))
	}
	log.Info("[f] Алгоритм завершен!")

	html := log.HTML()
	test.That(t, !strings.Contains(html, "Текущая итерация"), html)
	test.That(t, strings.Contains(html, "[f] Алгоритм завершен!"), html)
}

func TestWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, zapcore.InfoLevel)
	log.Debug("hidden")
	log.Info("shown")
	test.Error(t, log.Sync())

	test.That(t, !strings.Contains(buf.String(), "hidden"))
	test.That(t, strings.Contains(buf.String(), "shown"))
	test.String(t, log.HTML(), "")
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Info("nothing")
	log.ClearLogs()
	test.String(t, log.HTML(), "")
}
