package gui

import (
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const maxLogLines = 500

// logLines is a bounded, newest-first buffer of log lines
type logLines struct {
	mu    sync.Mutex
	lines []string
	limit int
	now   func() time.Time
}

// push splits p into lines, stamps each non-empty one and returns the number added
func (l *logLines) push(p string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := 0
	stamp := l.now().Format("15:04:05")
	for _, line := range strings.Split(p, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		l.lines = append([]string{stamp + " " + line}, l.lines...)
		added++
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[:l.limit]
	}
	return added
}

func (l *logLines) at(i int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.lines) {
		return ""
	}
	return l.lines[i]
}

func (l *logLines) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

func (l *logLines) reset() {
	l.mu.Lock()
	l.lines = nil
	l.mu.Unlock()
}

// LogViewer shows generation and playback diagnostics, newest first. It is
// an io.Writer so the application logger can be teed into it.
type LogViewer struct {
	widget.BaseWidget

	buf     *logLines
	list    *widget.List
	content *fyne.Container
}

// NewLogViewer creates the log pane
func NewLogViewer() *LogViewer {
	v := &LogViewer{buf: &logLines{limit: maxLogLines, now: time.Now}}

	v.list = widget.NewList(
		v.buf.len,
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.TextStyle = fyne.TextStyle{Monospace: true}
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(v.buf.at(id))
		},
	)

	clearBtn := widget.NewButtonWithIcon("", theme.ContentClearIcon(), v.Clear)
	header := container.NewBorder(nil, nil, widget.NewLabel("Log"), clearBtn)

	scroll := container.NewVScroll(v.list)
	scroll.SetMinSize(fyne.NewSize(0, 120))
	v.content = container.NewBorder(header, nil, nil, nil, scroll)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.content)
}

// Write implements io.Writer. It may be called from any goroutine.
func (v *LogViewer) Write(p []byte) (int, error) {
	if v.buf.push(string(p)) > 0 {
		fyne.Do(func() {
			v.list.Refresh()
			v.list.ScrollToTop()
		})
	}
	return len(p), nil
}

// Clear drops all lines
func (v *LogViewer) Clear() {
	v.buf.reset()
	fyne.Do(v.list.Refresh)
}
