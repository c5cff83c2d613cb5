package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines; maxLines <= 0 returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()
	return tail(file, maxLines)
}

func tail(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		count = min(count+1, maxLines)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	start := 0
	if count == maxLines {
		start = next
	}
	for i := range lines {
		lines[i] = ring[(start+i)%maxLines]
	}
	return lines, nil
}

// Record is one decoded slog JSON line.
type Record struct {
	Time  time.Time
	Level slog.Level
	Msg   string
	Attrs map[string]any
	Raw   string
}

// Parse decodes a line written by slog's JSON handler. Lines that are not
// JSON objects come back with ok false and Raw set.
func Parse(line string) (Record, bool) {
	rec := Record{Raw: line, Level: slog.LevelInfo}
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return rec, false
	}
	if v, ok := fields[slog.TimeKey].(string); ok {
		rec.Time, _ = time.Parse(time.RFC3339Nano, v)
	}
	if v, ok := fields[slog.LevelKey].(string); ok {
		_ = rec.Level.UnmarshalText([]byte(v))
	}
	if v, ok := fields[slog.MessageKey].(string); ok {
		rec.Msg = v
	}
	delete(fields, slog.TimeKey)
	delete(fields, slog.LevelKey)
	delete(fields, slog.MessageKey)
	rec.Attrs = fields
	return rec, true
}

// Filter keeps the lines whose level is at least level. Undecodable lines are
// kept so nothing is silently hidden.
func Filter(lines []string, level slog.Level) []string {
	out := lines[:0:0]
	for _, line := range lines {
		rec, ok := Parse(line)
		if ok && rec.Level < level {
			continue
		}
		out = append(out, line)
	}
	return out
}

var (
	timeColor  = color.New(color.FgHiBlack)
	keyColor   = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	infoColor  = color.New(color.FgGreen)
	debugColor = color.New(color.FgMagenta)
)

// ColorizeLine renders a log line for a terminal: time, level, message, then
// attributes sorted by key.
func ColorizeLine(line string) string {
	rec, ok := Parse(line)
	if !ok {
		return line
	}
	var b strings.Builder
	if !rec.Time.IsZero() {
		b.WriteString(timeColor.Sprint(rec.Time.Format("15:04:05.000")))
		b.WriteString(" ")
	}
	b.WriteString(levelColor(rec.Level).Sprintf("%-5s", rec.Level.String()))
	b.WriteString(" ")
	b.WriteString(rec.Msg)

	keys := make([]string, 0, len(rec.Attrs))
	for k := range rec.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(keyColor.Sprint(k))
		b.WriteString("=")
		b.WriteString(formatValue(rec.Attrs[k]))
	}
	return b.String()
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return errorColor
	case level >= slog.LevelWarn:
		return warnColor
	case level >= slog.LevelInfo:
		return infoColor
	default:
		return debugColor
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\"=") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
