// Package logging builds the diagnostic logger. Diagnostics go to stderr so
// they never mix with the status lines on stdout.
package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps routine runs quiet; failures are still reported
const DefaultLevel = logrus.WarnLevel

// priorityFields are printed first, in this order, and highlighted
var priorityFields = map[string]int{
	"run_id":   1,
	"strategy": 2,
	"tweet_id": 3,
	"user_id":  4,
	"format":   5,
	"file":     6,
	"error":    7,
}

// Formatter prints one line per entry: time, level, message, then the fields
// as key=value with JSON encoded values
type Formatter struct {
	TimestampFormat string
	// DisableColors prints plain text, used when the output is not a terminal
	DisableColors bool
}

// NewFormatter creates a Formatter; colors are off unless out is a terminal
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		TimestampFormat: time.RFC3339,
		DisableColors:   !isTerminal(out),
	}
}

// NewLogger builds the logger of a run. dev forces debug output; otherwise
// level is parsed and DefaultLevel is used when it is empty or unknown.
func NewLogger(out io.Writer, level string, dev bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(NewFormatter(out))

	parsed, err := logrus.ParseLevel(level)
	switch {
	case dev:
		log.SetLevel(logrus.DebugLevel)
	case level != "" && err == nil:
		log.SetLevel(parsed)
	default:
		log.SetLevel(DefaultLevel)
	}
	return log
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (f *Formatter) paint(c *color.Color, format string, a ...interface{}) string {
	if f.DisableColors {
		return fmt.Sprintf(format, a...)
	}
	return c.Sprintf(format, a...)
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sortFields(keys)

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	levelColor := getLevelColor(entry.Level)
	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = time.RFC3339
	}

	b.WriteString(f.paint(color.New(color.FgYellow), "%s", entry.Time.Format(timestampFormat)))
	b.WriteByte(' ')
	b.WriteString(f.paint(levelColor, "%-7s", strings.ToUpper(entry.Level.String())))
	b.WriteByte(' ')
	b.WriteString(f.paint(levelColor, "%s", entry.Message))

	for _, k := range keys {
		fieldColor := color.New(color.FgCyan)
		if priorityFields[k] != 0 {
			fieldColor = color.New(color.FgGreen)
		}
		b.WriteByte(' ')
		b.WriteString(f.paint(fieldColor, "%s=", k))
		b.WriteString(formatValue(entry.Data[k]))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case error:
		return fmt.Sprintf("%q", v.Error())
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(jsonBytes)
	}
}

func getLevelColor(level logrus.Level) *color.Color {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return color.New(color.FgBlue)
	case logrus.InfoLevel:
		return color.New(color.FgGreen)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.ErrorLevel:
		return color.New(color.FgRed)
	case logrus.FatalLevel, logrus.PanicLevel:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func sortFields(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		iPriority := priorityFields[keys[i]]
		jPriority := priorityFields[keys[j]]
		if iPriority != 0 && jPriority != 0 {
			return iPriority < jPriority
		}
		if iPriority != 0 {
			return true
		}
		if jPriority != 0 {
			return false
		}
		return keys[i] < keys[j]
	})
}
