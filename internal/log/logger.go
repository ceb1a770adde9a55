// Package log is extsort's leveled, structured logger. It wraps logrus with
// the small API the rest of the code base uses: package-level helpers,
// key/value fields and error-aware entries.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"extsort/internal/errors"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyLevel: "level",
			},
		})
	}
}

// WithLevel drops entries below level ("error", "warn", "info", "debug").
// Unknown names leave the level unchanged.
func WithLevel(level string) Option {
	return func(l *Logger) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			l.base.SetLevel(lvl)
		}
	}
}

// Logger writes leveled entries with an optional set of bound fields.
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
}

// NewLogger creates a logger writing text lines to stdout unless options say
// otherwise.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&textFormatter{})

	l := &Logger{base: base, fields: logrus.Fields{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug enables or disables debug entries for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a copy of the logger carrying the extra fields.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, fields: merged}
}

// WithError returns a copy of the logger carrying fields describing err.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// log emits one entry. depth is the number of frames between log and the
// code that should be reported as the caller.
func (l *Logger) log(depth int, level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !isDebug.Load() {
		return
	}
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["caller"] = caller(depth + 1)
	l.base.WithFields(fields).Log(level, msg)
}

func (l *Logger) Debug(args ...interface{}) { l.log(1, logrus.DebugLevel, fmt.Sprint(args...)) }
func (l *Logger) Info(args ...interface{}) { l.log(1, logrus.InfoLevel, fmt.Sprint(args...)) }
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(1, logrus.InfoLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Warn(args ...interface{}) { l.log(1, logrus.WarnLevel, fmt.Sprint(args...)) }
func (l *Logger) Error(args ...interface{}) { l.log(1, logrus.ErrorLevel, fmt.Sprint(args...)) }

// Package-level helpers log through the configured logger.

func Debugf(format string, args ...interface{}) {
	logger.log(1, logrus.DebugLevel, fmt.Sprintf(format, args...))
}
func Infof(format string, args ...interface{}) {
	logger.log(1, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with fields describing err.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// errorFields flattens err into log fields. Application errors contribute
// their kind and the path, parameter or directory they carry.
func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error())}

	var kinded interface{ Kind() errors.ErrorKind }
	if errors.As(err, &kinded) {
		fields = append(fields, F("error_kind", kinded.Kind().String()))
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var dirErr *errors.DirectoryError
	if errors.As(err, &dirErr) && dirErr.Dir() != "" {
		fields = append(fields, F("dir", dirErr.Dir()))
	}
	return fields
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// textFormatter renders "[time] LEVEL: message k=v ... (caller)".
type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format(timestampFormat), levelName(e.Level), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != "caller" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(e.Data[k]))
	}
	if c, ok := e.Data["caller"]; ok {
		fmt.Fprintf(&b, " (%v)", c)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

func formatValue(v interface{}) string {
	var s string
	switch val := v.(type) {
	case time.Time:
		s = val.Format(time.RFC3339)
	case error:
		s = val.Error()
	default:
		s = fmt.Sprint(val)
	}
	if strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}
