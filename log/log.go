package log

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Print(...interface{})
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})

	// With returns a logger that adds the field to every entry.
	With(key string, value interface{}) Logger
}

type logger struct {
	*logrus.Entry
}

// New returns a logger writing on stderr. Entries are JSON in prod and text
// everywhere else.
func New(env string) Logger {
	return newLogger(env, os.Stderr)
}

func newLogger(env string, out io.Writer) Logger {
	l := logrus.New()
	l.Out = out

	switch env {
	case "prod":
		l.Formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "ts"},
		}
		l.Level = logrus.InfoLevel
	case "test":
		l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
		l.Level = logrus.WarnLevel
	default:
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		l.Level = logrus.DebugLevel
	}

	return logger{l.WithFields(logrus.Fields{
		"service": "blogsynergy",
		"env":     env,
	})}
}

// Discard returns a logger writing nowhere.
func Discard() Logger {
	return newLogger("test", io.Discard)
}

func (l logger) Print(args ...interface{}) {
	l.Infoln(args...)
}

func (l logger) Error(args ...interface{}) {
	l.Errorln(args...)
}

func (l logger) Fatal(args ...interface{}) {
	l.Fatalln(args...)
}

func (l logger) With(key string, value interface{}) Logger {
	return logger{l.WithField(key, value)}
}
