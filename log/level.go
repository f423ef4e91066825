package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level logrus.Level

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func init() {
	// Filtering is done per module, let everything through logrus.
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Disable discards all log output, including warnings and errors.
func Disable() {
	modDebugMask = 0
	logrus.SetOutput(io.Discard)
}
