package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base   = logrus.New()
	baseMu sync.Mutex
)

// Setup configures the shared logger. Unknown levels fall back to info.
func Setup(level string, out io.Writer) {
	baseMu.Lock()
	defer baseMu.Unlock()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
	if out == nil {
		out = os.Stderr
	}
	base.SetOutput(out)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// NewLogger returns an entry tagged with component.
func NewLogger(component string) *logrus.Entry {
	return base.WithField("component", component)
}
