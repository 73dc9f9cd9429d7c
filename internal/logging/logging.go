// Package logging builds the structured logger codegen.Emitter threads
// through a compile run, using the field-tagged-entry idiom
// (`log.WithFields(logrus.Fields{...})`) common to logrus-based Go
// services.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the root logger for one compile run: text-formatted,
// leveled by debug, writing to stderr so stdout stays free for
// compiled output when a CLI invocation writes to it directly.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	log.Level = logrus.InfoLevel
	if debug {
		log.Level = logrus.DebugLevel
	}
	return log
}

// ForFile returns one logrus.Entry per compiled file, tagged with its
// name so a directory-walk run's log lines stay attributable to the file
// that produced them, even though compilation itself runs
// single-threaded.
func ForFile(log *logrus.Logger, file string) *logrus.Entry {
	return log.WithFields(logrus.Fields{"file": file})
}
