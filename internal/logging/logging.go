// Package logging provides the single process-wide logger used by the
// registry for its lifecycle events (registration, swallowed
// registration failures, lookup misses). Archives and dispatch never
// log on the hot path.
//
// A package-level *logrus.Logger with the prefixed text formatter,
// rather than a structured/JSON logger, matching the CLI-tool-style
// output used elsewhere in this module.
package logging

import (
	"os"

	logrus "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// L is the shared logger for this module. Tests may redirect Out to
// silence or capture output.
var L = &logrus.Logger{
	Out:   os.Stderr,
	Level: logrus.WarnLevel,
	Formatter: &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	},
}
