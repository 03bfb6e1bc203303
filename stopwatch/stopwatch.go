/*
Package stopwatch times an operation and logs how long it took.
Create a stopwatch with Start, then log the result with Finish or FinishWith.
*/
package stopwatch

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Stopwatch struct {
	start     time.Time
	operation string
	logger    *logrus.Entry
}

// Start logs <operation>_started at debug level and starts timing.
func Start(logger *logrus.Entry, operation string) *Stopwatch {
	sw := &Stopwatch{
		start:     time.Now(),
		operation: operation,
		logger:    logger,
	}
	sw.logger.Debug(operation + "_started")
	return sw
}

func (sw *Stopwatch) Elapsed() time.Duration {
	return time.Since(sw.start)
}

type FinishOpts struct {
	// Logger replaces the logger passed to Start.
	Logger *logrus.Entry
	// Event is the log message. Defaults to <operation>_finished.
	Event string
	// Level defaults to info.
	Level logrus.Level
	// Fields are added to the entry along with elapsed_ms.
	Fields logrus.Fields
}

func (sw *Stopwatch) FinishWith(opts FinishOpts) {
	logger := sw.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if opts.Event == "" {
		opts.Event = sw.operation + "_finished"
	}
	// PanicLevel is the zero value, and logging at it panics.
	if opts.Level == logrus.PanicLevel {
		opts.Level = logrus.InfoLevel
	}
	elapsed := float64(sw.Elapsed().Microseconds()) / 1000
	logger.WithFields(opts.Fields).WithField("elapsed_ms", elapsed).Log(opts.Level, opts.Event)
}

func (sw *Stopwatch) Finish() {
	sw.FinishWith(FinishOpts{})
}
