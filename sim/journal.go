package sim

import "github.com/sirupsen/logrus"

// Journal is the side-effect-only sink for simulation narration.
// Implementations must not influence control flow.
type Journal interface {
	Record(tick int64, subject string, level logrus.Level, msg string)
}

// LogJournal writes journal entries as structured logrus records carrying
// tick, subject and run fields.
type LogJournal struct {
	entry *logrus.Entry
}

// NewLogJournal creates a journal on logger. A nil logger selects the
// logrus standard logger.
func NewLogJournal(logger *logrus.Logger, runID string) *LogJournal {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogJournal{entry: logger.WithField("run", runID)}
}

// Record implements Journal.
func (j *LogJournal) Record(tick int64, subject string, level logrus.Level, msg string) {
	j.entry.WithFields(logrus.Fields{
		"tick":    tick,
		"subject": subject,
	}).Log(level, msg)
}
