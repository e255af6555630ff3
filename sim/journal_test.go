package sim

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogJournal_Fields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	j := NewLogJournal(logger, "run-1")

	j.Record(42, "Ic01", logrus.InfoLevel, "D (33,33)->(7,5)")
	j.Record(43, "Spr01", logrus.TraceLevel, "dropped")

	require.Len(t, hook.Entries, 1)
	e := hook.LastEntry()
	assert.Equal(t, "D (33,33)->(7,5)", e.Message)
	assert.Equal(t, logrus.InfoLevel, e.Level)
	assert.Equal(t, logrus.Fields{"run": "run-1", "tick": int64(42), "subject": "Ic01"}, e.Data)
}

func TestLogJournal_NilLoggerUsesStandard(t *testing.T) {
	j := NewLogJournal(nil, "run-2")
	assert.Same(t, logrus.StandardLogger(), j.entry.Logger)
}
