package logger

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*logrus.Logger, *Console) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	c := NewConsole()
	c.Attach(log)
	return log, c
}

func TestConsoleCapturesEntries(t *testing.T) {
	log, c := newTestLogger()

	log.Info("scene loaded")
	log.Warn("missing prefab")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, logrus.InfoLevel, lines[0].Level)
	assert.Equal(t, "scene loaded", lines[0].Message)
	assert.Equal(t, logrus.WarnLevel, lines[1].Level)
}

func TestConsoleIncludesFields(t *testing.T) {
	log, c := newTestLogger()

	log.WithField("entity", "Player").Info("spawned")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0].Message, "spawned")
	assert.Contains(t, lines[0].Message, "Player")
}

func TestConsoleClear(t *testing.T) {
	log, c := newTestLogger()

	log.Info("one")
	c.Clear()
	assert.Empty(t, c.Lines())

	log.Info("two")
	require.Len(t, c.Lines(), 1)
}

func TestConsoleBoundsBuffer(t *testing.T) {
	log, c := newTestLogger()

	for i := 0; i < maxConsoleLines+50; i++ {
		log.Info("tick")
	}
	assert.Len(t, c.Lines(), maxConsoleLines)
}

func TestLinesReturnsCopy(t *testing.T) {
	log, c := newTestLogger()
	log.Info("original")

	lines := c.Lines()
	lines[0].Message = "mutated"
	assert.Equal(t, "original", c.Lines()[0].Message)
}
