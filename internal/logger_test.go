package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDatabase struct {
	mu       sync.Mutex
	messages []FeatureLogMessage
}

func (m *memoryDatabase) WriteLogMessage(data Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *data.(*FeatureLogMessage))
	return nil
}

func (m *memoryDatabase) ReadLog(limit int64) ([]FeatureLogMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FeatureLogMessage(nil), m.messages...), nil
}

func (m *memoryDatabase) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func TestLoggerWritesToDatabase(t *testing.T) {
	db := &memoryDatabase{}
	logger := NewLogger(time.UTC)
	logger.SetDatabase(db)

	logger.FeatureEvent("energy_type", "session-1", "selected Hydro")
	logger.Warn("boundary missing for nan")

	require.Eventually(t, func() bool { return db.count() == 2 }, time.Second, 10*time.Millisecond)

	messages, err := db.ReadLog(0)
	require.NoError(t, err)
	assert.Equal(t, "energy_type", messages[0].Feature)
	assert.Equal(t, "session-1", messages[0].SessionId)
	assert.Equal(t, string(Info), messages[0].Importance)
	assert.Equal(t, "warning", messages[1].Feature)
	assert.Equal(t, "*", messages[1].SessionId)
	assert.Equal(t, string(Warning), messages[1].Importance)
}

func TestLoggerDropsDebugUnlessEnabled(t *testing.T) {
	db := &memoryDatabase{}
	logger := NewLogger(nil)
	logger.SetDatabase(db)

	logger.Debug("hidden")
	logger.SetDebugMode(true)
	logger.Debug("shown")

	require.Eventually(t, func() bool { return db.count() == 1 }, time.Second, 10*time.Millisecond)
	messages, _ := db.ReadLog(0)
	assert.Equal(t, "shown", messages[0].Text)
}
