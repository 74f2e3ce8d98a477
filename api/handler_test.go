package api

import (
	"encoding/json"
	"errors"
	"testing"

	"powerdash/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDatabase struct {
	messages []internal.FeatureLogMessage
	err      error
	limit    int64
}

func (s *stubDatabase) WriteLogMessage(data internal.Data) error {
	return nil
}

func (s *stubDatabase) ReadLog(limit int64) ([]internal.FeatureLogMessage, error) {
	s.limit = limit
	return s.messages, s.err
}

func TestHandleApiCallReadLog(t *testing.T) {
	db := &stubDatabase{messages: []internal.FeatureLogMessage{{Feature: "energy_type", SessionId: "s1", Text: `"Hydro"`}}}
	h := NewApiHandler()
	h.SetDatabase(db)

	data := h.HandleApiCall(&Call{CallType: ReadLog, Remote: "127.0.0.1", Limit: 10})
	require.NotNil(t, data)
	assert.EqualValues(t, 10, db.limit)

	var messages []internal.FeatureLogMessage
	require.NoError(t, json.Unmarshal(data, &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "energy_type", messages[0].Feature)
	assert.Equal(t, "s1", messages[0].SessionId)
}

func TestHandleApiCallWithoutDatabase(t *testing.T) {
	assert.Nil(t, NewApiHandler().HandleApiCall(&Call{CallType: ReadLog}))
}

func TestHandleApiCallDatabaseError(t *testing.T) {
	h := NewApiHandler()
	h.SetDatabase(&stubDatabase{err: errors.New("connection refused")})
	assert.Nil(t, h.HandleApiCall(&Call{CallType: ReadLog}))
}

func TestHandleApiCallUnknownType(t *testing.T) {
	h := NewApiHandler()
	h.SetDatabase(&stubDatabase{})
	assert.Nil(t, h.HandleApiCall(&Call{CallType: "DropLog"}))
}
