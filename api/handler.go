package api

import (
	"encoding/json"
	"fmt"
	"powerdash/internal"
)

type CallType string

const (
	ReadLog CallType = "ReadLog"
)

type Call struct {
	CallType CallType
	Remote   string
	Limit    int64
}

// Handler answers read-only calls against the event log database
type Handler struct {
	logger   internal.LogHandler
	database internal.Database
}

func (h *Handler) SetLogger(logger internal.LogHandler) {
	h.logger = logger
}

func (h *Handler) SetDatabase(database internal.Database) {
	h.database = database
}

func NewApiHandler() *Handler {
	handler := Handler{logger: internal.Discard}
	return &handler
}

// HandleApiCall returns the encoded result, or nil when there is nothing to serve
func (h *Handler) HandleApiCall(ac *Call) []byte {
	h.logger.Debug(fmt.Sprintf("api call %s from remote %s", ac.CallType, ac.Remote))
	if h.database == nil || ac.CallType != ReadLog {
		return nil
	}
	data, err := h.database.ReadLog(ac.Limit)
	if err != nil {
		h.logger.Error("read log error", err)
		return nil
	}
	byteData, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("encoding log data failed", err)
		return nil
	}
	return byteData
}
