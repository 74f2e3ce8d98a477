package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"powerdash/dashboard"
	"powerdash/metrics/counters"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// control events are small JSON objects
const maxControlMessageSize = 4096

type MessageType string

const (
	MessageView   MessageType = "view"
	MessageUpdate MessageType = "update"
	MessageError  MessageType = "error"
)

// Message is what the server pushes to the page over the control channel
type Message struct {
	Type    MessageType     `json:"type"`
	Session string          `json:"session"`
	View    *dashboard.View `json:"view,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type WebSocket struct {
	conn    *websocket.Conn
	session *dashboard.Session
}

func (ws *WebSocket) ID() string {
	return ws.session.Id()
}

func (s *Server) handleWsRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.logger.Debug(fmt.Sprintf("connection initiated from remote %s", r.RemoteAddr))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", err)
		return
	}

	id := uuid.NewString()
	session, view, err := s.dashboard.NewSession(id)
	if err != nil {
		s.logger.Error(fmt.Sprintf("starting session %s", id), err)
		_ = conn.WriteJSON(&Message{Type: MessageError, Session: id, Error: err.Error()})
		_ = conn.Close()
		return
	}
	ws := &WebSocket{
		conn:    conn,
		session: session,
	}
	s.logger.FeatureEvent("session", id, fmt.Sprintf("opened from %s", r.RemoteAddr))
	counters.SessionOpened()

	if err = s.send(ws, &Message{Type: MessageView, Session: id, View: view}); err != nil {
		counters.SessionClosed()
		_ = conn.Close()
		return
	}
	go s.messageReader(ws)
}

func (s *Server) messageReader(ws *WebSocket) {
	conn := ws.conn
	conn.SetReadLimit(maxControlMessageSize)
	defer counters.SessionClosed()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.FeatureEvent("session", ws.ID(), "closed")
			} else {
				s.logger.Debug(fmt.Sprintf("id %s is closing session %s", ws.ID(), err))
			}
			if err = conn.Close(); err != nil {
				s.logger.Warn(fmt.Sprintf("error while closing socket %s %s", ws.ID(), err))
			}
			return
		}
		response := s.handleMessage(ws, message)
		if err = s.send(ws, response); err != nil {
			_ = conn.Close()
			return
		}
	}
}

func (s *Server) handleMessage(ws *WebSocket, data []byte) *Message {
	var event dashboard.ControlEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.Warn(fmt.Sprintf("invalid message from %s: %s", ws.ID(), err))
		return &Message{Type: MessageError, Session: ws.ID(), Error: "invalid message"}
	}
	view, err := ws.session.Handle(event)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s event from %s: %s", event.Control, ws.ID(), err))
		return &Message{Type: MessageError, Session: ws.ID(), Error: err.Error()}
	}
	return &Message{Type: MessageUpdate, Session: ws.ID(), View: view}
}

func (s *Server) send(ws *WebSocket, message *Message) error {
	err := ws.conn.WriteJSON(message)
	if err != nil {
		s.logger.Error(fmt.Sprintf("sending %s to %s", message.Type, ws.ID()), err)
	}
	return err
}
