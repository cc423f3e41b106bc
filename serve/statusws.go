package serve

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"agricam/robot"
)

const (
	// Time allowed to write message to the client
	writeWait  = 10 * time.Second
	pingPeriod = 10 * time.Second
)

// StatusSocket tells dashboard clients whenever the rover state changes so
// position updates land without polling.
type StatusSocket struct {
	robot    *robot.Robot
	upgrader websocket.Upgrader
}

func NewStatusSocket(r *robot.Robot) *StatusSocket {
	return &StatusSocket{
		robot: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *StatusSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.WithField("addr", r.RemoteAddr).Errorf("Websocket handshake failed for status stream: %v", err)
		}
		return
	}
	go s.serve(ws)
}

func (s *StatusSocket) serve(ws *websocket.Conn) {
	clog := log.WithField("addr", ws.RemoteAddr())
	clog.Info("connected to status update socket")
	defer func() {
		ws.Close()
		clog.Info("disconnected from status update socket")
	}()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	updates, cancel := s.robot.Subscribe()
	defer cancel()

	// Even though we don't care about incoming messages, we need to read from
	// the socket in order to process control messages.
	go func() {
		for {
			if _, _, err := ws.NextReader(); err != nil {
				ws.Close()
				return
			}
		}
	}()

	for {
		select {
		case <-updates:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, []byte("update")); err != nil {
				return
			}
		case <-pingTicker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}
