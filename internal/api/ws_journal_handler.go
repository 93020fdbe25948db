package api

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"innerlog/internal/auth"
	"innerlog/internal/config"
	"innerlog/internal/patterns"
	"innerlog/internal/profile"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSDraft is one in-progress journal draft sent by the client.
type WSDraft struct {
	Text string `json:"text"`
}

// WSDraftAnalysis is the per-draft response: the raw detection plus the
// alerts it would raise. Nothing is persisted; the profile only changes
// when the entry is submitted over the REST endpoint.
type WSDraftAnalysis struct {
	Detection patterns.Result `json:"detection"`
	Alerts    []profile.Alert `json:"alerts"`
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadJSON(v interface{}) error {
	return s.conn.ReadJSON(v)
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

// WSJournalHandler streams live analysis while the user types: each draft
// message gets detection and alert feedback without touching the stored
// profile.
func WSJournalHandler(cfg *config.Config, svc *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing JWT"})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		claims, err := auth.ParseJWT(cfg.Server.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid JWT"})
			return
		}

		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		log.Printf("[WS] journal session opened for user %d", claims.UserID)
		for {
			var draft WSDraft
			if err := conn.ReadJSON(&draft); err != nil {
				// Client closed or sent garbage; either way the session ends.
				return
			}
			if strings.TrimSpace(draft.Text) == "" {
				conn.WriteJSON(WSDraftAnalysis{Alerts: []profile.Alert{}})
				continue
			}
			det, alerts := svc.AnalyzeDraft(draft.Text)
			if alerts == nil {
				alerts = []profile.Alert{}
			}
			if err := conn.WriteJSON(WSDraftAnalysis{Detection: det, Alerts: alerts}); err != nil {
				return
			}
		}
	}
}
