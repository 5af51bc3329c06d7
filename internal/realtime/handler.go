package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/echohq/couples-platform/internal/adaptive"
	"github.com/echohq/couples-platform/internal/auth"
	httperrors "github.com/echohq/couples-platform/pkg/http/errors"
	"github.com/echohq/couples-platform/pkg/http/ws"
)

// Handler upgrades authenticated requests onto the couple event stream.
type Handler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewHandler(hub *ws.Hub, allowedOrigins []string, logger zerolog.Logger) *Handler {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		originSet[origin] = struct{}{}
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				_, ok := originSet[r.Header.Get("Origin")]
				return ok
			},
		},
		logger: logger.With().Str("component", "realtime").Logger(),
	}
}

// ServeWS handles GET /ws/couples. The request must carry validated claims;
// an optional partner_id query parameter subscribes the socket to the
// couple's broadcast stream immediately.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}
	userID := claims.UserID.String()

	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := ws.NewConnection(socket, h.logger)
	h.hub.Register(userID, conn)

	if partnerID := r.URL.Query().Get("partner_id"); partnerID != "" {
		h.hub.JoinCouple(adaptive.CoupleKey(userID, partnerID), userID)
	}

	go conn.WritePump()

	conn.ReadPump(func(msg ws.Message) error {
		switch msg.Type {
		case ws.TypePing:
			return conn.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
		default:
			return conn.Send(ws.NewMessage(ws.TypeError, ws.ErrorPayload{
				Code:    httperrors.ErrCodeUnknownMessageType,
				Message: "Unknown message type: " + msg.Type,
			}))
		}
	})

	h.hub.Unregister(userID)
}
