package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	pkgerrors "github.com/pkg/errors"

	"github.com/kdsutter/visstream/internal/debugviz"
	"github.com/kdsutter/visstream/pkg/vis"
)

// Server is the admin HTTP surface: the websocket upgrade endpoint, a
// liveness check, and a debug causality-graph renderer, all routed
// through gorilla/mux with request logging modeled on the four command's
// handler wrapper.
type Server struct {
	Engine   *vis.Engine
	upgrader websocket.Upgrader
}

// NewServer constructs a Server bound to engine.
func NewServer(engine *vis.Engine) *Server {
	return &Server{
		Engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the mux.Router serving this Server's endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(s.handleHealthz)
	r.Methods(http.MethodGet).Path("/stream").HandlerFunc(s.handleStream)
	r.Methods(http.MethodGet).Path("/debug/windows/{id}.svg").HandlerFunc(s.handleDebugWindowSVG)
	return r
}

func loggingMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, w, r)
		slog.Info("handled", "method", r.Method, "url", r.URL.Path, "duration", m.Duration, "status", m.Code)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !s.Engine.IsConnected() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok: no peer\n"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok: peer connected\n"))
}

// handleStream upgrades the request to a websocket and hands it to the
// engine as its single peer, rejecting a second peer while one is
// already connected (Open Question 3 resolution, see DESIGN.md).
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "err", err)
		return
	}

	t := NewWSTransport(conn)
	if !s.Engine.TryOnOpen(t) {
		slog.Warn("rejecting peer: one is already connected")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "peer already connected"))
		_ = conn.Close()
		return
	}
	defer s.Engine.OnClose(t)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("peer read failed", "err", err)
			}
			return
		}
		// The wire protocol is one-directional (engine to peer); any
		// inbound frame is discarded, its only purpose is keeping the
		// read loop alive to detect a peer-initiated close.
	}
}

func (s *Server) handleDebugWindowSVG(w http.ResponseWriter, r *http.Request) {
	windowID := mux.Vars(r)["id"]
	g, err := s.Engine.CausalityGraph(windowID)
	if err != nil {
		if errors.Is(err, vis.ErrWindowNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("causality graph failed", "err", pkgerrors.WithMessage(err, "windowID="+windowID))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	svg, err := debugviz.RenderSVG(g)
	if err != nil {
		slog.Error("svg render failed", "err", pkgerrors.WithStack(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}
