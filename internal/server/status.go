package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/conquergate/conquergate/internal/dependencies/clock"
)

// statusServer exposes a small HTTP surface for operators: liveness and
// the informational player count.
type statusServer struct {
	server    *Server
	http      *http.Server
	clock     clock.Clock
	logger    *slog.Logger
	startedAt time.Time
}

type statusResponse struct {
	PlayersOnline   int   `json:"players_online"`
	PendingPromises int   `json:"pending_promises"`
	UptimeSeconds   int64 `json:"uptime_seconds"`
}

func newStatusServer(s *Server, port int, clk clock.Clock, logger *slog.Logger) *statusServer {
	st := &statusServer{
		server: s,
		clock:  clk,
		logger: logger.With(slog.String("component", "status")),
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", st.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", st.handleStatus).Methods(http.MethodGet)

	st.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return st
}

// Start begins serving in a background goroutine
func (st *statusServer) Start() error {
	st.startedAt = st.clock.Now()
	st.logger.Info("status endpoint listening", slog.String("addr", st.http.Addr))

	go func() {
		if err := st.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			st.logger.Error("status server failed", slog.String("error", err.Error()))
		}
	}()
	return nil
}

// Shutdown stops the HTTP server
func (st *statusServer) Shutdown(ctx context.Context) error {
	return st.http.Shutdown(ctx)
}

func (st *statusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (st *statusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		PlayersOnline:   st.server.session.PlayerCount(),
		PendingPromises: st.server.promises.Pending(),
		UptimeSeconds:   int64(st.clock.Now().Sub(st.startedAt).Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
