package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rail/communication"
	"rail/gamemaster"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Server struct {
	judge    communication.Judge
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer exposes judge over HTTP; a nil judge serves in-process.
func NewServer(judge communication.Judge) *Server {
	if judge == nil {
		judge = communication.LocalJudge{}
	}
	s := &Server{
		judge: judge,
		mux:   http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.mux.HandleFunc("/gen", s.handleGenerate)
	s.mux.HandleFunc("/score", s.handleScore)
	s.mux.HandleFunc("/vis", s.handleVisualize)
	s.mux.HandleFunc("/max_turn", s.handleMaxTurn)
	s.mux.HandleFunc("/replay", s.handleReplay)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("judge server listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down judge server")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	seed, err := strconv.ParseUint(r.URL.Query().Get("seed"), 10, 64)
	if err != nil {
		http.Error(w, "invalid seed", http.StatusBadRequest)
		return
	}
	text, err := s.judge.Generate(seed, r.URL.Query().Get("variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	v, err := s.judge.Score(req.Input, req.Output)
	respond(w, v, err)
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	v, err := s.judge.Visualize(req.Input, req.Output, req.Turn)
	respond(w, v, err)
}

func (s *Server) handleMaxTurn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	n, err := s.judge.MaxTurn(req.Input, req.Output)
	respond(w, communication.MaxTurnResponse{MaxTurn: n}, err)
}

// handleReplay reads one JudgeRequest from the websocket and streams every snapshot
// followed by the verdict.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	var req communication.JudgeRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid replay request")
		return
	}

	_, result, err := gamemaster.Replay(req.Input, req.Output)
	verdict := gamemaster.Verdict{Score: result.Score}
	if err == nil {
		for _, snap := range result.Snapshots {
			if err := conn.WriteJSON(communication.ReplayMessage{Snapshot: snap}); err != nil {
				log.Warn().Err(err).Msg("replay stream interrupted")
				return
			}
		}
	}
	if result.Err != nil {
		verdict.Error = result.Err.Error()
	}
	if err := conn.WriteJSON(communication.ReplayMessage{Verdict: &verdict}); err != nil {
		log.Warn().Err(err).Msg("failed to send replay verdict")
		return
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (communication.JudgeRequest, bool) {
	var req communication.JudgeRequest
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func respond(w http.ResponseWriter, body any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
