package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fortuna/halfcourt/internal/config"
	"github.com/fortuna/halfcourt/internal/export"
	"github.com/fortuna/halfcourt/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler contains dependencies for HTTP handlers. Summaries are recomputed
// from the exported CSV on every request, so a pipeline re-run is picked up
// without restarting the server.
type Handler struct {
	cfg config.Config
	log *zap.Logger
}

// NewHandler creates a new handler.
func NewHandler(cfg config.Config, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "halfcourt",
	})
}

// GetPlays returns the exported play table as JSON.
func (h *Handler) GetPlays(w http.ResponseWriter, r *http.Request) {
	plays, err := export.ReadPlays(h.cfg.PlaysPath())
	if err != nil {
		respondError(w, http.StatusNotFound, "No exported play table, run the pipeline first", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"plays": plays,
		"count": len(plays),
	})
}

// GetSummary returns per-game, per-half, and player summaries derived from
// the exported play table.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	plays, err := export.ReadPlays(h.cfg.PlaysPath())
	if err != nil {
		respondError(w, http.StatusNotFound, "No exported play table, run the pipeline first", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games":  stats.SummarizeGames(plays),
		"halves": stats.SummarizeHalves(plays),
		"player": stats.SummarizePlayer(plays, h.cfg.Player),
	})
}

// GetChart serves a rendered SVG chart from the output directory.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	// The output dir holds nothing secret, but keep traversal out anyway.
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".svg") {
		respondError(w, http.StatusBadRequest, "Invalid chart name", nil)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	http.ServeFile(w, r, filepath.Join(h.cfg.OutputDir, name))
}

// GetPlaysCSV serves the exported flat file itself.
func (h *Handler) GetPlaysCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, h.cfg.PlaysPath())
}

// Index serves a minimal page that shows the charts and reloads itself when
// the output directory changes.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>halfcourt</title></head>
<body style="font-family:sans-serif;max-width:960px;margin:auto">
<h1>halfcourt</h1>
<p><a href="/plays.csv">plays.csv</a> &middot; <a href="/api/v1/summary">summary</a></p>
<img src="/charts/shooting.svg" alt="Shooting by game">
<img src="/charts/win_probability.svg" alt="Home win probability">
<img src="/charts/player_points.svg" alt="Player points by half">
<script>
const ws = new WebSocket("ws://" + location.host + "/ws/reload");
ws.onmessage = () => location.reload();
</script>
</body>
</html>
`

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
