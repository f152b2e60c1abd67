package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/pipeline"
	"github.com/ziadkadry99/treemap/internal/render"
)

// run renders the dataset named by the data query parameter.
func (s *Server) run(r *http.Request) *pipeline.Result {
	key := r.URL.Query().Get("data")
	if key == "" {
		key = s.cfg.Dataset
	}
	return s.runner.Run(r.Context(), key, s.cfg.Render)
}

// handlePage serves the interactive page. A failed fetch still serves the
// page shell, with an empty tree map and legend.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	res := s.run(r)
	scene := res.Scene
	if res.State != pipeline.Rendered {
		scene = render.Empty(s.cfg.Render)
	}

	w.Header().Set("Content-Type", render.FormatHTML.ContentType())
	if err := scene.WriteHTML(w); err != nil {
		log.Printf("server: writing page: %v", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	res := s.run(r)
	if res.State != pipeline.Rendered {
		http.Error(w, res.Err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", render.FormatSVG.ContentType())
	if err := res.Scene.WriteSVG(w); err != nil {
		log.Printf("server: writing svg: %v", err)
	}
}

type datasetInfo struct {
	ID      dataset.ID `json:"id"`
	URL     string     `json:"url"`
	Default bool       `json:"default"`
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	def, _ := dataset.ResolveWithDefault(s.cfg.Dataset, dataset.Default)
	var out []datasetInfo
	for _, id := range dataset.IDs() {
		out = append(out, datasetInfo{ID: id, URL: dataset.URL(id), Default: id == def})
	}
	writeJSON(w, http.StatusOK, out)
}

type layoutError struct {
	Dataset dataset.ID     `json:"dataset"`
	URL     string         `json:"url"`
	State   pipeline.State `json:"state"`
	Error   string         `json:"error"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	res := s.run(r)
	if res.State != pipeline.Rendered {
		writeJSON(w, http.StatusBadGateway, layoutError{
			Dataset: res.Dataset,
			URL:     res.URL,
			State:   res.State,
			Error:   res.Err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, res.Scene.Layout())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
