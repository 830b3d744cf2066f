package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cityforest/pkg/buildinfo"
	cferrors "github.com/matzehuels/cityforest/pkg/errors"
	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/forest"
)

// VertexResponse is the body of GET /vertices/{name}.
type VertexResponse struct {
	export.VertexJSON
	Connections []Connection `json:"connections"`
}

// Connection is one edge of a vertex as seen from that vertex.
type Connection struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Region string  `json:"region,omitempty"`
	Miles  float64 `json:"miles"`
	Tag    string  `json:"tag,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleNetworkJSON(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, s.network); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleNetworkDOT(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(export.ToDOT(s.graph, s.dot)))
}

func (s *Server) handleNetworkSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := s.renderSVG(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.summary)
}

func (s *Server) handleVertex(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, ok := s.graph.Search(name)
	if !ok {
		s.writeError(w, fmt.Errorf("%w: %q", forest.ErrUnknownEntity, name))
		return
	}

	resp := VertexResponse{
		VertexJSON: export.VertexJSON{
			ID:        v.ID,
			Name:      v.Name,
			Region:    v.Region,
			Lat:       v.Loc.Lat,
			Lon:       v.Loc.Lon,
			Degree:    v.Degree(),
			Finalized: v.Finalized,
		},
		Connections: make([]Connection, 0, v.Degree()),
	}
	for _, e := range v.Edges {
		to, _ := s.graph.Vertex(e.To)
		resp.Connections = append(resp.Connections, Connection{
			ID:     to.ID,
			Name:   to.Name,
			Region: to.Region,
			Miles:  e.Weight,
			Tag:    e.Tag,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError responds with the status and code matching err.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := cferrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	coded := cferrors.Classify(err)
	writeJSON(w, status, errorResponse{Error: cferrors.UserMessage(coded), Code: string(coded.Code)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
