package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
	"github.com/refgenome-id/refgenome-id/internal/render"
)

// identifyRequest is the POST /api/v1/identify body: a raw contig
// dictionary, already parsed client-side or produced by one of the
// internal/*header adapters ahead of the HTTP hop.
type identifyRequest struct {
	Contigs []contigPayload `json:"contigs"`
	Explain bool             `json:"explain"`
}

type contigPayload struct {
	Name         string   `json:"name"`
	Length       int64    `json:"length"`
	MD5          string   `json:"md5"`
	Aliases      []string `json:"aliases"`
	SequenceRole string   `json:"sequence_role"`
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	var req identifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	contigs := make([]refmatch.Contig, 0, len(req.Contigs))
	for _, c := range req.Contigs {
		contigs = append(contigs, refmatch.Contig{
			Name:         c.Name,
			Length:       c.Length,
			MD5:          c.MD5,
			Aliases:      c.Aliases,
			SequenceRole: refmatch.SequenceRole(c.SequenceRole),
		})
	}

	query, err := refmatch.NewQueryHeader(contigs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := refmatch.FindMatches(query, s.idx, s.cfg)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := render.WriteJSON(w, results, req.Explain); err != nil {
		s.log.Error("write identify response", zap.Error(err))
	}
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	refs := s.idx.References
	summaries := make([]map[string]interface{}, 0, len(refs))
	for _, ref := range refs {
		summaries = append(summaries, map[string]interface{}{
			"id":           ref.ID,
			"display_name": ref.DisplayName,
			"assembly":     ref.Assembly,
			"source":       ref.Source,
			"contig_count": len(ref.Contigs),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"references": summaries})
}

func (s *Server) handleGetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, ref := range s.idx.References {
		if ref.ID == id {
			s.writeJSON(w, http.StatusOK, ref)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "no catalog entry with id "+id)
}
