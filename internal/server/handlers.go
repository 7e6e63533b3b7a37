package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/daeun-lee/hakwonlog/internal/export"
	"github.com/daeun-lee/hakwonlog/internal/record"
	"github.com/daeun-lee/hakwonlog/internal/week"
)

const maxRecordBody = 1 << 20 // a week record is a few KB; 1 MiB is generous

func (s *Server) handleListWeeks(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.ListKeys(r.Context())
	if err != nil {
		slog.Error("listing weeks", "error", err)
		writeError(w, http.StatusInternalServerError, "listing weeks failed")
		return
	}
	sorted := week.SortAsc(keys)
	writeJSON(w, http.StatusOK, map[string]any{
		"weeks":   sorted,
		"byMonth": week.GroupByMonth(sorted),
	})
}

// handleCreateWeek creates the week after the latest stored one, or the
// current calendar week when the store is empty.
func (s *Server) handleCreateWeek(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.ListKeys(r.Context())
	if err != nil {
		slog.Error("listing weeks", "error", err)
		writeError(w, http.StatusInternalServerError, "creating week failed")
		return
	}

	var nextKey string
	if len(keys) == 0 {
		nextKey = week.ForDate(s.now())
	} else {
		sorted := week.SortAsc(keys)
		nextKey = week.Next(sorted[len(sorted)-1], s.now())
	}

	if err := s.store.Save(r.Context(), nextKey, record.Empty()); err != nil {
		slog.Error("saving new week", "weekKey", nextKey, "error", err)
		writeError(w, http.StatusInternalServerError, "creating week failed")
		return
	}
	slog.Info("week created", "weekKey", nextKey)
	writeJSON(w, http.StatusCreated, map[string]string{
		"weekKey": nextKey,
		"label":   week.Label(nextKey),
	})
}

// handleGetWeek returns the normalized record. An unknown key is not an
// error; it loads as the canonical empty record.
func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rec, err := s.store.Load(r.Context(), key)
	if err != nil {
		slog.Error("loading week", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "loading week failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutWeek(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}

	problems, err := record.ValidateJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "body is not valid JSON")
		return
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "invalid week record",
			"problems": problems,
		})
		return
	}

	rec := record.Decode(body)
	if err := s.store.Save(r.Context(), key, rec); err != nil {
		slog.Error("saving week", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "saving week failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteWeek removes a week. Deletion is immediate and
// unrecoverable, so the caller must send confirm=true explicitly.
func (s *Server) handleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "deletion requires confirm=true")
		return
	}
	if err := s.store.Delete(r.Context(), key); err != nil {
		slog.Error("deleting week", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "deleting week failed")
		return
	}
	slog.Info("week deleted", "weekKey", key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	scope, ok := scopeFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "dayGroup and period must be given together and be valid")
		return
	}

	rec, err := s.store.Load(r.Context(), key)
	if err != nil {
		slog.Error("loading week", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "loading week failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weekKey": key,
		"label":   week.Label(key),
		"rows":    export.Rows(rec, scope),
	})
}

// scopeFromQuery reads the optional dayGroup/period pair. Absent means
// whole week; a half-specified or invalid pair is rejected.
func scopeFromQuery(r *http.Request) (record.Scope, bool) {
	dgParam := r.URL.Query().Get("dayGroup")
	pParam := r.URL.Query().Get("period")
	if dgParam == "" && pParam == "" {
		return record.WeekScope(), true
	}
	dg, dgOK := record.ParseDayGroup(dgParam)
	p, pOK := record.ParsePeriod(pParam)
	if !dgOK || !pOK {
		return record.Scope{}, false
	}
	return record.PeriodScope(dg, p), true
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rec, err := s.store.Load(r.Context(), key)
	if err != nil {
		slog.Error("loading week", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "loading week failed")
		return
	}

	f, err := export.Excel(key, export.Rows(rec, record.WeekScope()))
	if err != nil {
		slog.Error("building workbook", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(export.ExcelFilename(key)))
	if err := f.Write(w); err != nil {
		slog.Error("writing workbook", "weekKey", key, "error", err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rec, err := s.store.Load(r.Context(), key)
	if err != nil {
		slog.Error("loading week", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "loading week failed")
		return
	}

	data, err := export.PDF(key, rec)
	if err != nil {
		slog.Error("building summary pdf", "weekKey", key, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(export.PDFFilename(key)))
	if _, err := w.Write(data); err != nil {
		slog.Error("writing summary pdf", "weekKey", key, "error", err)
	}
}

// attachment builds a Content-Disposition value for a filename that may
// contain Korean.
func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename))
}
