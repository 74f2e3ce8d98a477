package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"powerdash/api"
	"powerdash/dashboard"
	"powerdash/render"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type pageData struct {
	Title  string
	Header string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, pageData{
		Title:  "Electricity in Switzerland",
		Header: "Here we will look into some interesting energy data!",
	})
	if err != nil {
		s.logger.Error("rendering index page", err)
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	options, err := s.dashboard.Options()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, options)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	selection, err := selectionFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.dashboard.Render(selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, view)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	table, err := s.dashboard.WorkingTable()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filtered, err := dashboard.Filter(table, energyTypeFromQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, dashboard.NewTableView(filtered))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, s.dashboard.Summary())
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.apiHandler == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	data := s.apiHandler.HandleApiCall(&api.Call{CallType: api.ReadLog, Remote: r.RemoteAddr, Limit: limit})
	if data == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.logger.FeatureEvent("reload", "", fmt.Sprintf("requested by %s", r.RemoteAddr))
	summary, err := s.dashboard.Reload()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, summary)
}

func (s *Server) handleTariffPng(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	png, err := s.dashboard.TariffPNG()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	view, err := s.dashboard.MapView(energyTypeFromQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, view.Map)
}

func energyTypeFromQuery(r *http.Request) string {
	if value := r.URL.Query().Get("energy_type"); value != "" {
		return value
	}
	return dashboard.AllEnergyTypes
}

func selectionFromQuery(r *http.Request) (dashboard.Selection, error) {
	selection := dashboard.DefaultSelection()
	query := r.URL.Query()
	selection.EnergyType = energyTypeFromQuery(r)
	if value := query.Get("backend"); value != "" {
		backend, err := render.ParseBackend(value)
		if err != nil {
			return selection, err
		}
		selection.Backend = backend
	}
	if value := query.Get("show_table"); value != "" {
		show, err := strconv.ParseBool(value)
		if err != nil {
			return selection, fmt.Errorf("%w: show_table %q", dashboard.ErrInvalidValue, value)
		}
		selection.ShowTable = show
	}
	return selection, nil
}

// statusCode maps selection errors to 400, everything else is a server fault
func statusCode(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownEnergyType),
		errors.Is(err, dashboard.ErrInvalidValue),
		errors.Is(err, dashboard.ErrUnknownControl),
		errors.Is(err, render.ErrUnknownBackend):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(fmt.Sprintf("%s %s", r.Method, r.URL.Path), err)
	} else {
		s.logger.Warn(fmt.Sprintf("%s %s from %s: %s", r.Method, r.URL.Path, r.RemoteAddr, err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", err)
	}
}
