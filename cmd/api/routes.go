package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmaxmax/go-sse"

	"parking-violations/internal/models"
	"parking-violations/internal/models/violationapi"
	"parking-violations/internal/service"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /violations", app.listViolations)
	mux.HandleFunc("PATCH /violations/{id}", app.updateViolation)
	mux.HandleFunc("/events", app.sseHandler.ServeHTTP)
	mux.Handle("GET /metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return app.logRequests(mux)
}

func (app *application) listViolations(w http.ResponseWriter, r *http.Request) {
	violations, err := app.service.GetViolations(r.Context())
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, violations)
}

func (app *application) updateViolation(w http.ResponseWriter, r *http.Request) {
	var body violationapi.StatusBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&body); err != nil {
		app.writeJSON(w, http.StatusBadRequest, violationapi.ErrorBody{Error: "invalid request body"})
		return
	}

	violation, err := app.service.UpdateViolationStatus(r.Context(), r.PathValue("id"), body.Resolved)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, violation)
}

// publishViolation pushes a status change to every /events subscriber.
func (app *application) publishViolation(v models.Violation) {
	data, err := json.Marshal(v)
	if err != nil {
		app.logger.Error("encode event", "id", v.ID, "error", err)
		return
	}

	e := &sse.Message{}
	e.AppendData(data)
	app.sseHandler.Publish(e)
}

func (app *application) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUpdateFailed):
		status = http.StatusServiceUnavailable
	}
	app.logger.Warn("request failed", "path", r.URL.Path, "status", status, "error", err,
		"request_id", w.Header().Get(violationapi.RequestIDHeader))

	app.writeJSON(w, status, violationapi.ErrorBody{Error: err.Error()})
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("encode response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps the recorder usable for streaming responses.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (app *application) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(violationapi.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(violationapi.RequestIDHeader, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		app.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		app.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}
