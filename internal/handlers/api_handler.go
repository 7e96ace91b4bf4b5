package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
	"github.com/gorilla/mux"
)

// APIHandler serves read-only JSON views of the ledger, roster and state.
type APIHandler struct {
	attendanceService contract.AttendanceService
}

func NewAPI(attendanceService contract.AttendanceService) *APIHandler {
	return &APIHandler{attendanceService: attendanceService}
}

type configResponse struct {
	Enabled         bool      `json:"enabled"`
	BroadcastTarget string    `json:"broadcastTarget,omitempty"`
	Windows         []string  `json:"windows"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type todayResponse struct {
	Date    string                   `json:"date"`
	Records []entity.AttendanceEntry `json:"records"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	records := h.attendanceService.Records()
	if records == nil {
		records = []entity.AttendanceEntry{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *APIHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	roster := h.attendanceService.Roster()
	if roster == nil {
		roster = []entity.Member{}
	}
	writeJSON(w, http.StatusOK, roster)
}

func (h *APIHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	state := h.attendanceService.State()
	writeJSON(w, http.StatusOK, configResponse{
		Enabled:         state.Enabled,
		BroadcastTarget: state.BroadcastTarget,
		Windows:         state.Schedule.Strings(),
		UpdatedAt:       state.UpdatedAt,
	})
}

func (h *APIHandler) HandleTodayReport(w http.ResponseWriter, r *http.Request) {
	date, records := h.attendanceService.TodayRecords()
	if records == nil {
		records = []entity.AttendanceEntry{}
	}
	writeJSON(w, http.StatusOK, todayResponse{Date: date, Records: records})
}

// HandleBucketReport serves /api/report/{date}/{window}, e.g. /api/report/2024-01-01/09:00.
func (h *APIHandler) HandleBucketReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse("2006-01-02", vars["date"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}
	boundary, err := window.ParseBoundary(vars["window"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "window must be HH:MM"})
		return
	}

	writeJSON(w, http.StatusOK, h.attendanceService.BucketReport(date.Format("2006-01-02"), boundary.String()))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] Cannot encode response: %v", err)
	}
}
