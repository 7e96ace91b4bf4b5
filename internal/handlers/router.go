package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the Slack endpoints, liveness texts and the read-only query API.
func NewRouter(slackHandler *SlackHandler, apiHandler *APIHandler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/slack/commands", slackHandler.HandleSlashCommand).Methods(http.MethodPost)
	router.HandleFunc("/slack/events", slackHandler.HandleEvents).Methods(http.MethodPost)

	router.HandleFunc("/webhook", textHandler("Webhook endpoint is ready")).Methods(http.MethodGet)
	router.HandleFunc("/health", textHandler("OK")).Methods(http.MethodGet)
	router.HandleFunc("/", textHandler("Attendance bot is running!")).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Methods(http.MethodGet).Subrouter()
	api.HandleFunc("/records", apiHandler.HandleRecords)
	api.HandleFunc("/roster", apiHandler.HandleRoster)
	api.HandleFunc("/config", apiHandler.HandleConfig)
	api.HandleFunc("/report/today", apiHandler.HandleTodayReport)
	api.HandleFunc("/report/{date}/{window}", apiHandler.HandleBucketReport)

	router.Use(logRequests)

	return router
}

func textHandler(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, text)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[DEBUG] Handle %s %s from %s", r.Method, r.URL, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
