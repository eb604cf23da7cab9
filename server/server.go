package server

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"pdfanalyzer/handlers"
)

func SetupRoutes(h *handlers.DocumentHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/document/analyze", h.AnalyzeDocument).Methods("POST")
	r.HandleFunc("/document/ask", h.AskQuestion).Methods("POST")
	r.HandleFunc("/document/summary", h.GetSummary).Methods("GET")
	r.HandleFunc("/document/chunks", h.GetChunks).Methods("GET")
	r.HandleFunc("/document/status", h.GetStatus).Methods("GET")

	return r
}

// Serve blocks on the given server until it fails.
func Serve(s *http.Server) {
	log.Fatal(s.ListenAndServe())
}
