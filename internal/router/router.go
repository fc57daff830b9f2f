package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medo-health/assistant-api/internal/handlers"
	"github.com/medo-health/assistant-api/internal/middleware"
	"github.com/medo-health/assistant-api/internal/utils"
)

func New(chat *handlers.ChatHandler, doctor *handlers.DoctorHandler, library *handlers.LibraryHandler, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	api := r.PathPrefix("/api").Subrouter()

	// Chat pipeline
	api.HandleFunc("/chat", chat.Chat).Methods(http.MethodPost)
	api.HandleFunc("/health", chat.Health).Methods(http.MethodGet)

	// AI doctor
	api.HandleFunc("/doctor/analyze", doctor.AnalyzeImage).Methods(http.MethodPost)
	api.HandleFunc("/doctor/transcribe", doctor.Transcribe).Methods(http.MethodPost)
	api.HandleFunc("/doctor/speak", doctor.Speak).Methods(http.MethodPost)

	// Health library. Fixed paths are registered before the {id} route so
	// "search" is never treated as an article ID.
	api.HandleFunc("/health-articles/search", library.Search).Methods(http.MethodGet)
	api.HandleFunc("/health-articles/category/{category}", library.ListByCategory).Methods(http.MethodGet)
	api.HandleFunc("/health-articles", library.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/health-articles", library.CreateArticle).Methods(http.MethodPost)
	api.HandleFunc("/health-articles/{id}", library.GetArticle).Methods(http.MethodGet)
	api.HandleFunc("/health-articles/{id}", library.UpdateArticle).Methods(http.MethodPut)
	api.HandleFunc("/health-articles/{id}", library.DeleteArticle).Methods(http.MethodDelete)
	api.HandleFunc("/health-categories", library.ListCategories).Methods(http.MethodGet)

	return r
}
