package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/quizia/backend/internal/admin"
	"github.com/quizia/backend/internal/auth"
	"github.com/quizia/backend/internal/chat"
	"github.com/quizia/backend/internal/database"
	"github.com/quizia/backend/internal/generator"
	"github.com/quizia/backend/internal/middleware"
	"github.com/quizia/backend/internal/progress"
	"github.com/quizia/backend/internal/quiz"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	gen := generator.NewGenerator()

	authHandler := auth.NewHandler(db)

	quizStore := quiz.NewStore(db)
	quizHandler := quiz.NewHandler(quiz.NewService(quizStore, gen))

	progressStore := progress.NewStore(db)
	progressHandler := progress.NewHandler(progress.NewService(progressStore))

	chatStore := chat.NewStore(db)
	chatHandler := chat.NewHandler(chat.NewService(chatStore, gen), chatStore)

	adminStore := admin.NewStore(db)
	adminHandler := admin.NewHandler(admin.NewService(adminStore))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/quiz/generate", quizHandler.GenerateQuiz).Methods("POST")
	protected.HandleFunc("/quiz/session", quizHandler.GetSession).Methods("GET")
	protected.HandleFunc("/quiz/session", quizHandler.SaveSession).Methods("POST")
	protected.HandleFunc("/quiz/session", quizHandler.DeleteSession).Methods("DELETE")
	protected.HandleFunc("/quiz/analyze", quizHandler.AnalyzeQuiz).Methods("POST")

	protected.HandleFunc("/user/progress", progressHandler.GetUserProgress).Methods("GET")

	protected.HandleFunc("/chat/tutor", chatHandler.TutorChat).Methods("POST")
	protected.HandleFunc("/chat/recommend", chatHandler.RecommendChat).Methods("POST")
	protected.HandleFunc("/chat/conversations", chatHandler.ListConversations).Methods("GET")
	protected.HandleFunc("/chat/conversations", chatHandler.CreateConversation).Methods("POST")
	protected.HandleFunc("/chat/conversations/{id}", chatHandler.UpdateConversation).Methods("PUT")
	protected.HandleFunc("/chat/conversations/{id}", chatHandler.DeleteConversation).Methods("DELETE")

	protected.HandleFunc("/admin/auth", adminHandler.Authenticate).Methods("POST")
	protected.HandleFunc("/admin/stats", adminHandler.GetStats).Methods("GET")
	protected.HandleFunc("/admin/cleanup", adminHandler.Cleanup).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
