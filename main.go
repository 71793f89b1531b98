package main

import (
	"log"
	"net/http"
	"os"

	"github.com/cardfolio/cardfolio-api/auth"
	"github.com/cardfolio/cardfolio-api/config"
	"github.com/cardfolio/cardfolio-api/handlers"
	"github.com/cardfolio/cardfolio-api/middleware"
	"github.com/cardfolio/cardfolio-api/storage"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Initialize database connection
	config.Connect()

	// Token validation: Auth0 when a tenant is configured, local dev tokens
	// otherwise
	useAuth0 := os.Getenv("AUTH0_DOMAIN") != ""
	var authMiddleware func(http.Handler) http.Handler
	if useAuth0 {
		authMiddleware = middleware.EnsureValidToken()
	} else {
		log.Println("main: AUTH0_DOMAIN not set, using local development tokens")
		authMiddleware = auth.Middleware
	}

	h := &handlers.DBHandler{
		DB:       config.Database,
		Files:    storage.FromEnv(),
		Sessions: handlers.NewStudySessions(),
	}
	mux := http.NewServeMux()

	// Library
	mux.HandleFunc("GET /api/library", middleware.SyncUserMiddleware(h.GetLibrary))

	// Set
	mux.HandleFunc("GET /api/sets/{setID}", middleware.SyncUserMiddleware(h.GetSetByID))
	mux.HandleFunc("POST /api/sets", middleware.SyncUserMiddleware(h.CreateSet))
	mux.HandleFunc("PUT /api/sets/{setID}", middleware.SyncUserMiddleware(h.UpdateSetByID))
	mux.HandleFunc("DELETE /api/sets/{setID}", middleware.SyncUserMiddleware(h.DeleteSetByID))

	// Folder
	mux.HandleFunc("POST /api/folders", middleware.SyncUserMiddleware(h.CreateFolder))
	mux.HandleFunc("PUT /api/folders/{folderID}/color", middleware.SyncUserMiddleware(h.ChangeFolderColor))

	// Study session
	mux.HandleFunc("POST /api/sets/{setID}/study", middleware.SyncUserMiddleware(h.OpenStudySession))
	mux.HandleFunc("GET /api/study/{sessionID}", h.GetStudySession)
	mux.HandleFunc("POST /api/study/{sessionID}/next", h.StudyNext)
	mux.HandleFunc("POST /api/study/{sessionID}/previous", h.StudyPrevious)
	mux.HandleFunc("POST /api/study/{sessionID}/flip", h.StudyFlip)
	mux.HandleFunc("PUT /api/study/{sessionID}/options", h.StudyOptions)
	mux.HandleFunc("POST /api/study/{sessionID}/key", h.StudyKey)
	mux.HandleFunc("DELETE /api/study/{sessionID}", h.CloseStudySession)

	if !useAuth0 {
		mux.HandleFunc("POST /api/auth/login", handlers.DevLogin)
	}

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://cardfolio.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	log.Printf("main: listening on %s", serverAddr)
	http.ListenAndServe(serverAddr, corsHandler)
}
