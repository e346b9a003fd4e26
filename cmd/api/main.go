package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/norphel/odin-blogAPI/cmd/app"
	"github.com/norphel/odin-blogAPI/internal/config"
	handlers "github.com/norphel/odin-blogAPI/internal/handler"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET и REFRESH_TOKEN_SECRET должны быть заданы в .env файле")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.HealthCheck(); err != nil {
			handlers.WriteError(w, "БД недоступна", http.StatusServiceUnavailable)
			return
		}
		handlers.WriteSuccess(w, handlers.MessageResponse{Message: "ok"}, http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// public user routes
	api.HandleFunc("/users/signup", handler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/users/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	// public post routes
	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/user/{userID}/published", handler.GetPublishedPostsOfUser).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postID}", handler.GetPost).Methods(http.MethodGet)

	// protected user routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(handler.AuthMiddleware)
	users.HandleFunc("/logout", handler.Logout).Methods(http.MethodPost)
	users.HandleFunc("/profile", handler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/profile/profilePicture", handler.UpdateProfilePicture).Methods(http.MethodPatch)

	// protected post routes
	posts := api.PathPrefix("/posts").Subrouter()
	posts.Use(handler.AuthMiddleware)
	posts.HandleFunc("", handler.CreatePost).Methods(http.MethodPost)
	posts.HandleFunc("/user/{userID}/all", handler.GetAllPostsOfUser).Methods(http.MethodGet)
	posts.HandleFunc("/{postID}/published", handler.ChangePublishedStatus).Methods(http.MethodPatch)
	posts.HandleFunc("/{postID}/edit", handler.EditPost).Methods(http.MethodPatch)
	posts.HandleFunc("/{postID}/comments", handler.GetCommentsOnPost).Methods(http.MethodGet)
	posts.HandleFunc("/{postID}", handler.CreateComment).Methods(http.MethodPost)
	posts.HandleFunc("/{postID}", handler.DeletePost).Methods(http.MethodDelete)

	handlerChain := handlers.Chain(
		r,
		handlers.TimeoutMiddleware(cfg.RequestTimeout),
		handlers.CORSMiddleware,
		handlers.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
