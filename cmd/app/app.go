package app

import (
	"log"

	"github.com/norphel/odin-blogAPI/internal/config"
	"github.com/norphel/odin-blogAPI/internal/database"
	"github.com/norphel/odin-blogAPI/internal/repository"
	"github.com/norphel/odin-blogAPI/internal/service"
	"github.com/norphel/odin-blogAPI/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, services
}
