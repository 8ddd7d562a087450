package main

import (
	"time"

	"github.com/mapstacks/geoupload/config"
	"github.com/mapstacks/geoupload/forms"
	"github.com/mapstacks/geoupload/models"
	"github.com/mapstacks/geoupload/routes"
	"github.com/mapstacks/geoupload/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.UploadSizeLimit{}, &models.UploadSession{})

	r := routes.SetupRouter(db, forms.NewExtensionClassifier())

	// Prune stale upload sessions in the background (best-effort)
	utils.StartSessionSweeper(time.Hour)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
