package main

import (
	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/middleware"
	"github.com/propside/portal-go/internal/api/routes"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/config"
	"github.com/propside/portal-go/internal/config/db"
	"github.com/propside/portal-go/internal/domain/contract"
	"github.com/propside/portal-go/internal/domain/document"
	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/notify"
	"github.com/propside/portal-go/internal/render"
	"github.com/propside/portal-go/internal/repository"
	"github.com/propside/portal-go/internal/storage"
	"k8s.io/klog/v2"
)

func main() {
	config.LoadConfig()
	middleware.Init()
	db.Init()

	if err := db.DB.AutoMigrate(
		&user.User{},
		&template.Template{},
		&document.Document{},
		&document.Signature{},
		&contract.Contract{},
	); err != nil {
		klog.Fatalf("Failed to migrate database: %v", err)
	}

	store := storage.InitMinio()
	bus := notify.NewChangeBus()

	repos := repository.New()
	services := application.New(repos, render.NewPDFRenderer(), store, bus)

	r := gin.Default()
	routes.RegisterRoutes(r, services, bus)

	klog.Infof("Listening on :%s", config.ServerPort)
	if err := r.Run(":" + config.ServerPort); err != nil {
		klog.Fatalf("Server exited: %v", err)
	}
}
