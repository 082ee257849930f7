package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/handlers"
	"github.com/propside/portal-go/internal/api/middleware"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/notify"
	"github.com/propside/portal-go/internal/permission"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services, bus *notify.ChangeBus) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	h := handlers.New(svc)

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/changes", handlers.WatchChangesHandler(bus))

		templates := auth.Group("/templates")
		{
			templates.GET("", h.Template.ListTemplates)
			templates.GET("/:id", h.Template.GetTemplate)
			templates.POST("", middleware.RequirePermission(permission.TemplateCreate), h.Template.CreateTemplate)
			templates.PUT("/:id", middleware.RequirePermission(permission.TemplateUpdate), h.Template.UpdateTemplate)
			templates.DELETE("/:id", middleware.RequirePermission(permission.TemplateDelete), h.Template.DeleteTemplate)
			templates.POST("/:id/fields", middleware.RequirePermission(permission.TemplateUpdate), h.Template.AddField)
			templates.PUT("/:id/fields/:fieldId", middleware.RequirePermission(permission.TemplateUpdate), h.Template.UpdateField)
			templates.DELETE("/:id/fields/:fieldId", middleware.RequirePermission(permission.TemplateUpdate), h.Template.RemoveField)
		}

		documents := auth.Group("/documents")
		{
			documents.GET("", middleware.RequirePermission(permission.DocumentViewAll), h.Document.ListDocuments)
			documents.GET("/inbox", h.Document.ListInbox)
			documents.GET("/signatures/mine", h.Document.ListMySignatures)
			documents.GET("/:id", h.Document.GetDocument)
			documents.GET("/:id/signatures", middleware.RequirePermission(permission.DocumentViewAll), h.Document.ListSignatures)
			documents.GET("/:id/review", middleware.RequirePermission(permission.DocumentSign), h.Document.ReviewDocument)
			documents.POST("", middleware.RequirePermission(permission.DocumentIssue), h.Document.IssueDocument)
			documents.POST("/:id/sign", middleware.RequirePermission(permission.DocumentSign), h.Document.SignDocument)
		}

		contracts := auth.Group("/contracts")
		{
			contracts.GET("", middleware.RequirePermission(permission.ContractViewAll), h.Contract.ListContracts)
			contracts.GET("/mine", h.Contract.ListMyContracts)
			contracts.GET("/:id", h.Contract.GetContract)
			contracts.POST("", middleware.RequirePermission(permission.ContractIssue), h.Contract.IssueContract)
			contracts.PUT("/:id/agree", middleware.RequirePermission(permission.ContractReview), h.Contract.AgreeContract)
			contracts.PUT("/:id/disagree", middleware.RequirePermission(permission.ContractReview), h.Contract.DisagreeContract)
		}
	}
}
