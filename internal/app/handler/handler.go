package handler

import (
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/middleware"
	"Admin-Console/internal/app/session"

	"github.com/gin-gonic/gin"
)

// RegisterHandlers регистрирует все обработчики
func RegisterHandlers(router *gin.Engine, app *console.Console) {
	apiRouter := router.Group("/api")

	// Создаем хендлеры
	tableHandler := NewTableHandler(app)
	languageHandler := NewLanguageHandler(app)
	menuHandler := NewMenuHandler(app)
	userHandler := NewUserHandler(app)

	// Public routes - доступны без аутентификации
	public := apiRouter.Group("")
	{
		public.POST("/auth/login", userHandler.Login)

		public.GET("/languages", languageHandler.GetLanguages)
		public.GET("/font-class", languageHandler.GetFontClass)
	}

	// Protected routes - требуют аутентификации
	protected := apiRouter.Group("")
	protected.Use(middleware.AuthMiddleware(app))
	{
		protected.POST("/auth/logout", userHandler.Logout)

		protected.GET("/language", languageHandler.GetLanguage)
		protected.PUT("/language", languageHandler.UpdateLanguage)
		protected.GET("/translations/:locale", languageHandler.GetTranslations)

		protected.GET("/menu", menuHandler.GetMenu)
		protected.GET("/exports", tableHandler.GetExports)
	}

	// Таблицы - правила доступа по роли и правам
	tables := apiRouter.Group("/tables/:endpoint")
	tables.Use(
		middleware.AuthMiddleware(app),
		middleware.RequireRoleFor(app.Config().AdminEndpoints, session.RoleAdmin),
		middleware.RequirePermission(app.Config().Permissions),
	)
	{
		tables.GET("", tableHandler.GetTable)
		tables.GET("/export/:format", tableHandler.ExportTable)
	}
}
