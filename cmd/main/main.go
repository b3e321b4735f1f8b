package main

import (
	"Admin-Console/internal/app/config"
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/repository"
	"Admin-Console/internal/pkg"

	_ "Admin-Console/docs" // Важно: добавляем импорт docs

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Admin Console Gateway API
// @version 1.0
// @description Gateway between the admin console UI and the REST backend: tables, exports, languages and menu

// @contact.name API Support
// @contact.url http://localhost:8080

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token of the auth provider. Example: "Bearer {token}"

// @tag.name Auth
// @tag.description Sign in and sign out through the auth provider
// @tag.name Tables
// @tag.description Backend lists, exports and export history
// @tag.name Languages
// @tag.description Interface languages, translations and font detection
// @tag.name Menu
// @tag.description Navigation menu
func main() {
	router := gin.Default()

	// Загружаем конфигурацию
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	// Инициализируем репозиторий. Без базы шлюз работает на памяти.
	repo, err := repository.NewRepository(conf)
	if err != nil {
		logrus.Warnf("error initializing repository, running without storage: %v", err)
		repo = nil
	} else {
		defer repo.Close()
	}

	// Создаем приложение с конфигурацией
	application := pkg.NewApp(conf, router, console.New(conf, repo))

	// Запускаем приложение
	application.RunApp()
}
