package handler

import (
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/menu"
	"Admin-Console/internal/app/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MenuHandler struct {
	app  *console.Console
	menu menu.Menu
}

func NewMenuHandler(app *console.Console) *MenuHandler {
	return &MenuHandler{
		app:  app,
		menu: menu.Default(),
	}
}

// GetMenu godoc
// @Summary Get navigation menu
// @Description Get the console menu filtered by the user's role and translated to the active language
// @Tags Menu
// @Security BearerAuth
// @Produce json
// @Success 200 {object} menu.Menu
// @Failure 401 {object} map[string]string
// @Router /menu [get]
func (h *MenuHandler) GetMenu(ctx *gin.Context) {
	store, exists := middleware.GetSession(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	locale := store.ActiveLocale()
	catalog := h.app.Catalog()
	// Без переводов в меню остаются ключи
	if err := catalog.Load(ctx.Request.Context(), locale); err != nil {
		logrus.Warnf("Menu rendered without messages for %s: %v", locale, err)
	}

	visible := h.menu.Visible(store.Snapshot())
	ctx.JSON(http.StatusOK, visible.Localize(func(key string) string {
		return catalog.T(locale, key)
	}))
}
