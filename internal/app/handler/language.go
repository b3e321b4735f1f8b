package handler

import (
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/i18n"
	"Admin-Console/internal/app/middleware"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LanguageHandler struct {
	app *console.Console
}

func NewLanguageHandler(app *console.Console) *LanguageHandler {
	return &LanguageHandler{
		app: app,
	}
}

type UpdateLanguageRequest struct {
	Language string `json:"language" binding:"required"`
	Persist  *bool  `json:"persist"`
}

type LanguageResponse struct {
	Language   ds.Language   `json:"language"`
	Available  []ds.Language `json:"available"`
	FontClass  string        `json:"font_class"`
	FontFamily string        `json:"font_family"`
}

type FontClassResponse struct {
	Language   string `json:"language"`
	FontClass  string `json:"font_class"`
	FontFamily string `json:"font_family"`
}

func languageResponse(lang ds.Language) LanguageResponse {
	return LanguageResponse{
		Language:   lang,
		Available:  i18n.GetAvailableLanguages(),
		FontClass:  string(i18n.FontClassFor(lang.Code)),
		FontFamily: i18n.FontFamily(lang.Code),
	}
}

// GetLanguages godoc
// @Summary Get available languages
// @Description Get the static list of selectable interface languages
// @Tags Languages
// @Produce json
// @Success 200 {array} ds.Language
// @Router /languages [get]
func (h *LanguageHandler) GetLanguages(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, i18n.GetAvailableLanguages())
}

// GetFontClass godoc
// @Summary Detect font class
// @Description Detect the script of a text and the font class to render it with
// @Tags Languages
// @Produce json
// @Param text query string true "Text to inspect"
// @Success 200 {object} FontClassResponse
// @Router /font-class [get]
func (h *LanguageHandler) GetFontClass(ctx *gin.Context) {
	text := ctx.Query("text")
	code := i18n.DetectLanguage(text)

	ctx.JSON(http.StatusOK, FontClassResponse{
		Language:   code,
		FontClass:  string(i18n.DetectScript(text)),
		FontFamily: i18n.FontFamily(code),
	})
}

// GetLanguage godoc
// @Summary Get current language
// @Description Get the active interface language of the session
// @Tags Languages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} LanguageResponse
// @Failure 401 {object} map[string]string
// @Router /language [get]
func (h *LanguageHandler) GetLanguage(ctx *gin.Context) {
	store, exists := middleware.GetSession(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	resolver := h.app.Language(ctx.Request.Context(), store)
	ctx.JSON(http.StatusOK, languageResponse(resolver.GetCurrentLanguage()))
}

// UpdateLanguage godoc
// @Summary Change language
// @Description Switch the active language. With persist (default true) it is saved in the user profile.
// @Tags Languages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateLanguageRequest true "Language code"
// @Success 200 {object} LanguageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /language [put]
func (h *LanguageHandler) UpdateLanguage(ctx *gin.Context) {
	var req UpdateLanguageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	store, exists := middleware.GetSession(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	persist := req.Persist == nil || *req.Persist

	resolver := h.app.Language(ctx.Request.Context(), store)
	if err := resolver.SetLanguage(ctx.Request.Context(), req.Language, persist); err != nil {
		logrus.Error(err)
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if persist {
		h.app.RememberSession(ctx.Request.Context(), store)
	}

	ctx.JSON(http.StatusOK, languageResponse(resolver.GetCurrentLanguage()))
}

// GetTranslations godoc
// @Summary Get translations
// @Description Get the flat message catalog of a locale, loaded once per process
// @Tags Languages
// @Security BearerAuth
// @Produce json
// @Param locale path string true "Locale code"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /translations/{locale} [get]
func (h *LanguageHandler) GetTranslations(ctx *gin.Context) {
	locale := ctx.Param("locale")
	if !slices.Contains(i18n.CatalogLocales, locale) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Locale not found"})
		return
	}

	catalog := h.app.Catalog()
	if err := catalog.Load(ctx.Request.Context(), locale); err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	messages, _ := catalog.Messages(locale)
	ctx.JSON(http.StatusOK, messages)
}
