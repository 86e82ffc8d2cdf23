package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
)

var staticPages = map[string]bool{"faq": true, "privacy": true, "terms": true, "contact": true}

type PageController struct{}

// @Summary Static content page
// @Tags Pages
// @Produce json
// @Param slug path string true "Page" Enums(faq, privacy, terms, contact)
// @Success 200 {object} models.Response{data=models.PageContent}
// @Failure 404 {object} models.ErrorResponse
// @Router /pages/{slug} [get]
func (ctrl *PageController) GetPage(c *gin.Context) {
	slug := strings.ToLower(c.Param("slug"))
	if !staticPages[slug] {
		respondError(c, &models.APIError{Status: http.StatusNotFound})
		return
	}
	ws := middleware.GetWorkspace(c)
	page := models.PageContent{
		Slug:  slug,
		Title: ws.Message("pages."+slug+".title", strings.ToUpper(slug[:1])+slug[1:]),
		Body:  ws.Message("pages."+slug+".body", ""),
	}
	respond(c, http.StatusOK, page.Title, page)
}

// @Summary Switch language
// @Tags Pages
// @Accept json
// @Produce json
// @Param request body models.LocaleRequest true "Language code"
// @Success 200 {object} models.Response
// @Router /locale [post]
func (ctrl *PageController) SetLocale(c *gin.Context) {
	var req models.LocaleRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	lang := strings.ToLower(strings.TrimSpace(req.Language))
	tr := ws.Translator()
	if len(tr.Languages()) > 0 && !tr.Has(lang) {
		respondError(c, fmt.Errorf("%w: unsupported language %q", models.ErrValidation, lang))
		return
	}
	if err := ws.SetLanguage(c.Request.Context(), lang); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, ws.Message("locale.changed", "Language changed"), gin.H{
		"language":  lang,
		"available": tr.Languages(),
	})
}
