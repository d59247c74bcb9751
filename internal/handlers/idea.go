package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"ideaboard/internal/models"
	"ideaboard/internal/services"
	"ideaboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	ideas   services.IdeaService
	listing services.ListingService
}

func NewIdeaHandler(ideas services.IdeaService, listing services.ListingService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas, listing: listing}
}

type ideaRequest struct {
	Title string `json:"title" form:"title"`
	Body  string `json:"body" form:"body"`
}

// ideaPayload decorates an idea with its body rendered to sanitized HTML,
// so callers get display-ready content alongside the raw source.
type ideaPayload struct {
	models.Idea
	BodyHTML template.HTML `json:"body_html"`
}

func ideaPayloads(ideas []models.Idea) []ideaPayload {
	payloads := make([]ideaPayload, len(ideas))
	for i, idea := range ideas {
		payloads[i] = ideaPayload{Idea: idea, BodyHTML: utils.RenderMarkdown(idea.Body)}
	}
	return payloads
}

func ideaID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "idea does not exist"})
		return 0, false
	}
	return uint(id), true
}

func (h *IdeaHandler) ListAll(c *gin.Context) {
	ideas, err := h.listing.ListAll()
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"ideas": ideaPayloads(ideas)})
}

func (h *IdeaHandler) ListPopular(c *gin.Context) {
	ideas, err := h.listing.ListByPopularity()
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"ideas": ideaPayloads(ideas)})
}

func (h *IdeaHandler) ListMine(c *gin.Context) {
	ideas, err := h.listing.ListByOwner(CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"ideas": ideaPayloads(ideas)})
}

func (h *IdeaHandler) Create(c *gin.Context) {
	var req ideaRequest
	_ = c.ShouldBind(&req)

	idea, err := h.ideas.Create(CurrentUser(c), req.Title, req.Body)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"idea": ideaPayload{Idea: *idea, BodyHTML: utils.RenderMarkdown(idea.Body)}})
}

func (h *IdeaHandler) Update(c *gin.Context) {
	id, ok := ideaID(c)
	if !ok {
		return
	}
	var req ideaRequest
	_ = c.ShouldBind(&req)

	idea, err := h.ideas.Edit(CurrentUser(c), id, req.Title, req.Body)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"idea": ideaPayload{Idea: *idea, BodyHTML: utils.RenderMarkdown(idea.Body)}})
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	id, ok := ideaID(c)
	if !ok {
		return
	}
	if err := h.ideas.Delete(CurrentUser(c), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
