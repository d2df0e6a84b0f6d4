package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quilldocs/quill/internal/document"
	"github.com/quilldocs/quill/internal/document/service"
	"github.com/quilldocs/quill/internal/sessions"
	"github.com/quilldocs/quill/pkg/logger"
	"github.com/quilldocs/quill/pkg/metrics"
)

// DocumentHandler serves the document pages: listing, viewing, and the
// guarded create/edit/copy/delete flows.
type DocumentHandler struct {
	docs        service.Service
	sessionsSvc *sessions.Service
}

func NewDocumentHandler(d service.Service, s *sessions.Service) *DocumentHandler {
	return &DocumentHandler{docs: d, sessionsSvc: s}
}

// Register wires the document routes. requireSignedIn guards every
// mutating route plus the new-document view.
func (h *DocumentHandler) Register(r *gin.Engine, requireSignedIn gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/new", requireSignedIn, h.NewForm)
	r.POST("/new", requireSignedIn, h.Create)
	r.GET("/:filename", h.Show)
	r.GET("/:filename/edit", requireSignedIn, h.EditForm)
	r.POST("/:filename", requireSignedIn, h.Save)
	r.POST("/:filename/delete", requireSignedIn, h.Delete)
	r.GET("/:filename/copy", requireSignedIn, h.CopyForm)
}

// Index lists all stored documents.
func (h *DocumentHandler) Index(c *gin.Context) {
	files, err := h.docs.List()
	if err != nil {
		logger.Errorf("list documents: %v", err)
		c.String(http.StatusInternalServerError, "could not list documents")
		return
	}
	render(c, h.sessionsSvc, http.StatusOK, "index", gin.H{"Files": files})
}

// Show serves a single document: plain text verbatim, Markdown rendered
// inside the layout. A missing document flashes and redirects home.
func (h *DocumentHandler) Show(c *gin.Context) {
	name := c.Param("filename")
	v, err := h.docs.View(name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashAndRedirect(c, h.sessionsSvc, sessions.FlashError,
				fmt.Sprintf("%s does not exist", name), "/")
			return
		}
		logger.Errorf("view %s: %v", name, err)
		c.String(http.StatusInternalServerError, "could not load document")
		return
	}
	if v.Kind == document.KindMarkdown {
		render(c, h.sessionsSvc, http.StatusOK, "view", gin.H{
			"Filename": v.Name,
			"HTML":     template.HTML(v.HTML),
		})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", v.Content)
}

// NewForm renders the blank new-document form.
func (h *DocumentHandler) NewForm(c *gin.Context) {
	render(c, h.sessionsSvc, http.StatusOK, "new", gin.H{"Filename": "", "Content": ""})
}

// Create validates the submitted name and writes the document.
func (h *DocumentHandler) Create(c *gin.Context) {
	filename := c.PostForm("filename")
	content := c.PostForm("content")

	if err := h.docs.ValidateName(filename); err != nil {
		flash(c, h.sessionsSvc, sessions.FlashError, err.Error())
		render(c, h.sessionsSvc, http.StatusUnprocessableEntity, "new", gin.H{
			"Filename": filename,
			"Content":  content,
		})
		return
	}
	if err := h.docs.Create(filename, content); err != nil {
		logger.Errorf("create %s: %v", filename, err)
		c.String(http.StatusInternalServerError, "could not create document")
		return
	}
	metrics.DocumentWrites.WithLabelValues("create").Inc()
	flashAndRedirect(c, h.sessionsSvc, sessions.FlashSuccess,
		fmt.Sprintf("%s was created.", filename), "/")
}

// EditForm renders the edit form prefilled with the document's content.
func (h *DocumentHandler) EditForm(c *gin.Context) {
	name := c.Param("filename")
	content, err := h.docs.Raw(name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashAndRedirect(c, h.sessionsSvc, sessions.FlashError,
				fmt.Sprintf("%s does not exist", name), "/")
			return
		}
		logger.Errorf("edit %s: %v", name, err)
		c.String(http.StatusInternalServerError, "could not load document")
		return
	}
	render(c, h.sessionsSvc, http.StatusOK, "edit", gin.H{
		"Filename": document.CanonicalName(name),
		"Content":  string(content),
	})
}

// Save overwrites the document with the submitted content.
func (h *DocumentHandler) Save(c *gin.Context) {
	name := c.Param("filename")
	if err := h.docs.Update(name, c.PostForm("content")); err != nil {
		logger.Errorf("update %s: %v", name, err)
		c.String(http.StatusInternalServerError, "could not save document")
		return
	}
	metrics.DocumentWrites.WithLabelValues("update").Inc()
	flashAndRedirect(c, h.sessionsSvc, sessions.FlashSuccess,
		fmt.Sprintf("%s has been updated.", name), "/")
}

// Delete removes the document. A file already gone still reads as deleted
// to the user.
func (h *DocumentHandler) Delete(c *gin.Context) {
	name := c.Param("filename")
	err := h.docs.Delete(name)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		logger.Errorf("delete %s: %v", name, err)
		c.String(http.StatusInternalServerError, "could not delete document")
		return
	}
	if err == nil {
		metrics.DocumentDeletes.Inc()
	}
	flashAndRedirect(c, h.sessionsSvc, sessions.FlashSuccess,
		fmt.Sprintf("%s has been deleted.", name), "/")
}

// CopyForm prefills the new-document form with an existing document's
// content so the user can save it under a new name.
func (h *DocumentHandler) CopyForm(c *gin.Context) {
	name := c.Param("filename")
	content, err := h.docs.Raw(name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashAndRedirect(c, h.sessionsSvc, sessions.FlashError,
				fmt.Sprintf("%s does not exist", name), "/")
			return
		}
		logger.Errorf("copy %s: %v", name, err)
		c.String(http.StatusInternalServerError, "could not load document")
		return
	}
	render(c, h.sessionsSvc, http.StatusOK, "new", gin.H{
		"Filename": document.CanonicalName(name),
		"Content":  string(content),
	})
}
