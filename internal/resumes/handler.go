package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/shared/server/middleware"
	"smarthire-backend/internal/shared/server/respond"
)

// MaxUploadBytes caps the size of an uploaded resume.
const MaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the resume routes. The group must carry the auth
// middleware; uploadLimiter is applied to the upload route only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, uploadLimiter ...gin.HandlerFunc) {
	upload := append([]gin.HandlerFunc{}, uploadLimiter...)
	upload = append(upload, h.upload)
	rg.POST("/upload", upload...)
	rg.GET("/recommendations", h.recommendations)
	rg.GET("/analysis", h.analysis)
	rg.GET("/all", h.list)
	rg.GET("/download/:id", h.download)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "File exceeds the 10 MB upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "no_file", "No file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_file", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	userID := middleware.UserIDFromContext(c)
	mimeType := fileHeader.Header.Get("Content-Type")

	resume, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, mimeType, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Only PDF and DOCX files are supported", nil)
		case errors.Is(err, ErrNoFile):
			respond.Error(c, http.StatusBadRequest, "no_file", "No file uploaded", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
		}
		return
	}

	c.Set(middleware.ResumeIDLogKey, resume.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"resume":             resume,
		"jobRecommendations": resume.JobRecommendations,
		"analysis":           resume.Analysis,
	})
}

func (h *Handler) recommendations(c *gin.Context) {
	recs, err := h.Svc.LatestRecommendations(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.renderError(c, err, "failed to load recommendations")
		return
	}
	respond.OK(c, gin.H{"jobRecommendations": recs})
}

func (h *Handler) analysis(c *gin.Context) {
	analysis, err := h.Svc.LatestAnalysis(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.renderError(c, err, "failed to load analysis")
		return
	}
	respond.OK(c, gin.H{"analysis": analysis})
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.renderError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, all)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err, "failed to delete resume")
		return
	}
	respond.OK(c, gin.H{"message": "Resume deleted"})
}

func (h *Handler) download(c *gin.Context) {
	resume, rc, err := h.Svc.Download(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrFileGone) {
			respond.Error(c, http.StatusNotFound, "not_found", "file no longer available", nil)
			return
		}
		h.renderError(c, err, "failed to download resume")
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+resume.OriginalFileName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	// Headers are already sent, so a copy failure cannot be rendered.
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) renderError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallbackMsg, nil)
}
