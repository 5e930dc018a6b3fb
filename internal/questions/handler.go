package questions

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/extract"
	"smarthire-backend/internal/resumes"
	"smarthire-backend/internal/shared/server/respond"
)

// Handler serves the interview-question routes.
type Handler struct {
	Gen *Generator
}

// NewHandler constructs a Handler.
func NewHandler(gen *Generator) *Handler {
	return &Handler{Gen: gen}
}

// RegisterRoutes attaches the question routes to an unauthenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.fromResume)
}

func (h *Handler) fromResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, resumes.MaxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no_file", "No file uploaded", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !extract.Supported(mimeType) {
		respond.Error(c, http.StatusBadRequest, "unsupported_type", "Only PDF and DOCX files are supported", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_file", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_file", "could not read uploaded file", nil)
		return
	}

	skills, qs, err := h.Gen.FromResume(c.Request.Context(), data, mimeType)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not extract text from file", nil)
		return
	}

	respond.OK(c, gin.H{
		"skills":    skills,
		"questions": qs,
	})
}
