package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/extract"
)

func newQuestionsRouter(t *testing.T, gen *Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(gen).RegisterRoutes(r.Group("/api/questions"))
	return r
}

func postResume(t *testing.T, r *gin.Engine, fileName, mimeType, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="resume"; filename="`+fileName+`"`)
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/questions/extract", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuestionsFromResume(t *testing.T) {
	gen := &Generator{
		Extract: func(_ context.Context, data []byte, _ string) (string, error) {
			return string(data), nil
		},
	}
	r := newQuestionsRouter(t, gen)

	w := postResume(t, r, "cv.pdf", extract.MimePDF, "Solid JavaScript and Python experience.")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Skills    []string            `json:"skills"`
		Questions map[string][]string `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Skills) != 2 {
		t.Errorf("skills = %v, want JavaScript and Python", resp.Skills)
	}
	if len(resp.Questions["JavaScript"]) != 3 || len(resp.Questions["Python"]) != 3 {
		t.Errorf("questions = %v", resp.Questions)
	}
}

func TestQuestionsRejectsMissingFile(t *testing.T) {
	r := newQuestionsRouter(t, NewGenerator(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/questions/extract", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQuestionsRejectsUnsupportedType(t *testing.T) {
	r := newQuestionsRouter(t, NewGenerator(nil))

	w := postResume(t, r, "cv.txt", "text/plain", "some text")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
