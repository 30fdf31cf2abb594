package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"catalog-service/internal/models"
)

func newTestRouter() (*gin.Engine, *ImportHandler) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := NewImportHandler(nil, nil, logger)
	router := gin.New()
	router.GET("/import/template", handler.GetImportTemplate)
	router.POST("/import", handler.ImportCatalog)
	return router, handler
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)

	for k, v := range fields {
		writer.WriteField(k, v)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestGetImportTemplateJSON(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import/template", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                  `json:"success"`
		Template models.ImportTemplate `json:"template"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Template.Columns)
	assert.Equal(t, "Product code", resp.Template.Columns[0].Name)
}

func TestGetImportTemplateCSV(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import/template?format=csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	header := strings.SplitN(w.Body.String(), "\n", 2)[0]
	assert.Contains(t, header, "Product code")
	assert.Contains(t, header, "ISKU")
}

func TestImportCatalogRequiresFile(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func TestImportCatalogRejectsInvalidLanguage(t *testing.T) {
	router, _ := newTestRouter()

	body, contentType := multipartUpload(t, "catalog.csv", "Product code,ISKU\n", map[string]string{
		"language": "english",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_LANGUAGE", resp.Error.Code)
}

func TestImportCatalogRejectsUnknownExtension(t *testing.T) {
	router, _ := newTestRouter()

	body, contentType := multipartUpload(t, "catalog.pdf", "not a spreadsheet", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_FORMAT", resp.Error.Code)
}

func TestParseCSVRaggedRows(t *testing.T) {
	_, handler := newTestRouter()

	rows, err := handler.parseCSV(strings.NewReader("a,b,c\n1,2\n4,5,6,7\n"))
	assert.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"1", "2"},
		{"4", "5", "6", "7"},
	}, rows)
}
