package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/repositories"
	"github.com/darulhuda/ppdb-portal/internal/app/services"
)

// pngPixel is a minimal 1x1 PNG, small enough to inline in fixtures
var pngPixel = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0A, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

func newSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repositories.NewRegistrationRepository(repositories.NewMemoryKV())
	require.NoError(t, repo.Load(context.Background()))
	registrations := services.NewRegistrationService(repo, zerolog.Nop())
	sessions := services.NewSessionService(registrations, models.IntakeOpen, 2<<20, time.Millisecond, zerolog.Nop())
	controller := NewSessionController(sessions, zerolog.Nop())

	router := gin.New()
	group := router.Group("/api/v1/sessions")
	group.POST("", controller.Start)
	group.GET("/:id", controller.Get)
	group.PATCH("/:id/fields", controller.UpdateFields)
	group.POST("/:id/documents/:slot", controller.UploadDocument)
	group.POST("/:id/submit", controller.Submit)
	group.DELETE("/:id", controller.Cancel)
	return router
}

func decodeSession(t *testing.T, body *bytes.Buffer) dto.SessionResponse {
	t.Helper()
	var envelope struct {
		Data dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	return envelope.Data
}

func startSession(t *testing.T, router *gin.Engine) dto.SessionResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{"institution":"MTs"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeSession(t, rec.Body)
}

func TestStartSessionEndpoint(t *testing.T) {
	router := newSessionRouter(t)

	session := startSession(t, router)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "form", session.View)
	assert.Equal(t, models.InstitutionMTs, session.Fields.Institution)
}

func TestStartSessionRejectsUnknownInstitution(t *testing.T) {
	router := newSessionRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{"institution":"SMK"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFieldUpdateEndpointDerivesAge(t *testing.T) {
	router := newSessionRouter(t)
	session := startSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/"+session.SessionID+"/fields",
		strings.NewReader(`{"fullName":"Ahmad Fauzi","tanggalLahir":"2011-04-12","umur":99}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeSession(t, rec.Body)
	assert.Equal(t, "Ahmad Fauzi", updated.Fields.FullName)
	assert.NotEqual(t, 99, updated.Fields.Age, "age is derived, not writable")
	assert.Greater(t, updated.Fields.Age, 0)
}

func TestDocumentUploadEndpoint(t *testing.T) {
	router := newSessionRouter(t)
	session := startSession(t, router)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "foto.png")
	require.NoError(t, err)
	_, err = part.Write(pngPixel)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.SessionID+"/documents/foto", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeSession(t, rec.Body)
	for _, slot := range updated.Slots {
		if slot.Slot == models.SlotPhoto {
			assert.Equal(t, models.SlotReady, slot.State)
		}
	}
	assert.True(t, strings.HasPrefix(updated.Fields.PhotoFile, "data:image/png;base64,"))
}

func TestDocumentUploadRejectsUnknownSlot(t *testing.T) {
	router := newSessionRouter(t)
	session := startSession(t, router)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "foto.png")
	require.NoError(t, err)
	_, err = part.Write(pngPixel)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.SessionID+"/documents/selfie", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitEndpointReportsMissingFields(t *testing.T) {
	router := newSessionRouter(t)
	session := startSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.SessionID+"/submit", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
}

func TestCancelEndpointDiscardsSession(t *testing.T) {
	router := newSessionRouter(t)
	session := startSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+session.SessionID, nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.SessionID, nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
