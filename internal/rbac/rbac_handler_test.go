package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) LoadPolicy() error { return nil }

func (m *mockService) Enforce(req EnforceRequest) (bool, error) {
	if req.Resource == "employee" && req.Action == "read" {
		return true, nil
	}
	return false, nil
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{}, &mockRepo{})

	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	body := EnforceRequest{
		UserID:   "user-1",
		Resource: "employee",
		Action:   "read",
	}

	jsonBody, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Ok   bool            `json:"ok"`
		Data EnforceResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_Enforce_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{}, &mockRepo{})

	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	jsonBody, _ := json.Marshal(EnforceRequest{UserID: "user-1"})

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
