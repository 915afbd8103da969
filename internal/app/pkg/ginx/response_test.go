package ginx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kcstudio/storefront/internal/app/pkg/errorx"
)

func init() {
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
}

func render(t *testing.T, devDetails bool, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if devDetails {
		EnableDevDetails(c)
	}
	fn(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestFailMapsSentinels(t *testing.T) {
	w, resp := render(t, true, func(c *gin.Context) {
		Fail(c, fmt.Errorf("get order failed: %w", errorx.ErrOrderNotFound))
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order not found", resp.Meta.Message)
}

func TestFailHidesDevDetailsUnlessEnabled(t *testing.T) {
	cause := errors.New("Error 1054: Unknown column")

	w, resp := render(t, false, func(c *gin.Context) { Fail(c, cause) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", resp.Meta.Message)
	assert.Empty(t, resp.Meta.DevDetails)

	_, resp = render(t, true, func(c *gin.Context) { Fail(c, cause) })
	assert.Contains(t, resp.Meta.DevDetails, "Unknown column")
}

type bindTarget struct {
	Customer struct {
		Whatsapp string `json:"whatsapp" binding:"required"`
	} `json:"customer"`
	Quantity int `json:"quantity" binding:"min=1"`
}

func TestBadRequestWithValidation(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"customer":{},"quantity":0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := c.ShouldBindJSON(&target)
	require.Error(t, err)
	Fail(c, err)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", resp.Meta.Message)
	require.Len(t, resp.Meta.Details, 2)
	assert.Equal(t, "customer.whatsapp", resp.Meta.Details[0].Path)
	assert.Equal(t, "whatsapp is required", resp.Meta.Details[0].Info)
	assert.Equal(t, "quantity must be at least 1", resp.Meta.Details[1].Info)
}

func TestCreated(t *testing.T) {
	w, resp := render(t, false, func(c *gin.Context) { Created(c, gin.H{"orderId": 1}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 201, resp.Meta.Code)
}
