package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := newContext()
	Success(c, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["data"].(map[string]interface{})["id"])
}

func TestCreated(t *testing.T) {
	c, w := newContext()
	Created(c, gin.H{"id": "abc"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"业务错误", apperrors.New(apperrors.ErrCodeNotPurchased, "未购买"), http.StatusForbidden, apperrors.ErrCodeNotPurchased},
		{"不存在", apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在"), http.StatusNotFound, apperrors.ErrCodeOrderNotFound},
		{"普通错误", errors.New("boom"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.NotContains(t, body.Error, "boom", "内部错误不能泄露给客户端")
		})
	}
}

func TestBindErrorCarriesDetails(t *testing.T) {
	c, w := newContext()
	BindError(c, errors.New("Key: 'Name' Error:Field validation for 'Name' failed on the 'required' tag"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "required")
}

func TestNewPageData(t *testing.T) {
	page := NewPageData([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, page.TotalPages)

	empty := NewPageData(nil, 0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}
