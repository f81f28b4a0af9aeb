package dto

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchapi/pkg/validator"
)

func record(send func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	send(c)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, "Updated", map[string]string{"title": "x"})
	})

	assert.Equal(t, 200, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Updated", resp["message"])
	assert.NotNil(t, resp["data"])
	_, hasCount := resp["count"]
	assert.False(t, hasCount)
}

func TestCreatedEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Created(c, "Recorded", nil)
	})
	assert.Equal(t, 201, w.Code)
}

func TestListEnvelopeKeepsZeroCount(t *testing.T) {
	w := record(func(c *gin.Context) {
		List(c, 0, []string{})
	})

	assert.Equal(t, 200, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["count"])
	assert.NotNil(t, resp["data"])
}

func TestNotFoundEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		NotFound(c, "Sermon")
	})

	assert.Equal(t, 404, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Sermon not found", resp.Message)
}

func TestInternalEnvelopeCarriesError(t *testing.T) {
	w := record(func(c *gin.Context) {
		Internal(c, "Failed to retrieve sermons", assert.AnError)
	})

	assert.Equal(t, 500, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to retrieve sermons", resp.Message)
	assert.NotEmpty(t, resp.Error)
}

func TestEmailTaskValidation(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, validator.Validate(ctx, EmailTask{
		Kind:       EmailTaskReceipt,
		DonationID: "507f1f77bcf86cd799439011",
	}))
	require.NoError(t, validator.Validate(ctx, EmailTask{
		Kind:  EmailTaskWelcome,
		Email: "jane@example.com",
	}))

	assert.Error(t, validator.Validate(ctx, EmailTask{}))
	assert.Error(t, validator.Validate(ctx, EmailTask{Kind: EmailTaskReceipt, DonationID: "not-a-hex-id"}))
	assert.Error(t, validator.Validate(ctx, EmailTask{Kind: EmailTaskWelcome, Email: "nope"}))
}

func TestRouteNotFoundEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		RouteNotFound(c)
	})

	assert.Equal(t, 404, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Route not found", resp.Message)
}
