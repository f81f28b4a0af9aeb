package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"churchapi/internal/dto"
	"churchapi/internal/service"
)

func newTestRouters(t *testing.T) *Routers {
	t.Helper()
	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://127.0.0.1:27017").
			SetServerSelectionTimeout(50*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	log := zerolog.Nop()
	return &Routers{Service: service.New(client.Database("churchapi_test"), &log, nil, "GRHCG")}
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthRoute(t *testing.T) {
	app := NewRouters(newTestRouters(t))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))

	assert.Equal(t, 200, w.Code)
	resp := envelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Message)
}

func TestWelcomeRoute(t *testing.T) {
	app := NewRouters(newTestRouters(t))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, 200, w.Code)
	assert.True(t, envelope(t, w).Success)
}

func TestUnknownRouteAnswersEnvelope(t *testing.T) {
	app := NewRouters(newTestRouters(t))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest("GET", "/api/nope", nil))

	assert.Equal(t, 404, w.Code)
	resp := envelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Route not found", resp.Message)
}

func TestMalformedIDAnswers404(t *testing.T) {
	app := NewRouters(newTestRouters(t))

	for path, entity := range map[string]string{
		"/api/contacts/bad-id":    "Contact",
		"/api/sermons/bad-id":     "Sermon",
		"/api/events/bad-id":      "Event",
		"/api/members/bad-id":     "Member",
		"/api/donations/bad-id":   "Donation",
		"/api/testimonies/bad-id": "Testimony",
	} {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		assert.Equal(t, 404, w.Code, path)
		assert.Equal(t, entity+" not found", envelope(t, w).Message, path)
	}
}

func TestSubscribeValidation(t *testing.T) {
	app := NewRouters(newTestRouters(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/newsletter/subscribe", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Please provide a valid email", envelope(t, w).Message)
}

func TestContactFormValidation(t *testing.T) {
	app := NewRouters(newTestRouters(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contacts", strings.NewReader(`{"name":"Jane"}`))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Please provide all required fields", envelope(t, w).Message)
}
