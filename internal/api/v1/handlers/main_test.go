package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"team-collab/internal/middleware"
	"team-collab/internal/models"
	"team-collab/pkg/apierrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

var alice = models.Identity{UserID: 1, Name: "Alice", Email: "alice@x.com", Role: models.RoleUser}

// stubVerifier accepts "alice" and rejects every other token.
type stubVerifier struct{}

func (stubVerifier) Verify(token string) (models.Identity, error) {
	if token == "alice" {
		return alice, nil
	}
	return models.Identity{}, fiber.ErrUnauthorized
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: apierrors.NewErrorHandler(true, middleware.GetLang),
	})
}

func authed() fiber.Handler {
	return middleware.UseToken(stubVerifier{})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer alice")

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	return resp.StatusCode, decoded
}
