package basehdl

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

func created(t *testing.T, data interface{}, err error) (int, string, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Post("/", func(c fiber.Ctx) error {
		HandleCreated(c, data, err)
		return nil
	})
	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, resp.Header.Get(fiber.HeaderRetryAfter), body
}

func TestHandleCreated(t *testing.T) {
	status, retry, body := created(t, fiber.Map{"businessId": "businessId0001"}, nil)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Empty(t, retry)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, map[string]interface{}{"businessId": "businessId0001"}, body["data"])
}

func TestHandleCreatedExhaustedAsksForRetry(t *testing.T) {
	status, retry, body := created(t, nil, sequence.ErrExhausted)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "1", retry)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, common.ErrCodeSequence.Code, body["code"])
}

func TestHandleCreatedOtherErrors(t *testing.T) {
	status, retry, _ := created(t, nil, common.NewDuplicateError("mobileNumber"))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Empty(t, retry)

	status, _, body := created(t, nil, errors.New("boom"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}
