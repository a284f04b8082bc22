package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDCounters(t *testing.T) {
	m := New()

	m.IDAllocated("business", "scan")
	m.IDAllocated("business", "scan")
	m.IDAllocated("client", "counter")
	m.IDConflict("business")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.idAllocations.WithLabelValues("business", "scan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.idAllocations.WithLabelValues("client", "counter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.idConflicts.WithLabelValues("business")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.idFailures.WithLabelValues("business")))
}

func TestListQuery_UnknownRole(t *testing.T) {
	m := New()
	m.ListQuery("")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listQueries.WithLabelValues("unknown")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/ping/:id", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping/7", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/ping/:id", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "reboot_http_requests_total"))
}
