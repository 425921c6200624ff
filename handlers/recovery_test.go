package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dispatchkit/stratum/router"
)

func TestRecovery(t *testing.T) {
	t.Run("converts panic to 500", func(t *testing.T) {
		r := router.New()
		r.Use(Recovery(RecoveryConfig{}))
		r.Get("/panic", func(_ *router.Context, _ router.Next) error {
			panic("kaput")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("invokes log callback with recovered value", func(t *testing.T) {
		var recovered any
		r := router.New()
		r.Use(Recovery(RecoveryConfig{
			LogFunc: func(_ *router.Context, v any) {
				recovered = v
			},
		}))
		r.Get("/panic", func(_ *router.Context, _ router.Next) error {
			panic("kaput")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, "kaput", recovered)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		r := router.New()
		r.Use(Recovery(RecoveryConfig{}))
		r.Get("/ok", func(c *router.Context, _ router.Next) error {
			c.Response.WriteHeader(http.StatusNoContent)
			return nil
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
