package supervisor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"backend-launcher/core/backend"

	"github.com/stretchr/testify/assert"
)

func probeConfig(url string) backend.ProbeConfig {
	return backend.ProbeConfig{
		Enabled:        true,
		URL:            url,
		TimeoutSeconds: 1,
		IntervalMillis: 50,
	}
}

func TestProbe_Wait(t *testing.T) {
	t.Run("Ready Immediately", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		p := NewProbe(probeConfig(srv.URL))
		assert.True(t, p.Wait(context.Background()))
	})

	t.Run("Ready After Warmup", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		p := NewProbe(probeConfig(srv.URL))
		assert.True(t, p.Wait(context.Background()))
		assert.GreaterOrEqual(t, hits.Load(), int32(3))
	})

	t.Run("Never Ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		start := time.Now()
		p := NewProbe(probeConfig(srv.URL))
		assert.False(t, p.Wait(context.Background()))
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("Canceled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewProbe(probeConfig(srv.URL))
		assert.False(t, p.Wait(ctx))
	})
}
