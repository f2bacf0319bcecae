package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Metrics(t *testing.T) {
	t.Run("instances do not share state", func(t *testing.T) {
		a := NewMetrics()
		b := NewMetrics()
		a.RecordMessageSigned()
		assert.Equal(t, float64(1), testutil.ToFloat64(a.messagesSigned))
		assert.Equal(t, float64(0), testutil.ToFloat64(b.messagesSigned))
	})

	t.Run("labels outcomes", func(t *testing.T) {
		m := NewMetrics()
		m.RecordMessageVerified(true)
		m.RecordMessageVerified(false)
		m.RecordMessageVerified(false)
		m.RecordInstructionBuilt("transfer_native")
		m.RecordFailure("sign_message", "Validation")

		assert.Equal(t, float64(1), testutil.ToFloat64(m.messagesVerified.WithLabelValues("true")))
		assert.Equal(t, float64(2), testutil.ToFloat64(m.messagesVerified.WithLabelValues("false")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.instructionsBuilt.WithLabelValues("transfer_native")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.operationFailures.WithLabelValues("sign_message", "Validation")))
	})

	t.Run("tracks in-flight requests", func(t *testing.T) {
		m := NewMetrics()
		m.IncrementInFlight()
		m.IncrementInFlight()
		m.DecrementInFlight()
		assert.Equal(t, float64(1), testutil.ToFloat64(m.httpInFlight))
	})

	t.Run("handler exposes recorded series", func(t *testing.T) {
		m := NewMetrics()
		m.RecordHTTPRequest(http.MethodPost, "/send/sol", http.StatusOK, 3*time.Millisecond)
		m.RecordKeypairGenerated()

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `solana_signer_http_requests_total{method="POST",path="/send/sol",status="200"} 1`)
		assert.Contains(t, string(body), "solana_signer_keys_generated_total 1")
	})
}
