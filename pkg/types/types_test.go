package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SecretKey(t *testing.T) {
	t.Run("rejects wrong lengths", func(t *testing.T) {
		for _, n := range []int{0, 32, 63, 65} {
			_, err := NewSecretKey(make([]byte, n))
			assert.Error(t, err, "length %d", n)
		}
	})

	t.Run("splits seed and public key", func(t *testing.T) {
		raw := make([]byte, SecretKeyLength)
		for i := range raw {
			raw[i] = byte(i)
		}
		k, err := NewSecretKey(raw)
		require.NoError(t, err)
		assert.Equal(t, raw[:32], k.Seed())
		pub := k.EmbeddedPublicKey()
		assert.Equal(t, raw[32:], pub[:])

		k.Zero()
		assert.Equal(t, SecretKey{}, k)
	})
}

func Test_Signature(t *testing.T) {
	_, err := NewSignature(make([]byte, 63))
	assert.Error(t, err)

	raw := make([]byte, SignatureLength)
	raw[0] = 1
	a, err := NewSignature(raw)
	require.NoError(t, err)
	b, err := NewSignature(raw)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	b[63] ^= 0x01
	assert.False(t, a.Equal(b))
}

func Test_ApiResponse(t *testing.T) {
	t.Run("success populates data only", func(t *testing.T) {
		out, err := json.Marshal(NewSuccessResponse(HealthResponse{Status: "ok"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, string(out))
	})

	t.Run("error populates error only", func(t *testing.T) {
		out, err := json.Marshal(NewErrorResponse("Invalid input: Invalid mint address"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":"Invalid input: Invalid mint address"}`, string(out))
	})
}

func Test_RequestValidation(t *testing.T) {
	t.Run("reports every missing field", func(t *testing.T) {
		var req SendTokenRequest
		require.NoError(t, json.Unmarshal([]byte(`{"mint":"abc"}`), &req))
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount: Required value")
		assert.Contains(t, err.Error(), "destination: Required value")
		assert.Contains(t, err.Error(), "owner: Required value")
		assert.NotContains(t, err.Error(), "mint:")
	})

	t.Run("zero values count as present", func(t *testing.T) {
		var req SendSolRequest
		require.NoError(t, json.Unmarshal([]byte(`{"from":"","to":"","lamports":0}`), &req))
		assert.NoError(t, req.Validate())
	})

	t.Run("create token uses camelCase authority", func(t *testing.T) {
		var req CreateTokenRequest
		require.NoError(t, json.Unmarshal([]byte(`{"mintAuthority":"a","mint":"b","decimals":9}`), &req))
		require.NoError(t, req.Validate())
		assert.Equal(t, uint8(9), *req.Decimals)
	})
}
