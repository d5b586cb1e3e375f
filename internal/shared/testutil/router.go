package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestRouter returns a bare engine in test mode with the custom binding tags registered.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = validator.RegisterAll()
	return gin.New()
}

// TestRequest describes one call. Body is JSON-encoded unless it is already []byte.
type TestRequest struct {
	Method  string
	URL     string
	Body    any
	Headers map[string]string
}

func (r TestRequest) reader(t *testing.T) io.Reader {
	t.Helper()

	switch body := r.Body.(type) {
	case nil:
		return nil
	case []byte:
		return bytes.NewReader(body)
	default:
		encoded, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		return bytes.NewReader(encoded)
	}
}

// ExecuteRequest runs req through router and returns the recorded response.
func ExecuteRequest(t *testing.T, router *gin.Engine, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()

	httpReq := httptest.NewRequest(req.Method, req.URL, req.reader(t))
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)
	return recorder
}

// ParseResponse decodes the recorded JSON body into v.
func ParseResponse(t *testing.T, recorder *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), v), "decode response body: %s", recorder.Body.String())
}
