package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery_PassesThrough(t *testing.T) {
	t.Parallel()

	var sink logSink
	h := Recovery(sink.logger())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec, _ := hit(t, h, http.MethodGet, "/api/v1/sources", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, sink.Len())
}

func TestRecovery_PanicValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		method  string
		target  string
		wantLog []string
	}{
		{
			name:    "string",
			value:   "nil scorer",
			method:  http.MethodGet,
			target:  "/api/v1/deals/hot",
			wantLog: []string{`panic="nil scorer"`, "path=/api/v1/deals/hot", "stack="},
		},
		{
			name:    "non-string",
			value:   42,
			method:  http.MethodPost,
			target:  "/api/v1/deals/search",
			wantLog: []string{"panic=42", "method=POST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sink logSink
			h := Recovery(sink.logger())(func(echo.Context) error { panic(tt.value) })

			rec, _ := hit(t, h, tt.method, tt.target, nil)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

			assert.Contains(t, sink.String(), `msg="handler panicked"`)
			for _, want := range tt.wantLog {
				assert.Contains(t, sink.String(), want)
			}
		})
	}
}

func TestRecovery_ReportsRequestID(t *testing.T) {
	t.Parallel()

	var sink logSink
	log := sink.logger()
	h := RequestLog(log)(Recovery(log)(func(echo.Context) error { panic("boom") }))

	rec, _ := hit(t, h, http.MethodGet, "/api/v1/deals", http.Header{requestIDHeader: {"req-42"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","request_id":"req-42"}`, rec.Body.String())
	assert.Contains(t, sink.String(), "request_id=req-42")
	assert.Contains(t, sink.String(), "status=500")
	assert.Contains(t, sink.String(), "level=ERROR")
}

func TestRecovery_CommittedResponseLeftAlone(t *testing.T) {
	t.Parallel()

	var sink logSink
	h := Recovery(sink.logger())(func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusOK)
		_, _ = c.Response().Write([]byte(`{"deals":[`))
		panic("encoder blew up")
	})

	rec, _ := hit(t, h, http.MethodGet, "/api/v1/deals", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"deals":[`, rec.Body.String())
	assert.Contains(t, sink.String(), "encoder blew up")
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	t.Parallel()

	var sink logSink
	h := Recovery(sink.logger())(func(echo.Context) error { panic(http.ErrAbortHandler) })

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		hit(t, h, http.MethodGet, "/api/v1/deals", nil)
	})
	require.Zero(t, sink.Len())
}
