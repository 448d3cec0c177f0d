package forecast_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/tj/assert"

	"github.com/katiamach/wind-viability-report/internal/forecast"
	"github.com/katiamach/wind-viability-report/internal/model"
)

const forecastPath = "/api/point-forecast/v2"

func newForecastServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc(forecastPath, func(w http.ResponseWriter, req *http.Request) {
		var payload map[string]interface{}
		err := json.NewDecoder(req.Body).Decode(&payload)
		assert.NoError(t, err)
		assert.Equal(t, "gfs", payload["model"])
		assert.Equal(t, "secret", payload["key"])
		assert.Equal(t, []interface{}{"wind"}, payload["parameters"])
		assert.Equal(t, []interface{}{"surface"}, payload["levels"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}).Methods(http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func TestHTTPClientForecast(t *testing.T) {
	acquired := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	point := model.GridPoint{Latitude: 53.3, Longitude: -6.2}

	cases := []struct {
		name         string
		status       int
		body         string
		expectedKind forecast.Kind
	}{
		{
			name:         "ok",
			status:       http.StatusOK,
			body:         `{"ts":[1,2,3],"units":{"wind_u-surface":"m*s-1"},"wind_u-surface":[3,null,1],"wind_v-surface":[4,2,0]}`,
			expectedKind: forecast.Success,
		},
		{
			name:         "rate limited",
			status:       http.StatusTooManyRequests,
			body:         `{"message":"slow down"}`,
			expectedKind: forecast.Transient,
		},
		{
			name:         "bad request",
			status:       http.StatusBadRequest,
			body:         `{"message":"invalid key"}`,
			expectedKind: forecast.Terminal,
		},
		{
			name:         "malformed body",
			status:       http.StatusOK,
			body:         `{"ts":`,
			expectedKind: forecast.Transient,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newForecastServer(t, tc.status, tc.body)
			c := forecast.NewHTTPClient(srv.URL+forecastPath, "secret",
				forecast.WithClock(func() time.Time { return acquired }),
			)

			out := c.Forecast(context.Background(), point)
			assert.Equal(t, tc.expectedKind, out.Kind)
			assert.Equal(t, tc.status, out.Status)

			if tc.expectedKind != forecast.Success {
				assert.Nil(t, out.Record)
				assert.Error(t, out.Err)
				return
			}

			assert.NoError(t, out.Err)
			assert.Equal(t, []int64{1, 2, 3}, out.Record.Timestamps)
			assert.Equal(t, 3.0, out.Record.WindU[0])
			assert.True(t, math.IsNaN(out.Record.WindU[1]))
			assert.Equal(t, []float64{4, 2, 0}, out.Record.WindV)
			assert.Equal(t, acquired, out.Record.AcquiredAt)
		})
	}
}

func TestHTTPClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := forecast.NewHTTPClient(url, "secret", forecast.WithTimeout(time.Second))
	out := c.Forecast(context.Background(), model.GridPoint{})

	assert.Equal(t, forecast.Transient, out.Kind)
	assert.Error(t, out.Err)
}
