package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthInfra "github.com/pretest-uz/PreTest-DashboardService/internal/infra/health"
)

type stubMonitor struct {
	status healthInfra.Status
}

func (s stubMonitor) Status() healthInfra.Status {
	return s.status
}

func TestHandle(t *testing.T) {
	checkedAt := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      healthInfra.Status
		wantStatus  string
		wantChecked bool
	}{
		{"backend up", healthInfra.Status{BackendUp: true, CheckedAt: checkedAt}, "ok", true},
		{"backend down", healthInfra.Status{BackendUp: false, CheckedAt: checkedAt}, "degraded", true},
		{"not checked yet", healthInfra.Status{}, "degraded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(stubMonitor{status: tt.status})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.status.BackendUp, body.BackendUp)
			assert.Equal(t, tt.wantChecked, body.CheckedAt != nil)
		})
	}
}
