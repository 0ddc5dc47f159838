package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kerjalog/attendance-backend-go/internal/domain/attendance"
)

func TestDeriveStatus(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name      string
		workHours float64
		want      attendance.Status
	}{
		{"full day", 8, attendance.StatusPresent},
		{"overtime", 10.25, attendance.StatusPresent},
		{"just under full", 7.99, attendance.StatusHalfDay},
		{"half day threshold", 4, attendance.StatusHalfDay},
		{"short day", 3.99, attendance.StatusEarlyLeave},
		{"barely worked", 0.01, attendance.StatusEarlyLeave},
		{"no hours", 0, attendance.StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.DeriveStatus(tt.workHours))
		})
	}
}

func TestDeriveStatus_CustomThresholds(t *testing.T) {
	policy := Policy{PresentMinHours: 6, HalfDayMinHours: 3}

	assert.Equal(t, attendance.StatusPresent, policy.DeriveStatus(6.5))
	assert.Equal(t, attendance.StatusHalfDay, policy.DeriveStatus(3))
	assert.Equal(t, attendance.StatusEarlyLeave, policy.DeriveStatus(2))
}
