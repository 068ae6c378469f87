package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		want     float64
	}{
		{name: "unset", capacity: 0, want: DefaultWeeklyCapacityHours},
		{name: "negative", capacity: -5, want: 40},
		{name: "configured", capacity: 32.5, want: 32.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{WeeklyCapacityHours: tt.capacity}
			assert.Equal(t, tt.want, u.Capacity())
		})
	}
}

func TestDefaultCapacityIsFloat(t *testing.T) {
	u := &User{WeeklyCapacityHours: DefaultWeeklyCapacityHours}
	assert.Equal(t, DefaultWeeklyCapacityHours, u.WeeklyCapacityHours)
}
