package scheduler

import (
	"testing"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/stretchr/testify/assert"
)

func TestServiceIsUp(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	downTime := 60 * time.Second

	tests := []struct {
		name      string
		createdAt time.Time
		updatedAt time.Time
		want      bool
	}{
		{
			name:      "fresh heartbeat",
			createdAt: now.Add(-10 * time.Minute),
			updatedAt: now.Add(-30 * time.Second),
			want:      true,
		},
		{
			name:      "stale heartbeat",
			createdAt: now.Add(-10 * time.Minute),
			updatedAt: now.Add(-90 * time.Second),
			want:      false,
		},
		{
			name:      "age exactly equals timeout",
			createdAt: now.Add(-10 * time.Minute),
			updatedAt: now.Add(-60 * time.Second),
			want:      false,
		},
		{
			name:      "age just under timeout",
			createdAt: now.Add(-10 * time.Minute),
			updatedAt: now.Add(-60*time.Second + time.Millisecond),
			want:      true,
		},
		{
			name:      "never updated record counts from creation",
			createdAt: now.Add(-30 * time.Second),
			updatedAt: time.Time{},
			want:      true,
		},
		{
			name:      "never updated and stale",
			createdAt: now.Add(-2 * time.Minute),
			updatedAt: time.Time{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			service := &model.Service{
				ID:        "srv-1",
				Host:      "node-1",
				Topic:     TopicCompute,
				CreatedAt: tt.createdAt,
				UpdatedAt: tt.updatedAt,
			}
			assert.Equal(t, tt.want, ServiceIsUp(service, now, downTime))
		})
	}
}
