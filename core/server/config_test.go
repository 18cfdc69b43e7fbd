package server_test

import (
	"testing"

	"catalog-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		has      bool
		wantErr  bool
	}{
		{"Disabled", "", false, false},
		{"Nightly", "0 3 * * *", true, false},
		{"Descriptor", "@daily", true, false},
		{"Invalid", "every day", true, true},
		{"Too Many Fields", "0 0 3 * * *", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ImportSchedule: tt.schedule}
			assert.Equal(t, tt.has, c.HasSchedule())
			if tt.wantErr {
				assert.Error(t, c.ValidateSchedule())
			} else {
				assert.NoError(t, c.ValidateSchedule())
			}
		})
	}
}
