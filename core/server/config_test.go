package server_test

import (
	"testing"

	"addressable-resources/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ReadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    int
	}{
		{"Configured", 15, 15},
		{"Zero", 0, 60},
		{"Negative", -1, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ReadTimeoutSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.ReadTimeout())
		})
	}
}
