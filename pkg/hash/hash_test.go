package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hashed)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "same password", password: "p", want: true},
		{name: "wrong password", password: "wrong", want: false},
		{name: "empty password", password: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordHash(tt.password, hashed))
		})
	}
}
