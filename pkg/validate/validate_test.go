package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" binding:"notblank"`
	Email string `json:"email" binding:"required,email"`
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input signup
		want  map[string]string
	}{
		{
			name:  "valid",
			input: signup{Name: "Asha", Email: "asha@example.com"},
			want:  nil,
		},
		{
			name:  "blank name",
			input: signup{Name: "   ", Email: "asha@example.com"},
			want:  map[string]string{"name": "name must not be blank"},
		},
		{
			name:  "bad email",
			input: signup{Name: "Asha", Email: "asha"},
			want:  map[string]string{"email": "email must be a valid email address"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, Errors(err))
		})
	}
}

func TestGinValidator_SkipsNonStructs(t *testing.T) {
	v := ginValidator{}
	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct([]string{"a"}))
	var p *signup
	assert.NoError(t, v.ValidateStruct(p))
	assert.Error(t, v.ValidateStruct(&signup{}))
}
