package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    float64
		wantErr bool
	}{
		{"float64", 1.5, 1.5, false},
		{"int", 3, 3, false},
		{"int64", int64(-2), -2, false},
		{"bool true", true, 1, false},
		{"numeric string", " 2.5 ", 2.5, false},
		{"garbage string", "abc", 0, true},
		{"nil", nil, 0, true},
		{"slice", []any{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ToList(t *testing.T) {
	got, err := ToList([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, got)

	_, err = ToList("not a list")
	assert.Error(t, err)
}

func Test_ToDict(t *testing.T) {
	d := map[string]any{"a": 1}
	got, err := ToDict(d)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = ToDict(42)
	assert.Error(t, err)
}

func Test_ToString(t *testing.T) {
	s, err := ToString("x")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	s, err = ToString(7)
	require.NoError(t, err)
	assert.Equal(t, "7", s)

	_, err = ToString(nil)
	assert.Error(t, err)
}
