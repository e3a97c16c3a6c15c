package primitive

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeWidening(t *testing.T) {
	type Level int32

	tests := []struct {
		name     string
		from, to reflect.Type
		expected bool
	}{
		{"int32 to int64", reflect.TypeFor[int32](), reflect.TypeFor[int64](), true},
		{"int64 to int32", reflect.TypeFor[int64](), reflect.TypeFor[int32](), false},
		{"uint8 to int", reflect.TypeFor[uint8](), reflect.TypeFor[int](), true},
		{"uint32 to int32", reflect.TypeFor[uint32](), reflect.TypeFor[int32](), false},
		{"float32 to float64", reflect.TypeFor[float32](), reflect.TypeFor[float64](), true},
		{"int32 to float32", reflect.TypeFor[int32](), reflect.TypeFor[float32](), false},
		{"named int32 to int64", reflect.TypeFor[Level](), reflect.TypeFor[int64](), false},
		{"string to int", reflect.TypeFor[string](), reflect.TypeFor[int](), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSafeWidening(tt.from, tt.to))
		})
	}
}
