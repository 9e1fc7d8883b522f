package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayOfWeek(t *testing.T) {
	tests := []struct {
		in   string
		want DayOfWeek
	}{
		{"Monday", Monday},
		{"monday", Monday},
		{"MON", Monday},
		{" Tue ", Tuesday},
		{"Wednesday", Wednesday},
		{"thu", Thursday},
		{"Friday", Friday},
		{"sat", Saturday},
		{"Sunday", Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDayOfWeek(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "Mo", "Funday", "8"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseDayOfWeek(bad)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestDayOfWeek_String(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "DayOfWeek(0)", DayOfWeek(0).String())
	assert.Len(t, AllDays(), 7)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{fmt.Errorf("%w: x", ErrMalformedRecord), KindMalformedRecord},
		{fmt.Errorf("%w: x", ErrModelUnavailable), KindModelUnavailable},
		{fmt.Errorf("%w: x", ErrJoinMismatch), KindJoinMismatch},
		{fmt.Errorf("%w: x", ErrUndefinedLift), KindUndefinedLift},
		{fmt.Errorf("%w: %w", ErrCommitFailure, ErrMalformedRecord), KindCommitFailure},
		{ErrScopeNotFound, KindNotFound},
		{ErrBatchNotFound, KindNotFound},
		{fmt.Errorf("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
