package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekOf(brand, item string) []*PricingRecord {
	rows := make([]*PricingRecord, 0, 7)
	for _, day := range AllDays() {
		rows = append(rows, newTestRecord(brand, item, day))
	}
	return rows
}

func TestNewCandidateSet(t *testing.T) {
	t.Run("orders rows by day of week", func(t *testing.T) {
		rows := []*PricingRecord{
			newTestRecord("Buffet", "Burger", Sunday),
			newTestRecord("Buffet", "Burger", Monday),
			newTestRecord("Buffet", "Burger", Wednesday),
		}

		cs, err := NewCandidateSet("Buffet", "Burger", rows)
		require.NoError(t, err)

		got := cs.Records()
		require.Len(t, got, 3)
		assert.Equal(t, Monday, got[0].DayOfWeek)
		assert.Equal(t, Wednesday, got[1].DayOfWeek)
		assert.Equal(t, Sunday, got[2].DayOfWeek)
	})

	t.Run("empty set is malformed", func(t *testing.T) {
		_, err := NewCandidateSet("Buffet", "Burger", nil)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("row outside scope is malformed", func(t *testing.T) {
		rows := []*PricingRecord{newTestRecord("Buffet", "Fries", Monday)}
		_, err := NewCandidateSet("Buffet", "Burger", rows)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("duplicate day is malformed", func(t *testing.T) {
		rows := []*PricingRecord{
			newTestRecord("Buffet", "Burger", Monday),
			newTestRecord("Buffet", "Burger", Monday),
		}
		_, err := NewCandidateSet("Buffet", "Burger", rows)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("later changes to input rows do not leak in", func(t *testing.T) {
		rows := weekOf("Buffet", "Burger")
		cs, err := NewCandidateSet("Buffet", "Burger", rows)
		require.NoError(t, err)

		rows[0].NewPrice = MustMoney(999, 1)
		cs.Records()[1].NewPrice = MustMoney(999, 1)

		for _, r := range cs.Records() {
			assert.True(t, r.NewPrice.Equals(MustMoney(500, 100)))
		}
	})
}

func TestCandidateSet_WithProposedPrices(t *testing.T) {
	cs, err := NewCandidateSet("Buffet", "Burger", weekOf("Buffet", "Burger"))
	require.NoError(t, err)

	t.Run("edits only the listed days and keeps full scope", func(t *testing.T) {
		edited, err := cs.WithProposedPrices(map[DayOfWeek]*Money{
			Friday:   MustMoney(650, 100),
			Saturday: MustMoney(700, 100),
		})
		require.NoError(t, err)

		assert.Equal(t, 7, edited.Len())
		for _, r := range edited.Records() {
			switch r.DayOfWeek {
			case Friday:
				assert.Equal(t, "6.50", r.NewPrice.String())
			case Saturday:
				assert.Equal(t, "7.00", r.NewPrice.String())
			default:
				assert.Equal(t, "5.00", r.NewPrice.String())
			}
		}

		// original value is untouched
		assert.Equal(t, "5.00", cs.Records()[4].NewPrice.String())
	})

	t.Run("day outside scope is malformed", func(t *testing.T) {
		partial, err := NewCandidateSet("Buffet", "Burger", []*PricingRecord{newTestRecord("Buffet", "Burger", Monday)})
		require.NoError(t, err)

		_, err = partial.WithProposedPrices(map[DayOfWeek]*Money{Sunday: MustMoney(1, 1)})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("nil price is malformed", func(t *testing.T) {
		_, err := cs.WithProposedPrices(map[DayOfWeek]*Money{Monday: nil})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})
}

func TestCandidateSet_Validate(t *testing.T) {
	ceiling := MustMoney(1000, 1)

	tests := []struct {
		name    string
		price   *Money
		wantErr bool
	}{
		{"zero is allowed", Zero(), false},
		{"ceiling is allowed", MustMoney(1000, 1), false},
		{"half steps are allowed", MustMoney(55, 10), false},
		{"negative is rejected", MustMoney(-1, 1), true},
		{"above ceiling is rejected", MustMoney(100001, 100), true},
		{"fractions of a cent are rejected", MustMoney(5555, 1000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := NewCandidateSet("Buffet", "Burger", []*PricingRecord{
				newTestRecord("Buffet", "Burger", Monday).WithNewPrice(tt.price),
			})
			require.NoError(t, err)

			err = cs.Validate(ceiling)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedRecord)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
