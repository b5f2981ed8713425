package recon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fiscaudit/internal/domain"
	"fiscaudit/internal/recon"
)

func TestFindExactMatch(t *testing.T) {
	rows := []domain.LedgerRow{
		{DocumentNumber: "00045"},
		{DocumentNumber: "777"},
		{DocumentNumber: "777"},
	}

	t.Run("matches zero-padded numbers", func(t *testing.T) {
		assert.Equal(t, 0, recon.FindExactMatch("45", rows))
	})

	t.Run("returns first of duplicates", func(t *testing.T) {
		assert.Equal(t, 1, recon.FindExactMatch("777", rows))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, -1, recon.FindExactMatch("999", rows))
	})

	t.Run("rows without a document number never match", func(t *testing.T) {
		blank := []domain.LedgerRow{{DocumentNumber: ""}}
		// "0" is what an empty extracted number normalizes to; a ledger row
		// with no number must not pair with it.
		assert.Equal(t, -1, recon.FindExactMatch("0", blank))
	})
}
