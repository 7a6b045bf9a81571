package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContract(t *testing.T) {
	t.Run("creates contract successfully", func(t *testing.T) {
		c, err := NewContract("Frame Agreement 2024", "Frame Purchase Agreement 2024 with Annexes")

		require.NoError(t, err)
		assert.Equal(t, "Frame Agreement 2024", c.Name)
		assert.Len(t, c.GetDomainEvents(), 1)
		assert.Equal(t, EventContractCreated, c.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewContract("   ", "")

		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestContract_EarliestEffectiveDate(t *testing.T) {
	c, err := NewContract("Frame Agreement", "")
	require.NoError(t, err)

	t.Run("nil without amendments", func(t *testing.T) {
		assert.Nil(t, c.EarliestEffectiveDate())
	})

	t.Run("minimum across amendments", func(t *testing.T) {
		a1, err := NewAmendment(c.ID, "AM1", onDay(2021, 3, 1), onDay(2021, 4, 1))
		require.NoError(t, err)
		a2, err := NewAmendment(c.ID, "AM2", onDay(2020, 1, 1), onDay(2020, 2, 1))
		require.NoError(t, err)
		c.Amendments = []Amendment{*a1, *a2}

		got := c.EarliestEffectiveDate()
		require.NotNil(t, got)
		assert.Equal(t, onDay(2020, 2, 1), *got)
	})
}

func TestAmendment_ApplicableAsOf(t *testing.T) {
	c, err := NewContract("Frame Agreement", "")
	require.NoError(t, err)

	a, err := NewAmendment(c.ID, "AM1", onDay(2021, 1, 15), onDay(2021, 6, 1))
	require.NoError(t, err)

	t.Run("applicable when both dates passed", func(t *testing.T) {
		assert.True(t, a.ApplicableAsOf(onDay(2021, 6, 1)))
		assert.True(t, a.ApplicableAsOf(onDay(2022, 1, 1)))
	})

	t.Run("not applicable before effective date", func(t *testing.T) {
		assert.False(t, a.ApplicableAsOf(onDay(2021, 3, 1)))
	})

	t.Run("not applicable before sign date", func(t *testing.T) {
		assert.False(t, a.ApplicableAsOf(onDay(2021, 1, 1)))
	})
}

func TestNewClause(t *testing.T) {
	c, err := NewContract("Frame Agreement", "")
	require.NoError(t, err)
	a, err := NewAmendment(c.ID, "AM1", onDay(2021, 1, 1), onDay(2021, 1, 1))
	require.NoError(t, err)

	t.Run("kind follows the payload", func(t *testing.T) {
		clause, err := NewClause(a.ID, "", &TerminationClauseData{TerminationDate: onDay(2022, 7, 1)})
		require.NoError(t, err)
		assert.Equal(t, ClauseKindTermination, clause.ClauseKind)
		assert.Equal(t, PosMainBody, clause.Pos)
	})

	t.Run("requires a payload", func(t *testing.T) {
		_, err := NewClause(a.ID, PosAnnex, nil)
		assert.Error(t, err)
	})
}
