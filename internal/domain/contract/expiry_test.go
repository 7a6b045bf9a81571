package contract

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryResolver_FixedDate(t *testing.T) {
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	expiry := onDay(2030, 12, 31)
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(expiry), nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, expiry, *result)
}

func TestExpiryResolver_LinkedContract(t *testing.T) {
	// C1 linked to C2; C2 has a fixed expiry of 2030-12-31.
	ledger := newFakeLedger()
	c1 := ledger.addContract()
	c2 := ledger.addContract()
	expiry := onDay(2030, 12, 31)
	ledger.addAmendment(c1, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryLinkedToContract, nil, &c2))
	ledger.addAmendment(c2, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(expiry), nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), c1, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, expiry, *result)
}

func TestExpiryResolver_LatestOfChildren(t *testing.T) {
	// C1's own date 2024-01-01 loses to children resolving to 2025-06-01
	// and 2026-01-01.
	ledger := newFakeLedger()
	c1 := ledger.addContract()
	childA := ledger.addContract()
	childB := ledger.addContract()
	ledger.addChildContract(c1, childA)
	ledger.addChildContract(c1, childB)

	ledger.addAmendment(c1, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryLatestOfChildrenOrFixedDate, datePtr(onDay(2024, 1, 1)), nil))
	ledger.addAmendment(childA, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2025, 6, 1)), nil))
	ledger.addAmendment(childB, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2026, 1, 1)), nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), c1, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, onDay(2026, 1, 1), *result)
}

func TestExpiryResolver_UnresolvedChildPoisonsParent(t *testing.T) {
	// One child has no expiry clause at all; the parent's own date does not
	// save the result.
	ledger := newFakeLedger()
	c1 := ledger.addContract()
	child := ledger.addContract()
	ledger.addChildContract(c1, child)

	ledger.addAmendment(c1, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryLatestOfChildrenOrFixedDate, datePtr(onDay(2024, 1, 1)), nil))
	ledger.addAmendment(child, onDay(2020, 1, 1), onDay(2020, 1, 1))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), c1, onDay(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExpiryResolver_TerminationOverrides(t *testing.T) {
	// An explicit termination clause wins over a later expiry clause.
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2030, 12, 31)), nil))
	ledger.addAmendment(contractID, onDay(2022, 1, 1), onDay(2022, 1, 1),
		terminationClause(onDay(2022, 7, 1)))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, onDay(2022, 7, 1), *result)
}

func TestExpiryResolver_TerminationOnFutureAmendmentIgnored(t *testing.T) {
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2030, 12, 31)), nil))
	// signed but not yet effective as of 2024-01-01
	ledger.addAmendment(contractID, onDay(2023, 1, 1), onDay(2025, 1, 1),
		terminationClause(onDay(2025, 7, 1)))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, onDay(2030, 12, 31), *result)
}

func TestExpiryResolver_TwoContractCycle(t *testing.T) {
	// A linked to B, B linked to A: both resolve to unknown in bounded time.
	ledger := newFakeLedger()
	a := ledger.addContract()
	b := ledger.addContract()
	ledger.addAmendment(a, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryLinkedToContract, nil, &b))
	ledger.addAmendment(b, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryLinkedToContract, nil, &a))

	resolver := NewExpiryResolver(ledger, nil)
	ctx := context.Background()

	resultA, err := resolver.ExpiryDateAsOf(ctx, a, onDay(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, resultA)

	resultB, err := resolver.ExpiryDateAsOf(ctx, b, onDay(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, resultB)
}

func TestExpiryResolver_MissingLink(t *testing.T) {
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryLinkedToContract, nil, nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExpiryResolver_UnknownExpiryType(t *testing.T) {
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryType("per_handshake"), datePtr(onDay(2030, 1, 1)), nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExpiryResolver_MostRecentlySignedAmendmentWins(t *testing.T) {
	// Two applicable amendments both carry expiry clauses; the most recently
	// signed one decides even though it was recorded first.
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	ledger.addAmendment(contractID, onDay(2022, 1, 1), onDay(2022, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2031, 1, 1)), nil))
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2030, 1, 1)), nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, onDay(2031, 1, 1), *result)
}

func TestExpiryResolver_AmendmentWithoutExpiryClauseIsSkipped(t *testing.T) {
	// The most recently signed amendment has no expiry clause; the scan moves
	// on to the next amendment.
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	e1 := uuid.New()
	ledger.addAmendment(contractID, onDay(2023, 1, 1), onDay(2023, 1, 1),
		entityClause(ActionAdd, e1, nil))
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1),
		expiryClause(ExpiryFixedDate, datePtr(onDay(2030, 1, 1)), nil))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, onDay(2030, 1, 1), *result)
}

func TestExpiryResolver_NoExpiryClauses(t *testing.T) {
	ledger := newFakeLedger()
	contractID := ledger.addContract()
	ledger.addAmendment(contractID, onDay(2020, 1, 1), onDay(2020, 1, 1))

	resolver := NewExpiryResolver(ledger, nil)
	result, err := resolver.ExpiryDateAsOf(context.Background(), contractID, onDay(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestNewExpiryResolver_NilLedgerPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewExpiryResolver(nil, nil)
	})
}
