package contract

import (
	"context"
	"testing"
	"time"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEntityRepository is a mock implementation of contract.EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Entity, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contract.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]contract.Entity, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]contract.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]contract.Entity, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]contract.Entity), args.Error(1)
}

func (m *MockEntityRepository) Save(ctx context.Context, entity *contract.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntityRepository) SaveGroup(ctx context.Context, group *contract.EntityGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockEntityRepository) FindGroups(ctx context.Context, filter shared.Filter) ([]contract.EntityGroup, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contract.EntityGroup), args.Error(1)
}

// MockIncentiveRepository is a mock implementation of contract.IncentiveRepository
type MockIncentiveRepository struct {
	mock.Mock
}

func (m *MockIncentiveRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.CommercialIncentive, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.CommercialIncentive), args.Error(1)
}

func (m *MockIncentiveRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]contract.CommercialIncentive, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]contract.CommercialIncentive), args.Error(1)
}

func (m *MockIncentiveRepository) Save(ctx context.Context, incentive *contract.CommercialIncentive) error {
	args := m.Called(ctx, incentive)
	return args.Error(0)
}

func (m *MockIncentiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Tests
// =============================================================================

func newTestDashboardService(
	contractRepo *MockContractRepository,
	scopeRepo *MockScopeRepository,
	entityRepo *MockEntityRepository,
	incentiveRepo *MockIncentiveRepository,
	ledger contract.Ledger,
) *DashboardService {
	return NewDashboardService(
		contractRepo,
		scopeRepo,
		entityRepo,
		incentiveRepo,
		ledger,
		contract.NewMembershipReconstructor(ledger, nil),
		contract.NewExpiryResolver(ledger, nil),
	)
}

func TestDashboardService_Dashboard(t *testing.T) {
	contractRepo := new(MockContractRepository)
	scopeRepo := new(MockScopeRepository)
	entityRepo := new(MockEntityRepository)
	incentiveRepo := new(MockIncentiveRepository)
	ledger := new(MockLedger)
	service := newTestDashboardService(contractRepo, scopeRepo, entityRepo, incentiveRepo, ledger)

	c := mustNewContract(t, "Frame Agreement")
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	scope, err := contract.NewScope("EMEA", "")
	require.NoError(t, err)

	older, err := contract.NewAmendment(c.ID, "AM1",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	newer, err := contract.NewAmendment(c.ID, "AM2",
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	scopedClause := func(a *contract.Amendment, text string) contract.Clause {
		clause := contract.Clause{
			AmendmentID: a.ID,
			ClauseKind:  contract.ClauseKindText,
			Text:        text,
			Data:        &contract.TextClauseData{},
		}
		clause.AppliedToScopeID = &scope.ID
		return clause
	}
	older.Clauses = []contract.Clause{scopedClause(older, "superseded terms")}
	newer.Clauses = []contract.Clause{scopedClause(newer, "current terms")}

	incentive, err := contract.NewCommercialIncentive(c.ID, "Volume rebate", decimal.NewFromFloat(0.025))
	require.NoError(t, err)
	incentive.AppliedToScope(scope.ID)

	contractRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	ledger.On("AmendmentsOf", mock.Anything, c.ID).Return([]contract.Amendment{*older, *newer}, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindEntity).Return([]contract.Clause{}, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindScope).Return([]contract.Clause{}, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindTermination).Return([]contract.Clause{}, nil)
	incentiveRepo.On("FindByContract", mock.Anything, c.ID).Return([]contract.CommercialIncentive{*incentive}, nil)
	scopeRepo.On("FindByID", mock.Anything, scope.ID).Return(scope, nil)

	resp, err := service.Dashboard(context.Background(), c.ID, asOf)

	require.NoError(t, err)
	require.Len(t, resp.ScopeRows, 1)

	row := resp.ScopeRows[0]
	require.NotNil(t, row.ScopeID)
	assert.Equal(t, scope.ID, *row.ScopeID)
	assert.Equal(t, "EMEA", row.ScopeName)

	// only the most recently effective amendment's clauses survive
	require.Len(t, row.Clauses, 1)
	assert.Equal(t, "current terms", row.Clauses[0].Text)

	require.Len(t, row.Incentives, 1)
	assert.Equal(t, "Volume rebate", row.Incentives[0].Name)
}

func TestDashboardService_Gantt(t *testing.T) {
	contractRepo := new(MockContractRepository)
	ledger := new(MockLedger)
	service := newTestDashboardService(contractRepo, new(MockScopeRepository), new(MockEntityRepository), new(MockIncentiveRepository), ledger)

	parent := mustNewContract(t, "Parent")
	child := mustNewContract(t, "Child")

	expiryDate := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
	parentAM, err := contract.NewAmendment(parent.ID, "AM1",
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	parentAM.Clauses = []contract.Clause{{
		AmendmentID: parentAM.ID,
		ClauseKind:  contract.ClauseKindExpiry,
		Data: &contract.ExpiryClauseData{
			ExpiryType: contract.ExpiryFixedDate,
			ExpiryDate: &expiryDate,
		},
	}}

	contractRepo.On("FindByID", mock.Anything, parent.ID).Return(parent, nil)
	ledger.On("ChildContractsOf", mock.Anything, parent.ID).Return([]contract.Contract{*child}, nil)
	ledger.On("AmendmentsOf", mock.Anything, parent.ID).Return([]contract.Amendment{*parentAM}, nil)
	ledger.On("AmendmentsOf", mock.Anything, child.ID).Return([]contract.Amendment{}, nil)
	ledger.On("ClausesOfType", mock.Anything, parent.ID, contract.ClauseKindTermination).Return([]contract.Clause{}, nil)
	ledger.On("ClausesOfType", mock.Anything, child.ID, contract.ClauseKindTermination).Return([]contract.Clause{}, nil)

	rows, err := service.Gantt(context.Background(), parent.ID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, parent.ID, rows[0].ContractID)
	require.NotNil(t, rows[0].Start)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), *rows[0].Start)
	require.NotNil(t, rows[0].End)
	assert.Equal(t, expiryDate, *rows[0].End)

	// the child has no amendments, so neither end of its bar is known
	assert.Equal(t, child.ID, rows[1].ContractID)
	assert.Nil(t, rows[1].Start)
	assert.Nil(t, rows[1].End)
}
