package contract

import (
	"context"
	"testing"
	"time"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockContractRepository is a mock implementation of contract.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByName(ctx context.Context, name string) (*contract.Contract, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Contract, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) AddLink(ctx context.Context, parentID, childID uuid.UUID) error {
	args := m.Called(ctx, parentID, childID)
	return args.Error(0)
}

func (m *MockContractRepository) RemoveLink(ctx context.Context, parentID, childID uuid.UUID) error {
	args := m.Called(ctx, parentID, childID)
	return args.Error(0)
}

func (m *MockContractRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]contract.Contract, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindParents(ctx context.Context, childID uuid.UUID) ([]contract.Contract, error) {
	args := m.Called(ctx, childID)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

// MockAmendmentRepository is a mock implementation of contract.AmendmentRepository
type MockAmendmentRepository struct {
	mock.Mock
}

func (m *MockAmendmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Amendment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Amendment), args.Error(1)
}

func (m *MockAmendmentRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]contract.Amendment, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]contract.Amendment), args.Error(1)
}

func (m *MockAmendmentRepository) Save(ctx context.Context, amendment *contract.Amendment) error {
	args := m.Called(ctx, amendment)
	return args.Error(0)
}

func (m *MockAmendmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLedger is a mock implementation of contract.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Contracts(ctx context.Context) ([]contract.Contract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

func (m *MockLedger) AmendmentsOf(ctx context.Context, contractID uuid.UUID) ([]contract.Amendment, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]contract.Amendment), args.Error(1)
}

func (m *MockLedger) ClausesOfType(ctx context.Context, contractID uuid.UUID, kind contract.ClauseKind) ([]contract.Clause, error) {
	args := m.Called(ctx, contractID, kind)
	return args.Get(0).([]contract.Clause), args.Error(1)
}

func (m *MockLedger) ScopeEdges(ctx context.Context) ([]contract.ScopeEdge, error) {
	args := m.Called(ctx)
	return args.Get(0).([]contract.ScopeEdge), args.Error(1)
}

func (m *MockLedger) ChildContractsOf(ctx context.Context, contractID uuid.UUID) ([]contract.Contract, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestContractService(contractRepo *MockContractRepository, amendmentRepo *MockAmendmentRepository, ledger contract.Ledger) *ContractService {
	return NewContractService(
		contractRepo,
		amendmentRepo,
		contract.NewClauseRegistry(),
		contract.NewMembershipReconstructor(ledger, nil),
		contract.NewExpiryResolver(ledger, nil),
	)
}

func mustNewContract(t *testing.T, name string) *contract.Contract {
	t.Helper()
	c, err := contract.NewContract(name, "")
	require.NoError(t, err)
	return c
}

// =============================================================================
// Tests
// =============================================================================

func TestContractService_Create(t *testing.T) {
	t.Run("creates contract successfully", func(t *testing.T) {
		contractRepo := new(MockContractRepository)
		service := newTestContractService(contractRepo, new(MockAmendmentRepository), new(MockLedger))

		contractRepo.On("ExistsByName", mock.Anything, "Frame Agreement").Return(false, nil)
		contractRepo.On("Save", mock.Anything, mock.AnythingOfType("*contract.Contract")).Return(nil)

		resp, err := service.Create(context.Background(), CreateContractRequest{
			Name:        "Frame Agreement",
			FullName:    "Frame Purchase Agreement",
			ExternalRef: "CP-2024-017",
		})

		require.NoError(t, err)
		assert.Equal(t, "Frame Agreement", resp.Name)
		assert.Equal(t, "CP-2024-017", resp.ExternalRef)
		contractRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		contractRepo := new(MockContractRepository)
		service := newTestContractService(contractRepo, new(MockAmendmentRepository), new(MockLedger))

		contractRepo.On("ExistsByName", mock.Anything, "Frame Agreement").Return(true, nil)

		_, err := service.Create(context.Background(), CreateContractRequest{Name: "Frame Agreement"})

		assert.Error(t, err)
		contractRepo.AssertNotCalled(t, "Save")
	})
}

func TestContractService_GetByID(t *testing.T) {
	contractRepo := new(MockContractRepository)
	amendmentRepo := new(MockAmendmentRepository)
	ledger := new(MockLedger)
	service := newTestContractService(contractRepo, amendmentRepo, ledger)

	c := mustNewContract(t, "Frame Agreement")
	entityID := uuid.New()

	amendment, err := contract.NewAmendment(c.ID, "AM1",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	entityClause := contract.Clause{
		ClauseKind: contract.ClauseKindEntity,
		Data:       &contract.EntityClauseData{Action: contract.ActionAdd, NewEntityID: entityID},
		Amendment:  amendment,
	}

	contractRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	amendmentRepo.On("FindByContract", mock.Anything, c.ID).Return([]contract.Amendment{*amendment}, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindEntity).Return([]contract.Clause{entityClause}, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindScope).Return([]contract.Clause{}, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindTermination).Return([]contract.Clause{}, nil)
	ledger.On("AmendmentsOf", mock.Anything, c.ID).Return([]contract.Amendment{*amendment}, nil)

	resp, err := service.GetByID(context.Background(), c.ID)

	require.NoError(t, err)
	assert.Equal(t, c.ID, resp.ID)
	assert.Equal(t, []uuid.UUID{entityID}, resp.Entities)
	assert.Empty(t, resp.Scopes)
	assert.Nil(t, resp.ExpiryDate)
	assert.Len(t, resp.Amendments, 1)
}

func TestContractService_Link(t *testing.T) {
	t.Run("links two contracts", func(t *testing.T) {
		contractRepo := new(MockContractRepository)
		service := newTestContractService(contractRepo, new(MockAmendmentRepository), new(MockLedger))

		parent := mustNewContract(t, "Parent")
		child := mustNewContract(t, "Child")

		contractRepo.On("FindByID", mock.Anything, parent.ID).Return(parent, nil)
		contractRepo.On("FindByID", mock.Anything, child.ID).Return(child, nil)
		contractRepo.On("AddLink", mock.Anything, parent.ID, child.ID).Return(nil)

		err := service.Link(context.Background(), parent.ID, child.ID)

		require.NoError(t, err)
		contractRepo.AssertExpectations(t)
	})

	t.Run("rejects self link", func(t *testing.T) {
		contractRepo := new(MockContractRepository)
		service := newTestContractService(contractRepo, new(MockAmendmentRepository), new(MockLedger))

		id := uuid.New()
		err := service.Link(context.Background(), id, id)

		assert.Error(t, err)
		contractRepo.AssertNotCalled(t, "AddLink")
	})
}

func TestContractService_AddAmendment(t *testing.T) {
	t.Run("builds clauses from typed payloads", func(t *testing.T) {
		contractRepo := new(MockContractRepository)
		amendmentRepo := new(MockAmendmentRepository)
		service := newTestContractService(contractRepo, amendmentRepo, new(MockLedger))

		c := mustNewContract(t, "Frame Agreement")
		entityID := uuid.New()

		contractRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		var saved *contract.Amendment
		amendmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*contract.Amendment")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*contract.Amendment)
			}).Return(nil)

		resp, err := service.AddAmendment(context.Background(), c.ID, CreateAmendmentRequest{
			Name:          "AM1",
			SignDate:      time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			EffectiveDate: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
			Clauses: []CreateClauseRequest{
				{
					Kind: string(contract.ClauseKindEntity),
					Data: `{"action":"add","new_entity_id":"` + entityID.String() + `"}`,
				},
			},
		})

		require.NoError(t, err)
		assert.Len(t, resp.Clauses, 1)
		assert.Equal(t, string(contract.ClauseKindEntity), resp.Clauses[0].Kind)

		require.NotNil(t, saved)
		require.Len(t, saved.Clauses, 1)
		payload, ok := saved.Clauses[0].Data.(*contract.EntityClauseData)
		require.True(t, ok)
		assert.Equal(t, entityID, payload.NewEntityID)
	})

	t.Run("rejects malformed clause payload", func(t *testing.T) {
		contractRepo := new(MockContractRepository)
		amendmentRepo := new(MockAmendmentRepository)
		service := newTestContractService(contractRepo, amendmentRepo, new(MockLedger))

		c := mustNewContract(t, "Frame Agreement")
		contractRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		_, err := service.AddAmendment(context.Background(), c.ID, CreateAmendmentRequest{
			Name:          "AM1",
			SignDate:      time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			EffectiveDate: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
			Clauses: []CreateClauseRequest{
				{Kind: string(contract.ClauseKindEntity), Data: `{not json`},
			},
		})

		assert.Error(t, err)
		amendmentRepo.AssertNotCalled(t, "Save")
	})
}

func TestContractService_ExpiryDateAsOf(t *testing.T) {
	contractRepo := new(MockContractRepository)
	ledger := new(MockLedger)
	service := newTestContractService(contractRepo, new(MockAmendmentRepository), ledger)

	c := mustNewContract(t, "Frame Agreement")
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	expiryDate := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)

	amendment, err := contract.NewAmendment(c.ID, "AM1",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	amendment.Clauses = []contract.Clause{{
		AmendmentID: amendment.ID,
		ClauseKind:  contract.ClauseKindExpiry,
		Data: &contract.ExpiryClauseData{
			ExpiryType: contract.ExpiryFixedDate,
			ExpiryDate: &expiryDate,
		},
	}}

	contractRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	ledger.On("ClausesOfType", mock.Anything, c.ID, contract.ClauseKindTermination).Return([]contract.Clause{}, nil)
	ledger.On("AmendmentsOf", mock.Anything, c.ID).Return([]contract.Amendment{*amendment}, nil)

	got, err := service.ExpiryDateAsOf(context.Background(), c.ID, asOf)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, expiryDate, *got)
}
