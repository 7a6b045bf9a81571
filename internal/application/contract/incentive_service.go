package contract

import (
	"context"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/google/uuid"
)

// IncentiveService handles commercial incentive operations
type IncentiveService struct {
	incentiveRepo contract.IncentiveRepository
	contractRepo  contract.ContractRepository
}

// NewIncentiveService creates a new IncentiveService
func NewIncentiveService(
	incentiveRepo contract.IncentiveRepository,
	contractRepo contract.ContractRepository,
) *IncentiveService {
	return &IncentiveService{
		incentiveRepo: incentiveRepo,
		contractRepo:  contractRepo,
	}
}

// Create attaches a commercial incentive to a contract
func (s *IncentiveService) Create(ctx context.Context, contractID uuid.UUID, req CreateIncentiveRequest) (*IncentiveResponse, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return nil, err
	}

	incentive, err := contract.NewCommercialIncentive(contractID, req.Name, req.Rate)
	if err != nil {
		return nil, err
	}
	incentive.Remarks = req.Remarks
	if req.ScopeID != nil {
		incentive.AppliedToScope(*req.ScopeID)
	}

	if err := s.incentiveRepo.Save(ctx, incentive); err != nil {
		return nil, err
	}

	response := ToIncentiveResponse(incentive)
	return &response, nil
}

// ListByContract returns the incentives attached to a contract
func (s *IncentiveService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]IncentiveResponse, error) {
	incentives, err := s.incentiveRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	responses := make([]IncentiveResponse, len(incentives))
	for i := range incentives {
		responses[i] = ToIncentiveResponse(&incentives[i])
	}
	return responses, nil
}

// Delete removes a commercial incentive
func (s *IncentiveService) Delete(ctx context.Context, incentiveID uuid.UUID) error {
	if _, err := s.incentiveRepo.FindByID(ctx, incentiveID); err != nil {
		return err
	}
	return s.incentiveRepo.Delete(ctx, incentiveID)
}
