package contract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractService handles contract-related business operations, including
// the derived views (current entities, current scopes, expiry date) that are
// reconstructed from the clause ledger on every request
type ContractService struct {
	contractRepo  contract.ContractRepository
	amendmentRepo contract.AmendmentRepository
	registry      *contract.ClauseRegistry
	membership    *contract.MembershipReconstructor
	expiry        *contract.ExpiryResolver
}

// NewContractService creates a new ContractService
func NewContractService(
	contractRepo contract.ContractRepository,
	amendmentRepo contract.AmendmentRepository,
	registry *contract.ClauseRegistry,
	membership *contract.MembershipReconstructor,
	expiry *contract.ExpiryResolver,
) *ContractService {
	return &ContractService{
		contractRepo:  contractRepo,
		amendmentRepo: amendmentRepo,
		registry:      registry,
		membership:    membership,
		expiry:        expiry,
	}
}

// Create creates a new contract
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	exists, err := s.contractRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Contract with this name already exists")
	}

	c, err := contract.NewContract(req.Name, req.FullName)
	if err != nil {
		return nil, err
	}

	if req.ExternalRef != "" {
		if err := c.SetExternalRef(req.ExternalRef); err != nil {
			return nil, err
		}
	}
	if req.Remarks != "" {
		c.SetRemarks(req.Remarks)
	}

	if err := s.contractRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToContractResponse(c)
	return &response, nil
}

// GetByID retrieves a contract with its amendments and derived state
func (s *ContractService) GetByID(ctx context.Context, contractID uuid.UUID) (*ContractDetailResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	amendments, err := s.amendmentRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	c.Amendments = amendments

	entities, err := s.membership.CurrentEntities(ctx, contractID)
	if err != nil {
		return nil, err
	}
	scopes, err := s.membership.CurrentScopes(ctx, contractID)
	if err != nil {
		return nil, err
	}
	expiryDate, err := s.expiry.ExpiryDate(ctx, contractID)
	if err != nil {
		return nil, err
	}

	return &ContractDetailResponse{
		ContractResponse: ToContractResponse(c),
		ExpiryDate:       expiryDate,
		Entities:         entities.IDs(),
		Scopes:           scopes.IDs(),
		Amendments:       ToAmendmentResponses(amendments),
	}, nil
}

// List retrieves contracts with filtering and pagination
func (s *ContractService) List(ctx context.Context, filter ContractListFilter) ([]ContractResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	contracts, err := s.contractRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contractRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToContractResponses(contracts), total, nil
}

// Update updates a contract's basic information
func (s *ContractService) Update(ctx context.Context, contractID uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		exists, err := s.contractRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Contract with this name already exists")
		}
	}

	name := c.Name
	fullName := c.FullName
	if req.Name != nil {
		name = *req.Name
	}
	if req.FullName != nil {
		fullName = *req.FullName
	}
	if err := c.Update(name, fullName); err != nil {
		return nil, err
	}

	if req.ExternalRef != nil {
		if err := c.SetExternalRef(*req.ExternalRef); err != nil {
			return nil, err
		}
	}
	if req.Remarks != nil {
		c.SetRemarks(*req.Remarks)
	}

	if err := s.contractRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToContractResponse(c)
	return &response, nil
}

// Delete deletes a contract and its amendments
func (s *ContractService) Delete(ctx context.Context, contractID uuid.UUID) error {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return err
	}
	return s.contractRepo.Delete(ctx, contractID)
}

// Link records a parent->child relation between two contracts
func (s *ContractService) Link(ctx context.Context, parentID, childID uuid.UUID) error {
	if parentID == childID {
		return shared.NewDomainError("INVALID_LINK", "A contract cannot be its own child")
	}
	parent, err := s.contractRepo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if _, err := s.contractRepo.FindByID(ctx, childID); err != nil {
		return err
	}
	if err := s.contractRepo.AddLink(ctx, parentID, childID); err != nil {
		return err
	}
	parent.AddDomainEvent(contract.NewContractLinkedEvent(parentID, childID))
	return nil
}

// Unlink removes a parent->child relation
func (s *ContractService) Unlink(ctx context.Context, parentID, childID uuid.UUID) error {
	parent, err := s.contractRepo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if err := s.contractRepo.RemoveLink(ctx, parentID, childID); err != nil {
		return err
	}
	parent.AddDomainEvent(contract.NewContractUnlinkedEvent(parentID, childID))
	return nil
}

// Children returns the direct child contracts of a contract
func (s *ContractService) Children(ctx context.Context, contractID uuid.UUID) ([]ContractResponse, error) {
	children, err := s.contractRepo.FindChildren(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return ToContractResponses(children), nil
}

// CurrentEntities reconstructs the contract's current entity set from its
// entity clauses
func (s *ContractService) CurrentEntities(ctx context.Context, contractID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return nil, err
	}
	set, err := s.membership.CurrentEntities(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return set.IDs(), nil
}

// CurrentScopes reconstructs the contract's current scope set from its
// scope clauses
func (s *ContractService) CurrentScopes(ctx context.Context, contractID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return nil, err
	}
	set, err := s.membership.CurrentScopes(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return set.IDs(), nil
}

// ExpiryDate resolves the contract's effective expiry date as of now.
// A nil date means the expiry could not be determined from the ledger.
func (s *ContractService) ExpiryDate(ctx context.Context, contractID uuid.UUID) (*time.Time, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.expiry.ExpiryDate(ctx, contractID)
}

// ExpiryDateAsOf resolves the contract's effective expiry date as of a
// reference date
func (s *ContractService) ExpiryDateAsOf(ctx context.Context, contractID uuid.UUID, asOf time.Time) (*time.Time, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.expiry.ExpiryDateAsOf(ctx, contractID, asOf)
}

// AddAmendment attaches a new amendment, with its clauses, to a contract
func (s *ContractService) AddAmendment(ctx context.Context, contractID uuid.UUID, req CreateAmendmentRequest) (*AmendmentResponse, error) {
	parent, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	amendment, err := contract.NewAmendment(contractID, req.Name, req.SignDate, req.EffectiveDate)
	if err != nil {
		return nil, err
	}
	amendment.FullName = req.FullName
	amendment.Remarks = req.Remarks

	for _, clauseReq := range req.Clauses {
		clause, err := s.buildClause(amendment.ID, clauseReq)
		if err != nil {
			return nil, err
		}
		amendment.AddClause(*clause)
	}

	if err := s.amendmentRepo.Save(ctx, amendment); err != nil {
		return nil, err
	}
	parent.AddDomainEvent(contract.NewAmendmentSignedEvent(parent, amendment.Name))

	response := ToAmendmentResponse(amendment)
	return &response, nil
}

// ListAmendments returns all amendments of a contract with their clauses
func (s *ContractService) ListAmendments(ctx context.Context, contractID uuid.UUID) ([]AmendmentResponse, error) {
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		return nil, err
	}
	amendments, err := s.amendmentRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return ToAmendmentResponses(amendments), nil
}

// DeleteAmendment removes an amendment and its clauses
func (s *ContractService) DeleteAmendment(ctx context.Context, amendmentID uuid.UUID) error {
	if _, err := s.amendmentRepo.FindByID(ctx, amendmentID); err != nil {
		return err
	}
	return s.amendmentRepo.Delete(ctx, amendmentID)
}

// buildClause decodes the request payload through the clause registry and
// assembles the clause row
func (s *ContractService) buildClause(amendmentID uuid.UUID, req CreateClauseRequest) (*contract.Clause, error) {
	kind := contract.ClauseKind(req.Kind)

	var raw []byte
	if req.Data != "" {
		if !json.Valid([]byte(req.Data)) {
			return nil, shared.NewDomainError("INVALID_CLAUSE_DATA", "Clause payload is not valid JSON")
		}
		raw = []byte(req.Data)
	}

	data, err := s.registry.Decode(kind, raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CLAUSE_DATA", err.Error())
	}

	clause, err := contract.NewClause(amendmentID, contract.ClausePos(req.Pos), data)
	if err != nil {
		return nil, err
	}
	clause.Ref = req.Ref
	clause.Text = req.Text
	clause.Remarks = req.Remarks
	if req.AppliedToScopeID != nil {
		clause.AppliedToScope(*req.AppliedToScopeID)
	}
	if raw != nil {
		clause.RawData = string(raw)
	} else {
		clause.RawData = "{}"
	}
	return clause, nil
}
