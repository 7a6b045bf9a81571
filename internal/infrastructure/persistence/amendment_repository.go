package persistence

import (
	"context"
	"errors"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormAmendmentRepository implements contract.AmendmentRepository using GORM.
// Clause payloads are stored as tagged JSON in the data column and decoded
// through the clause registry on the way out; a row whose payload fails to
// decode is returned with a nil Data so the resolvers can treat it as a data
// anomaly instead of failing the whole read.
type GormAmendmentRepository struct {
	db       *gorm.DB
	registry *contract.ClauseRegistry
	logger   *zap.Logger
}

// NewGormAmendmentRepository creates a new GormAmendmentRepository
func NewGormAmendmentRepository(db *gorm.DB, registry *contract.ClauseRegistry, logger *zap.Logger) *GormAmendmentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAmendmentRepository{db: db, registry: registry, logger: logger}
}

// FindByID finds an amendment (with clauses) by its ID
func (r *GormAmendmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Amendment, error) {
	var amendment contract.Amendment
	if err := r.db.WithContext(ctx).First(&amendment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadClauses(ctx, &amendment); err != nil {
		return nil, err
	}
	return &amendment, nil
}

// FindByContract returns all amendments of a contract, with clauses, ordered
// by effective date ascending
func (r *GormAmendmentRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]contract.Amendment, error) {
	var amendments []contract.Amendment
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("effective_date ASC").
		Find(&amendments).Error
	if err != nil {
		return nil, err
	}
	for i := range amendments {
		if err := r.loadClauses(ctx, &amendments[i]); err != nil {
			return nil, err
		}
	}
	return amendments, nil
}

// Save creates or updates an amendment together with its clauses
func (r *GormAmendmentRepository) Save(ctx context.Context, amendment *contract.Amendment) error {
	for i := range amendment.Clauses {
		if err := r.encodeClause(&amendment.Clauses[i]); err != nil {
			return err
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Clauses").Save(amendment).Error; err != nil {
			return err
		}
		// replace the clause set wholesale; amendments are small documents
		if err := tx.Where("amendment_id = ?", amendment.ID).Delete(&contract.Clause{}).Error; err != nil {
			return err
		}
		if len(amendment.Clauses) == 0 {
			return nil
		}
		return tx.Create(&amendment.Clauses).Error
	})
}

// Delete deletes an amendment and its clauses
func (r *GormAmendmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("amendment_id = ?", id).Delete(&contract.Clause{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&contract.Amendment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// loadClauses fetches and decodes the clauses of an amendment
func (r *GormAmendmentRepository) loadClauses(ctx context.Context, amendment *contract.Amendment) error {
	var clauses []contract.Clause
	err := r.db.WithContext(ctx).
		Where("amendment_id = ?", amendment.ID).
		Order("created_at ASC").
		Find(&clauses).Error
	if err != nil {
		return err
	}
	for i := range clauses {
		r.decodeClause(&clauses[i])
	}
	amendment.Clauses = clauses
	return nil
}

func (r *GormAmendmentRepository) encodeClause(c *contract.Clause) error {
	if c.Data == nil {
		if c.RawData == "" {
			c.RawData = "{}"
		}
		return nil
	}
	kind, raw, err := r.registry.Encode(c.Data)
	if err != nil {
		return err
	}
	c.ClauseKind = kind
	c.RawData = string(raw)
	return nil
}

func (r *GormAmendmentRepository) decodeClause(c *contract.Clause) {
	data, err := r.registry.Decode(c.ClauseKind, []byte(c.RawData))
	if err != nil {
		r.logger.Warn("Undecodable clause payload",
			zap.String("clause_id", c.ID.String()),
			zap.String("clause_kind", string(c.ClauseKind)),
			zap.Error(err))
		c.Data = nil
		return
	}
	c.Data = data
}

// Ensure GormAmendmentRepository implements AmendmentRepository
var _ contract.AmendmentRepository = (*GormAmendmentRepository)(nil)
