package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the address controllers.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]Summary, error)
	Get(ctx context.Context, userID, addressID uuid.UUID) (*Summary, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Summary, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateRequest) (*Summary, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}

type addressRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	FindByID(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error)
	Create(ctx context.Context, addr *models.Address) error
	Update(ctx context.Context, addr *models.Address, updates map[string]any) error
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}

type service struct {
	repo addressRepository
}

// NewService constructs the address service.
func NewService(repo addressRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Summary, error) {
	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	summaries := make([]Summary, 0, len(addresses))
	for i := range addresses {
		summaries = append(summaries, summarize(&addresses[i]))
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, userID, addressID uuid.UUID) (*Summary, error) {
	addr, err := s.find(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	summary := summarize(addr)
	return &summary, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Summary, error) {
	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		country = "MX"
	}

	addr := &models.Address{
		UserID:        userID,
		Alias:         strings.TrimSpace(req.Alias),
		Street:        strings.TrimSpace(req.Street),
		ExtNumber:     strings.TrimSpace(req.ExtNumber),
		IntNumber:     req.IntNumber,
		Neighborhood:  strings.TrimSpace(req.Neighborhood),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Country:       country,
		CrossStreets:  req.CrossStreets,
		ReferenceNote: req.ReferenceNote,
		IsPrimary:     req.IsPrimary,
		IsBilling:     req.IsBilling,
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
	}
	summary := summarize(addr)
	return &summary, nil
}

func (s *service) Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateRequest) (*Summary, error) {
	addr, err := s.find(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := buildUpdates(req)
	if len(updates) == 0 {
		summary := summarize(addr)
		return &summary, nil
	}

	if err := s.repo.Update(ctx, addr, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update address")
	}

	addr, err = s.find(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	summary := summarize(addr)
	return &summary, nil
}

func (s *service) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
	}
	return nil
}

func (s *service) find(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	addr, err := s.repo.FindByID(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}
	return addr, nil
}

func buildUpdates(req UpdateRequest) map[string]any {
	updates := map[string]any{}
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}
	setString("alias", req.Alias)
	setString("street", req.Street)
	setString("ext_number", req.ExtNumber)
	setString("neighborhood", req.Neighborhood)
	setString("city", req.City)
	setString("state", req.State)
	setString("postal_code", req.PostalCode)
	if req.IntNumber != nil {
		updates["int_number"] = req.IntNumber
	}
	if req.CrossStreets != nil {
		updates["cross_streets"] = req.CrossStreets
	}
	if req.ReferenceNote != nil {
		updates["reference_note"] = req.ReferenceNote
	}
	if req.IsPrimary != nil {
		updates["is_primary"] = *req.IsPrimary
	}
	if req.IsBilling != nil {
		updates["is_billing"] = *req.IsBilling
	}
	return updates
}
