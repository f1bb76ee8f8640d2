package services

import (
	"context"
	"strings"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// PropertyInput is the content of the add property form.
type PropertyInput struct {
	Address    string `label:"Address" validate:"required,max=500"`
	UnitNumber string `label:"Unit" validate:"max=50"`
	OwnerNotes string `label:"Notes"`
}

type PropertyService struct {
	props PropertyRepository
	log   logger.Logger
}

func NewPropertyService(props PropertyRepository, log logger.Logger) *PropertyService {
	if log == nil {
		log = logger.NewNop()
	}
	return &PropertyService{props: props, log: log}
}

func (s *PropertyService) Add(ctx context.Context, in PropertyInput) (*models.Property, error) {
	in.Address = strings.TrimSpace(in.Address)
	in.UnitNumber = strings.TrimSpace(in.UnitNumber)
	in.OwnerNotes = strings.TrimSpace(in.OwnerNotes)
	if err := Validate(&in); err != nil {
		return nil, err
	}

	p := &models.Property{Address: in.Address, UnitNumber: in.UnitNumber, OwnerNotes: in.OwnerNotes}
	if err := s.props.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("PropertyService", "property added", map[string]interface{}{"property_id": p.ID})
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	return s.props.Get(ctx, id)
}

func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	return s.props.List(ctx)
}
