package service

import (
	"context"
	"errors"
	"fmt"

	"fundchamps/internal/dto"
	"fundchamps/internal/model"
	"fundchamps/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSponsorNotFound   = errors.New("sponsor not found")
	ErrInvalidTransition = errors.New("sponsor is not pending")
	ErrInvalidSponsor    = errors.New("invalid sponsor request")
)

type SponsorService interface {
	CreatePledge(ctx context.Context, req *dto.SponsorRequest) (*dto.SponsorResponse, error)
	List(ctx context.Context, status string) ([]dto.SponsorResponse, error)
	Approve(ctx context.Context, sponsorUUID string) error
	Reject(ctx context.Context, sponsorUUID string) error
	Delete(ctx context.Context, sponsorUUID string) error
}

type sponsorServiceImpl struct {
	db          *gorm.DB
	sponsorRepo repository.SponsorRepository
}

func NewSponsorService(db *gorm.DB, sponsorRepo repository.SponsorRepository) SponsorService {
	return &sponsorServiceImpl{
		db:          db,
		sponsorRepo: sponsorRepo,
	}
}

// CreatePledge records an offline pledge from the sponsorship form. It stays
// pending until an administrator approves it or a payment webhook confirms it.
func (s *sponsorServiceImpl) CreatePledge(ctx context.Context, req *dto.SponsorRequest) (*dto.SponsorResponse, error) {
	if req.Name == "" || req.Amount <= 0 {
		return nil, ErrInvalidSponsor
	}

	sponsor := &model.Sponsor{
		UUID:        uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		AmountCents: int64(req.Amount),
		Status:      model.SponsorStatusPending,
		Message:     req.Message,
	}
	if err := s.sponsorRepo.Create(ctx, s.db, sponsor); err != nil {
		return nil, fmt.Errorf("create sponsor: %w", err)
	}

	resp := sponsorResponse(sponsor)
	return &resp, nil
}

func (s *sponsorServiceImpl) List(ctx context.Context, status string) ([]dto.SponsorResponse, error) {
	sponsors, err := s.sponsorRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}

	out := make([]dto.SponsorResponse, 0, len(sponsors))
	for i := range sponsors {
		out = append(out, sponsorResponse(&sponsors[i]))
	}
	return out, nil
}

// Approve moves a pending sponsor to approved. The ledger total is written
// only by the webhook reconciler, so an offline approval shows up in the
// sponsor sum but never double-books a later payment confirmation.
func (s *sponsorServiceImpl) Approve(ctx context.Context, sponsorUUID string) error {
	return s.transition(ctx, sponsorUUID, model.SponsorStatusApproved)
}

func (s *sponsorServiceImpl) Reject(ctx context.Context, sponsorUUID string) error {
	return s.transition(ctx, sponsorUUID, model.SponsorStatusRejected)
}

func (s *sponsorServiceImpl) transition(ctx context.Context, sponsorUUID, to string) error {
	if _, err := s.sponsorRepo.FindByUUID(ctx, sponsorUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSponsorNotFound
		}
		return fmt.Errorf("find sponsor: %w", err)
	}

	ok, err := s.sponsorRepo.UpdateStatus(ctx, sponsorUUID, model.SponsorStatusPending, to)
	if err != nil {
		return fmt.Errorf("update sponsor status: %w", err)
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *sponsorServiceImpl) Delete(ctx context.Context, sponsorUUID string) error {
	ok, err := s.sponsorRepo.SoftDelete(ctx, sponsorUUID)
	if err != nil {
		return fmt.Errorf("soft delete sponsor: %w", err)
	}
	if !ok {
		return ErrSponsorNotFound
	}
	return nil
}

func sponsorResponse(sponsor *model.Sponsor) dto.SponsorResponse {
	return dto.SponsorResponse{
		UUID:      sponsor.UUID,
		Name:      sponsor.Name,
		Email:     sponsor.Email,
		Amount:    sponsor.AmountCents,
		Status:    sponsor.Status,
		Message:   sponsor.Message,
		CreatedAt: sponsor.CreatedAt,
	}
}
