package service

import (
	"context"
	"errors"
	"testing"

	"fundchamps/internal/dto"
	"fundchamps/internal/model"
	"fundchamps/internal/repository"
)

func TestCreatePledgeRejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewSponsorService(db, repository.NewSponsorRepository(db))

	_, err := svc.CreatePledge(context.Background(), &dto.SponsorRequest{Name: "", Amount: 1000})
	if !errors.Is(err, ErrInvalidSponsor) {
		t.Fatalf("missing name: expected ErrInvalidSponsor, got %v", err)
	}

	_, err = svc.CreatePledge(context.Background(), &dto.SponsorRequest{Name: "Acme", Amount: 0})
	if !errors.Is(err, ErrInvalidSponsor) {
		t.Fatalf("zero amount: expected ErrInvalidSponsor, got %v", err)
	}
}

func TestApproveTransitionsPendingSponsor(t *testing.T) {
	db := newTestDB(t)
	svc := NewSponsorService(db, repository.NewSponsorRepository(db))

	resp, err := svc.CreatePledge(context.Background(), &dto.SponsorRequest{Name: "Acme", Amount: 10000, Message: "go team"})
	if err != nil {
		t.Fatalf("CreatePledge returned error: %v", err)
	}
	if resp.Status != model.SponsorStatusPending {
		t.Fatalf("new pledge status: got %q, want pending", resp.Status)
	}

	if err := svc.Approve(context.Background(), resp.UUID); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	var sponsor model.Sponsor
	if err := db.Where("uuid = ?", resp.UUID).First(&sponsor).Error; err != nil {
		t.Fatalf("load sponsor: %v", err)
	}
	if sponsor.Status != model.SponsorStatusApproved {
		t.Fatalf("sponsor status: got %q, want approved", sponsor.Status)
	}
}

func TestApproveRejectsNonPendingSponsor(t *testing.T) {
	db := newTestDB(t)
	svc := NewSponsorService(db, repository.NewSponsorRepository(db))

	approved := &model.Sponsor{UUID: "sp-approved", Name: "Done", Status: model.SponsorStatusApproved}
	if err := db.Create(approved).Error; err != nil {
		t.Fatalf("seed sponsor: %v", err)
	}

	err := svc.Reject(context.Background(), "sp-approved")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApproveUnknownSponsor(t *testing.T) {
	db := newTestDB(t)
	svc := NewSponsorService(db, repository.NewSponsorRepository(db))

	err := svc.Approve(context.Background(), "nope")
	if !errors.Is(err, ErrSponsorNotFound) {
		t.Fatalf("expected ErrSponsorNotFound, got %v", err)
	}
}

func TestDeleteSoftDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := NewSponsorService(db, repository.NewSponsorRepository(db))

	sponsor := &model.Sponsor{UUID: "sp-del", Name: "Gone", Status: model.SponsorStatusApproved}
	if err := db.Create(sponsor).Error; err != nil {
		t.Fatalf("seed sponsor: %v", err)
	}

	if err := svc.Delete(context.Background(), "sp-del"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	// The row stays in storage, flagged deleted.
	var stored model.Sponsor
	if err := db.Where("uuid = ?", "sp-del").First(&stored).Error; err != nil {
		t.Fatalf("load sponsor: %v", err)
	}
	if !stored.Deleted {
		t.Fatalf("sponsor should be soft deleted")
	}

	listed, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("deleted sponsor should not be listed: %+v", listed)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewSponsorService(db, repository.NewSponsorRepository(db))

	for _, s := range []*model.Sponsor{
		{UUID: "sp-1", Name: "P", Status: model.SponsorStatusPending},
		{UUID: "sp-2", Name: "A", Status: model.SponsorStatusApproved},
	} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed sponsor: %v", err)
		}
	}

	pending, err := svc.List(context.Background(), model.SponsorStatusPending)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "P" {
		t.Fatalf("pending filter mismatch: %+v", pending)
	}
}
