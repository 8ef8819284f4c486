package service

import (
	"context"
	"strings"

	"hisaab/internal/domain"
	"hisaab/internal/gst"
	"hisaab/internal/invoicepdf"
	"hisaab/internal/port"
	"hisaab/internal/validator"
)

// UpdateProfileInput is the DTO for replacing the seller profile.
type UpdateProfileInput struct {
	BusinessName  string `json:"business_name" binding:"required"`
	Tagline       string `json:"tagline"`
	GSTRegistered bool   `json:"gst_registered"`
	GSTIN         string `json:"gstin"`
	PAN           string `json:"pan"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2"`
	District      string `json:"district"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	Theme         string `json:"theme"`
	BankName      string `json:"bank_name"`
	BankBranch    string `json:"bank_branch"`
	AccountNo     string `json:"account_no"`
	IFSC          string `json:"ifsc"`
	UPI           string `json:"upi"`
	LogoKey       string `json:"logo_key"`
	SignatureKey  string `json:"signature_key"`
}

// ProfileService manages the seller profile.
type ProfileService interface {
	Get(ctx context.Context) (*domain.SellerProfile, error)
	Update(ctx context.Context, input UpdateProfileInput) (*domain.SellerProfile, error)
}

type profileService struct {
	repo port.ProfileRepository
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(repo port.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context) (*domain.SellerProfile, error) {
	return s.repo.Get(ctx)
}

func (s *profileService) Update(ctx context.Context, input UpdateProfileInput) (*domain.SellerProfile, error) {
	p := &domain.SellerProfile{
		BusinessName:  strings.TrimSpace(input.BusinessName),
		Tagline:       strings.TrimSpace(input.Tagline),
		GSTRegistered: input.GSTRegistered,
		GSTIN:         upper(input.GSTIN),
		PAN:           upper(input.PAN),
		Address1:      strings.TrimSpace(input.Address1),
		Address2:      strings.TrimSpace(input.Address2),
		District:      strings.TrimSpace(input.District),
		State:         strings.TrimSpace(input.State),
		Pincode:       strings.TrimSpace(input.Pincode),
		Mobile:        strings.TrimSpace(input.Mobile),
		Email:         strings.TrimSpace(input.Email),
		Theme:         string(invoicepdf.ParseTheme(input.Theme)),
		BankName:      strings.TrimSpace(input.BankName),
		BankBranch:    strings.TrimSpace(input.BankBranch),
		AccountNo:     strings.TrimSpace(input.AccountNo),
		IFSC:          upper(input.IFSC),
		UPI:           strings.TrimSpace(input.UPI),
		LogoKey:       strings.TrimSpace(input.LogoKey),
		SignatureKey:  strings.TrimSpace(input.SignatureKey),
	}
	if !p.GSTRegistered {
		p.GSTIN = ""
	}
	if p.State == "" && validator.GSTIN(p.GSTIN) {
		p.State = gst.StateName(p.GSTIN[:2])
	}

	if err := validator.Profile(p); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
