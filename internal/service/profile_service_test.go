package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hisaab/internal/domain"
	"hisaab/internal/service"
	"hisaab/mocks"
)

func TestProfileService_Update_Normalizes(t *testing.T) {
	repo := new(mocks.MockProfileRepo)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SellerProfile")).Return(nil)

	svc := service.NewProfileService(repo)
	p, err := svc.Update(context.Background(), service.UpdateProfileInput{
		BusinessName:  "  Shree Traders ",
		GSTRegistered: true,
		GSTIN:         " 24aaacc1206d1zm",
		IFSC:          "sbin0001234",
		Theme:         "neon",
	})
	require.NoError(t, err)

	assert.Equal(t, "Shree Traders", p.BusinessName)
	assert.Equal(t, "24AAACC1206D1ZM", p.GSTIN)
	assert.Equal(t, "Gujarat", p.State)
	assert.Equal(t, "SBIN0001234", p.IFSC)
	assert.Equal(t, "modern", p.Theme)
	repo.AssertExpectations(t)
}

func TestProfileService_Update_UnregisteredDropsGSTIN(t *testing.T) {
	repo := new(mocks.MockProfileRepo)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	p, err := service.NewProfileService(repo).Update(context.Background(), service.UpdateProfileInput{
		BusinessName: "Corner Kirana",
		GSTIN:        "24AAACC1206D1ZM",
		PAN:          "abcde1234f",
		State:        "Gujarat",
	})
	require.NoError(t, err)
	assert.Empty(t, p.GSTIN)
	assert.Equal(t, "ABCDE1234F", p.PAN)
}

func TestProfileService_Update_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input service.UpdateProfileInput
	}{
		{"registered without gstin", service.UpdateProfileInput{BusinessName: "X", GSTRegistered: true, State: "Gujarat"}},
		{"bad mobile", service.UpdateProfileInput{BusinessName: "X", State: "Gujarat", Mobile: "12345"}},
		{"bad ifsc", service.UpdateProfileInput{BusinessName: "X", State: "Gujarat", IFSC: "SBIN1234"}},
		{"unknown gstin state", service.UpdateProfileInput{BusinessName: "X", GSTRegistered: true, GSTIN: "99AAACC1206D1ZM", State: "Gujarat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockProfileRepo)
			_, err := service.NewProfileService(repo).Update(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidProfile)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestProfileService_Get_NotConfigured(t *testing.T) {
	repo := new(mocks.MockProfileRepo)
	repo.On("Get", mock.Anything).Return(nil, domain.ErrProfileNotConfigured)

	_, err := service.NewProfileService(repo).Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrProfileNotConfigured)
}
