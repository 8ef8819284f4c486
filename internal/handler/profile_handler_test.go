package handler_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hisaab/internal/domain"
	"hisaab/internal/handler"
	"hisaab/internal/service"
	"hisaab/mocks"
)

func TestProfileHandler_Get_NotConfigured(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc)

	svc.On("Get", mock.Anything).Return(nil, domain.ErrProfileNotConfigured)

	c, w := newTestContext(http.MethodGet, "/api/v1/profile", nil)
	h.Get(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PROFILE_NOT_CONFIGURED", decodeResponse(t, w).Error.Code)
}

func TestProfileHandler_Update(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc)

	svc.On("Update", mock.Anything, mock.MatchedBy(func(in service.UpdateProfileInput) bool {
		return in.BusinessName == "Shree Traders" && in.GSTRegistered && in.GSTIN == "24aaacc1206d1zm"
	})).Return(&domain.SellerProfile{BusinessName: "Shree Traders", GSTIN: "24AAACC1206D1ZM", State: "Gujarat"}, nil)

	body := []byte(`{"business_name":"Shree Traders","gst_registered":true,"gstin":"24aaacc1206d1zm"}`)
	c, w := newTestContext(http.MethodPut, "/api/v1/profile", bytes.NewReader(body))
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gstin":"24AAACC1206D1ZM"`)
	svc.AssertExpectations(t)
}

func TestProfileHandler_Update_MissingName(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc)

	c, w := newTestContext(http.MethodPut, "/api/v1/profile", bytes.NewReader([]byte(`{"gstin":"24AAACC1206D1ZM"}`)))
	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
