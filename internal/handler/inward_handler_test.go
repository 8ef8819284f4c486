package handler_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hisaab/internal/domain"
	"hisaab/internal/handler"
	"hisaab/mocks"
)

func TestInwardHandler_Record(t *testing.T) {
	svc := new(mocks.MockInwardService)
	h := handler.NewInwardHandler(svc)

	svc.On("Record", mock.Anything, mock.AnythingOfType("service.RecordInwardInput")).
		Return(&domain.InwardSupply{ID: uuid.New(), Supplier: "Tata Steel"}, nil)

	body := []byte(`{"supplier":"Tata Steel","bill_number":"TS-9","value":"118000","supply_date":"2025-04-02"}`)
	c, w := newTestContext(http.MethodPost, "/api/v1/inward", bytes.NewReader(body))
	h.Record(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestInwardHandler_Record_MissingSupplier(t *testing.T) {
	svc := new(mocks.MockInwardService)
	h := handler.NewInwardHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/v1/inward", bytes.NewReader([]byte(`{"value":"10"}`)))
	h.Record(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestInwardHandler_Delete_InvalidID(t *testing.T) {
	svc := new(mocks.MockInwardService)
	h := handler.NewInwardHandler(svc)

	c, w := newTestContext(http.MethodDelete, "/api/v1/inward/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}

func TestInwardHandler_Export(t *testing.T) {
	svc := new(mocks.MockInwardService)
	h := handler.NewInwardHandler(svc)

	svc.On("Export", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "Date,Supplier\n")
		}).
		Return(nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/inward/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="inward_supplies_`)
	assert.Equal(t, "Date,Supplier\n", w.Body.String())
}
