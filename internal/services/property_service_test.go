package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

func newPropertyFixture() (*PropertyService, *fakeWardRepo, *fakePropertyRepo) {
	wards := &fakeWardRepo{}
	props := &fakePropertyRepo{failOnIDs: map[string]error{}}
	return NewPropertyService(props, wards), wards, props
}

func TestCreateWardWithoutMohallas(t *testing.T) {
	svc, wards, _ := newPropertyFixture()

	ward, err := svc.CreateWard(context.Background(), &dtos.CreateWardRequest{
		CorporateName: "Varanasi",
		WardName:      "Ward A",
	})
	require.NoError(t, err)
	assert.NotNil(t, ward.Mohallas)
	assert.Empty(t, ward.Mohallas)
	require.Len(t, wards.wards, 1)
}

func TestCreateWardConflict(t *testing.T) {
	svc, wards, _ := newPropertyFixture()
	wards.wards = append(wards.wards, &models.Ward{
		ID: uuid.New(), CorporateName: "Varanasi", WardName: "Ward A", Mohallas: []string{},
	})

	_, err := svc.CreateWard(context.Background(), &dtos.CreateWardRequest{
		CorporateName: "Varanasi",
		WardName:      "Ward A",
	})
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
}

func TestCreatePropertyConflict(t *testing.T) {
	svc, _, props := newPropertyFixture()
	require.NoError(t, props.Create(context.Background(), &models.Property{
		ID: uuid.New(), PropertyID: "P-1",
	}))

	_, err := svc.CreateProperty(context.Background(), &dtos.CreatePropertyRequest{
		PropertyID: "P-1",
		WardID:     uuid.New(),
		OwnerName:  "Ram",
		Address:    "Addr 1",
	})
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
}
