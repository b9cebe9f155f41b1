package service_test

import (
	"context"
	"testing"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/internal/testhelpers"
	"github.com/ecosort/ecosort-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCenterService(db *gorm.DB) service.CenterService {
	return service.NewCenterService(repository.NewCenterRepository(db), nil)
}

func TestCreateAndGetCenter(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newCenterService(db)
	ctx := context.Background()

	created, err := svc.CreateCenter(ctx, dto.CreateCenterInput{
		Name:      "Green Point Depot",
		Latitude:  52.52,
		Longitude: 13.405,
		Address:   "1 Recycling Way",
		Phone:     " 555-0100 ",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "555-0100", created.Phone)

	got, err := svc.GetCenter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Point Depot", got.Name)
}

func TestCreateCenterSanitizesText(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newCenterService(db)

	created, err := svc.CreateCenter(context.Background(), dto.CreateCenterInput{
		Name:      `<b>Depot</b>`,
		Latitude:  1,
		Longitude: 1,
		Address:   `<img src=x onerror=alert(1)>Main Street`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Depot", created.Name)
	assert.Equal(t, "Main Street", created.Address)
}

func TestGetCenterUnknownID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newCenterService(db)

	_, err := svc.GetCenter(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSearchCentersFallsBackToDatabase(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newCenterService(db)
	ctx := context.Background()

	seed := func(name string) {
		_, err := svc.CreateCenter(ctx, dto.CreateCenterInput{Name: name, Latitude: 1, Longitude: 1})
		require.NoError(t, err)
	}
	seed("Harbor Recycling Center")
	seed("Harbor Glass Depot")
	seed("Uptown Drop-off")

	results, err := svc.SearchCenters(ctx, "harbor", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = svc.SearchCenters(ctx, "nothing-matches", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListCenters(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newCenterService(db)
	ctx := context.Background()

	_, err := svc.CreateCenter(ctx, dto.CreateCenterInput{Name: "A", Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	_, err = svc.CreateCenter(ctx, dto.CreateCenterInput{Name: "B", Latitude: 2, Longitude: 2})
	require.NoError(t, err)

	centers, err := svc.ListCenters(ctx)
	require.NoError(t, err)
	assert.Len(t, centers, 2)
}
