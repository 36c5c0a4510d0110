package banners

import (
	"context"
	"testing"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Banner{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateAndListBanners(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateBannerInput{
		Title:    "Promoção de Cerveja",
		ImageURL: "https://cdn.example.com/cerveja.png",
		Position: 2,
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Promoção de Cerveja", first.Title)

	second, err := svc.Create(ctx, CreateBannerInput{
		Title:    "Combo do Fim de Semana",
		ImageURL: "https://cdn.example.com/combo.png",
		Position: 1,
		IsActive: true,
	})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by carousel position, not insertion.
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestListActiveHidesInactive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	shown, err := svc.Create(ctx, CreateBannerInput{
		Title:    "Ativo",
		ImageURL: "https://cdn.example.com/a.png",
		IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBannerInput{
		Title:    "Escondido",
		ImageURL: "https://cdn.example.com/b.png",
		IsActive: false,
	})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, shown.ID, active[0].ID)
}

func TestCreateBannerValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBannerInput{Title: "  ", ImageURL: "https://x"})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.Create(ctx, CreateBannerInput{Title: "Sem imagem", ImageURL: ""})
	require.NotNil(t, pkgerrors.As(err))
}

func TestUpdateBanner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	link := "https://loja.example.com/oferta"
	created, err := svc.Create(ctx, CreateBannerInput{
		Title:    "Oferta",
		ImageURL: "https://cdn.example.com/oferta.png",
		LinkURL:  &link,
		IsActive: true,
	})
	require.NoError(t, err)

	newTitle := "Oferta Relâmpago"
	inactive := false
	updated, err := svc.Update(ctx, created.ID, UpdateBannerInput{
		Title:     &newTitle,
		ClearLink: true,
		IsActive:  &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, "Oferta Relâmpago", updated.Title)
	require.Nil(t, updated.LinkURL)
	require.False(t, updated.IsActive)
}

func TestUpdateBannerNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateBannerInput{})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
	require.Equal(t, "banner não encontrado", coded.Message())
}

func TestDeleteBanner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBannerInput{
		Title:    "Temporário",
		ImageURL: "https://cdn.example.com/t.png",
		IsActive: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	err = svc.Delete(ctx, created.ID)
	require.NotNil(t, pkgerrors.As(err))
}
