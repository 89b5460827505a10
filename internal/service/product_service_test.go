package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-catalog-api/internal/apierror"
	"go-catalog-api/internal/audit"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"
)

func newProductService(t *testing.T) (ProductService, UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	recorder := audit.NewRecorder(log)
	hub := ws.NewHub(log)
	userRepo := repository.NewUserRepo(db, recorder)
	productRepo := repository.NewProductRepo(db, recorder)
	return NewProductService(productRepo, userRepo, hub, log),
		NewUserService(userRepo, hub, log),
		db
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func productRequest(name, userID string) *ProductRequest {
	return &ProductRequest{
		Name:       name,
		Categories: "Frutas",
		Quantity:   intp(10),
		Price:      floatp(2.5),
		UserID:     userID,
	}
}

func seedUser(t *testing.T, users UserService, id string) {
	t.Helper()
	_, err := users.Save(context.Background(), userRequest(id))
	require.NoError(t, err)
}

func TestProductSaveRequiresExistingUser(t *testing.T) {
	products, _, _ := newProductService(t)

	_, err := products.Save(context.Background(), productRequest("Maçã", "missing"))

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, []string{"Usuário não encontrado"}, apiErr.Messages)
}

func TestProductSaveRejectsNegativeQuantity(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")

	req := productRequest("Maçã", "1")
	req.Quantity = intp(-1)

	_, err := products.Save(context.Background(), req)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Messages, "A quantidade não pode ser negativa")
}

func TestProductSaveRejectsNegativePrice(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")

	req := productRequest("Maçã", "1")
	req.Price = floatp(-0.5)

	_, err := products.Save(context.Background(), req)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Messages, "O valor não pode ser negativo")
}

func TestProductSaveRejectsUnknownCategory(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")

	req := productRequest("Maçã", "1")
	req.Categories = "Eletrônicos"

	_, err := products.Save(context.Background(), req)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, []string{"Categoria inválida: Eletrônicos"}, apiErr.Messages)
}

func TestProductSaveAcceptsCategoryCaseInsensitively(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")

	req := productRequest("Maçã", "1")
	req.Categories = "frutas"

	saved, err := products.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Frutas", saved.Categories)
}

func TestProductSaveNameConflictIsCaseInsensitive(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")
	ctx := context.Background()

	_, err := products.Save(ctx, productRequest("Banana Prata", "1"))
	require.NoError(t, err)

	_, err = products.Save(ctx, productRequest("BANANA PRATA", "1"))
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
	assert.Equal(t, []string{"Já existe um produto cadastrado com o nome: BANANA PRATA"}, apiErr.Messages)
}

func TestProductSaveDescriptionConflict(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")
	ctx := context.Background()

	first := productRequest("Maçã", "1")
	first.Description = "Fruta fresca"
	_, err := products.Save(ctx, first)
	require.NoError(t, err)

	second := productRequest("Banana", "1")
	second.Description = "fruta FRESCA"
	_, err = products.Save(ctx, second)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
}

func TestProductRoundTripAndImages(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")
	ctx := context.Background()

	req := productRequest("Maçã", "1")
	req.Description = "Fruta fresca"
	req.Images = []string{"/product-images/maca.png"}

	saved, err := products.Save(ctx, req)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID, "identifier is system-generated")

	found, err := products.FindByID(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, *saved, *found)

	images, err := products.Images(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/product-images/maca.png"}, images)
}

func TestProductFindByUser(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")
	seedUser(t, users, "2")
	ctx := context.Background()

	_, err := products.Save(ctx, productRequest("Maçã", "1"))
	require.NoError(t, err)
	_, err = products.Save(ctx, productRequest("Banana", "2"))
	require.NoError(t, err)

	owned, err := products.FindByUser("1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Maçã", owned[0].Name)
}

func TestProductUpdatePreservesCreationTimestamp(t *testing.T) {
	products, users, db := newProductService(t)
	seedUser(t, users, "1")
	ctx := context.Background()

	saved, err := products.Save(ctx, productRequest("Maçã", "1"))
	require.NoError(t, err)

	var before model.Product
	require.NoError(t, db.First(&before, "id = ?", saved.ID).Error)

	update := productRequest("Maçã Verde", "1")
	updated, err := products.Update(ctx, saved.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Maçã Verde", updated.Name)

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", saved.ID).Error)
	assert.Equal(t, before.CreateDate.Unix(), after.CreateDate.Unix())
	require.NotNil(t, after.UpdateDate)
}

func TestProductUpdateNotFound(t *testing.T) {
	products, users, _ := newProductService(t)
	seedUser(t, users, "1")

	_, err := products.Update(context.Background(), 9999, productRequest("Maçã", "1"))

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, []string{"Produto não encontrado"}, apiErr.Messages)
}

func TestProductDeleteAppendsDeleteRevision(t *testing.T) {
	products, users, db := newProductService(t)
	seedUser(t, users, "1")
	ctx := context.Background()

	saved, err := products.Save(ctx, productRequest("Maçã", "1"))
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, saved.ID))

	_, err = products.FindByID(saved.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)

	var snapshots []model.ProductAudit
	require.NoError(t, db.Where("id = ?", saved.ID).Order("rev").Find(&snapshots).Error)
	require.Len(t, snapshots, 2)
	assert.Equal(t, model.RevTypeAdd, snapshots[0].RevType)
	assert.Equal(t, model.RevTypeDel, snapshots[1].RevType)
}
