package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/media"
)

func images(names ...string) []media.Image {
	out := make([]media.Image, 0, len(names))
	for _, n := range names {
		out = append(out, media.Image{Filename: n, Body: strings.NewReader(n)})
	}
	return out
}

var validForm = ProductForm{
	Name:        "Trail Runner",
	Description: "Lightweight shoe",
	Category:    "Shoes",
	Price:       "120",
	OfferPrice:  "99.50",
}

func TestCreateProduct_UploadsThenStores(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)
	sf.uploader.On("Upload", mock.Anything, "a.png").Return("https://cdn/a.png", nil)
	sf.uploader.On("Upload", mock.Anything, "b.png").Return("https://cdn/b.png", nil)

	p, err := sf.catalog.CreateProduct(ctx, "admin-1", validForm, images("a.png", "b.png"))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/b.png"}, p.Images)
	assert.Equal(t, "admin-1", p.CreatedBy)
	assert.Equal(t, "99.5", p.OfferPrice.String())

	got, err := sf.catalog.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Runner", got.Name)

	list, err := sf.catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateProduct_UploadFailureAborts(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)
	sf.uploader.On("Upload", mock.Anything, "a.png").Return("https://cdn/a.png", nil).Maybe()
	sf.uploader.On("Upload", mock.Anything, "b.png").Return("", errors.New("cdn down"))

	_, err := sf.catalog.CreateProduct(ctx, "admin-1", validForm, images("a.png", "b.png"))

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errx.KindCollaborator, appErr.Kind)

	list, err := sf.catalog.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)

	_, err := sf.catalog.CreateProduct(ctx, "admin", validForm, nil)
	assert.ErrorIs(t, err, ErrNoImages)

	_, err = sf.catalog.CreateProduct(ctx, "admin", validForm, images("1", "2", "3", "4", "5"))
	assert.ErrorIs(t, err, ErrTooManyImages)

	cases := []struct {
		mutate func(f *ProductForm)
		want   error
	}{
		{func(f *ProductForm) { f.Name = " " }, ErrProductFields},
		{func(f *ProductForm) { f.Description = "" }, ErrProductFields},
		{func(f *ProductForm) { f.Category = "Groceries" }, ErrBadCategory},
		{func(f *ProductForm) { f.Price = "" }, ErrBadPrice},
		{func(f *ProductForm) { f.Price = "0" }, ErrBadPrice},
		{func(f *ProductForm) { f.Price = "abc" }, ErrBadPrice},
		{func(f *ProductForm) { f.OfferPrice = "-1" }, ErrBadOfferPrice},
	}
	for _, c := range cases {
		form := validForm
		c.mutate(&form)
		_, err := sf.catalog.CreateProduct(ctx, "admin", form, images("a.png"))
		assert.ErrorIs(t, err, c.want)
	}
	sf.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestParseProductForm_Defaults(t *testing.T) {
	in, err := parseProductForm(ProductForm{Name: "Tee", Description: "Cotton", Price: "20"})
	require.NoError(t, err)
	assert.Equal(t, "Clothing", in.Category)
	assert.True(t, in.OfferPrice.Equal(in.Price))
}

func TestCatalogGet_Missing(t *testing.T) {
	sf := newStorefront(t)
	_, err := sf.catalog.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
