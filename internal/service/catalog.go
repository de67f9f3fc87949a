package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/repo"
	"github.com/Skotchmaster/bargain_shop/internal/search"
	"github.com/Skotchmaster/bargain_shop/internal/storage"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Images storage.ImageStore
	Search search.Index
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "Product not found")
	}
	return p, err
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListAllProducts(ctx)
}

func (s *CatalogService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	return s.Repo.ListVendorProducts(ctx, vendorID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, vendorID uuid.UUID, in transport.ProductInput, files []*multipart.FileHeader) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fail(ErrValidation, "Product name is required")
	}
	prod := &models.Product{VendorID: vendorID, Images: []string{}}
	if err := applyProductInput(prod, in); err != nil {
		return nil, err
	}

	paths, err := s.saveImages(ctx, files)
	if err != nil {
		return nil, err
	}
	if paths != nil {
		prod.Images = paths
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		s.dropImages(ctx, l, paths)
		return nil, err
	}

	s.afterWrite(ctx, l, "product_created", prod)
	return prod, nil
}

// UpdateProduct applies only the supplied fields. Images are replaced only when new files arrive.
func (s *CatalogService) UpdateProduct(ctx context.Context, vendorID, id uuid.UUID, in transport.ProductInput, files []*multipart.FileHeader) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product")

	prod, err := s.Repo.GetVendorProduct(ctx, id, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fail(ErrValidation, "Product name is required")
	}
	if err := applyProductInput(prod, in); err != nil {
		return nil, err
	}

	paths, err := s.saveImages(ctx, files)
	if err != nil {
		return nil, err
	}
	var replaced []string
	if len(paths) > 0 {
		replaced, prod.Images = prod.Images, paths
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		s.dropImages(ctx, l, paths)
		return nil, err
	}
	s.dropImages(ctx, l, replaced)

	s.afterWrite(ctx, l, "product_updated", prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, vendorID, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product")

	prod, err := s.Repo.GetVendorProduct(ctx, id, vendorID)
	if err == nil {
		err = s.Repo.DeleteVendorProduct(ctx, id, vendorID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ErrNotFound, "Product not found")
		}
		return err
	}
	s.dropImages(ctx, l, prod.Images)

	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			l.Error("search_delete_error", "product_id", id, "error", err)
		}
	}
	publish(ctx, l, s.Events, events.TopicProducts, id.String(), map[string]any{
		"type":      "product_deleted",
		"productId": id,
		"vendorId":  vendorID,
	})
	return nil
}

// SearchProducts pages through the search index. from/size are already clamped.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, from, size int) (int64, []search.ProductDoc, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fail(ErrValidation, "Query is required")
	}
	if from < 0 || from > search.MaxResultWindow-size {
		return 0, nil, fail(ErrValidation, "Page is out of range")
	}
	if s.Search == nil {
		return 0, nil, search.ErrDisabled
	}
	return s.Search.Search(ctx, q, from, size)
}

func (s *CatalogService) saveImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if s.Images == nil {
		return nil, errors.New("image store is not configured")
	}

	paths, err := storage.SaveAll(ctx, s.Images, files)
	switch {
	case errors.Is(err, storage.ErrTooManyImages), errors.Is(err, storage.ErrUnsupportedFormat):
		return nil, fail(ErrValidation, "%s", err.Error())
	case err != nil:
		return nil, err
	}
	return paths, nil
}

// dropImages removes stored files no product points at any more. Failures only leave orphans behind.
func (s *CatalogService) dropImages(ctx context.Context, l *slog.Logger, refs []string) {
	if len(refs) == 0 || s.Images == nil {
		return
	}
	if err := storage.DeleteAll(ctx, s.Images, refs); err != nil {
		l.Error("image_delete_error", "error", err)
	}
}

// afterWrite refreshes the search document and announces the change.
func (s *CatalogService) afterWrite(ctx context.Context, l *slog.Logger, kind string, prod *models.Product) {
	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, prod); err != nil {
			l.Error("search_index_error", "product_id", prod.ID, "error", err)
		}
	}
	publish(ctx, l, s.Events, events.TopicProducts, prod.ID.String(), map[string]any{
		"type":      kind,
		"productId": prod.ID,
		"vendorId":  prod.VendorID,
		"name":      prod.Name,
		"price":     prod.Price,
		"stock":     prod.Stock,
	})
}

func applyProductInput(prod *models.Product, in transport.ProductInput) error {
	if in.Price != nil && in.Price.IsNegative() {
		return fail(ErrValidation, "Price must be >= 0")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return fail(ErrValidation, "Stock must be >= 0")
	}

	if in.Name != nil {
		prod.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		prod.Description = *in.Description
	}
	if in.Category != nil {
		prod.Category = *in.Category
	}
	if in.Price != nil {
		prod.Price = *in.Price
	}
	if in.Stock != nil {
		prod.Stock = *in.Stock
	}
	return nil
}
