package catalog

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/angelmondragon/gestion-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/pagination"
)

const (
	// MinSearchLength is the shortest query, in runes, that reaches the store.
	MinSearchLength    = 2
	defaultSearchLimit = 10
)

// Service answers product search, listing and price queries.
type Service interface {
	Search(ctx context.Context, query string) ([]ProductSummary, error)
	List(ctx context.Context, params pagination.Params) (*ProductPage, error)
	Price(ctx context.Context, productID int64) (*ProductPrice, error)
}

type service struct {
	repo        Repository
	searchLimit int
}

// NewService builds the catalog service. A non-positive searchLimit uses the default of 10.
func NewService(repo Repository, searchLimit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	return &service{repo: repo, searchLimit: searchLimit}, nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductSummary, error) {
	if utf8.RuneCountInString(query) < MinSearchLength {
		return []ProductSummary{}, nil
	}
	products, err := s.repo.SearchActive(ctx, query, s.searchLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return summariesFromModels(products), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ProductPage, error) {
	params = params.Normalize()

	total, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	products, err := s.repo.ListActive(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	return &ProductPage{
		Products:   summariesFromModels(products),
		Count:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: pagination.TotalPages(total, params.PageSize),
	}, nil
}

func (s *service) Price(ctx context.Context, productID int64) (*ProductPrice, error) {
	product, err := s.repo.FindActiveByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &ProductPrice{
		Price: product.Price().StringFixed(2),
		Name:  product.Name,
	}, nil
}
