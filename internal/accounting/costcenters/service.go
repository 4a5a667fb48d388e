package costcenters

import (
	"context"
	"strings"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
	internalShared "github.com/atelier-erp/atelier-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]CostCenter, internalShared.Pagination, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, internalShared.Pagination{}, err
	}
	return items, internalShared.NewPagination(filters.Page, filters.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (CostCenter, error) {
	if id <= 0 {
		return CostCenter{}, shared.ErrCostCenterNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCostCenterRequest) (int64, error) {
	code := strings.TrimSpace(req.Code)
	inUse, err := s.repo.CodeInUse(ctx, code, 0)
	if err != nil {
		return 0, err
	}
	if inUse {
		return 0, shared.ErrDuplicateCode
	}

	return s.repo.Create(ctx, CostCenter{
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		NameEn:      strings.TrimSpace(req.NameEn),
		Type:        req.Type,
		ParentID:    req.ParentID,
		ManagerID:   req.ManagerID,
		Description: req.Description,
		IsActive:    true,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCostCenterRequest) error {
	cc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code != cc.Code {
			inUse, err := s.repo.CodeInUse(ctx, code, id)
			if err != nil {
				return err
			}
			if inUse {
				return shared.ErrDuplicateCode
			}
			cc.Code = code
		}
	}
	if req.Name != nil {
		cc.Name = strings.TrimSpace(*req.Name)
	}
	if req.NameEn != nil {
		cc.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if req.Type != nil {
		cc.Type = *req.Type
	}
	if req.ParentID != nil {
		cc.ParentID = req.ParentID
	}
	if req.ManagerID != nil {
		cc.ManagerID = req.ManagerID
	}
	if req.Description != nil {
		cc.Description = *req.Description
	}
	if req.IsActive != nil {
		cc.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, cc)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrCostCenterNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}
