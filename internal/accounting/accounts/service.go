package accounts

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

// List returns a page of accounts with their category, parent, children count
// and running balance, ordered by code.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]AccountSummary, internalShared.Pagination, error) {
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

func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	if id <= 0 {
		return Account{}, shared.ErrAccountNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create inserts a new account. The level is derived from the parent at
// creation time and stays fixed afterwards.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (int64, error) {
	code := strings.TrimSpace(req.Code)
	inUse, err := s.repo.CodeInUse(ctx, code, 0)
	if err != nil {
		return 0, err
	}
	if inUse {
		return 0, shared.ErrDuplicateCode
	}

	level := 1
	if req.ParentAccountID != nil {
		parent, err := s.repo.Get(ctx, *req.ParentAccountID)
		if err != nil {
			return 0, err
		}
		level = parent.Level + 1
	}

	return s.repo.Create(ctx, Account{
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		NameEn:          strings.TrimSpace(req.NameEn),
		CategoryID:      req.CategoryID,
		ParentAccountID: req.ParentAccountID,
		AccountType:     req.AccountType,
		NormalBalance:   req.NormalBalance,
		Level:           level,
		IsActive:        true,
		Description:     req.Description,
	})
}

// Update applies the supplied fields to an existing active account. The level
// is not recomputed when the parent changes; the hierarchy depth is fixed at
// creation time.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAccountRequest) error {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code != account.Code {
			inUse, err := s.repo.CodeInUse(ctx, code, id)
			if err != nil {
				return err
			}
			if inUse {
				return shared.ErrDuplicateCode
			}
			account.Code = code
		}
	}
	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.NameEn != nil {
		account.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if req.CategoryID != nil {
		account.CategoryID = *req.CategoryID
	}
	if req.ParentAccountID != nil {
		account.ParentAccountID = req.ParentAccountID
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.NormalBalance != nil {
		account.NormalBalance = *req.NormalBalance
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, account)
}

// Delete soft-deletes the account, freeing its code for reuse.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrAccountNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}
