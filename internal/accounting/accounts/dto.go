package accounts

// ListFilters collects the optional account listing filters.
type ListFilters struct {
	Search          string
	AccountType     AccountType
	CategoryID      *int64
	IsActive        *bool
	ParentAccountID *int64
	Page            int
	Limit           int
}

// CreateAccountRequest is the POST /accounts payload.
type CreateAccountRequest struct {
	Code            string        `json:"code" validate:"required,max=20"`
	Name            string        `json:"name" validate:"required,max=200"`
	NameEn          string        `json:"nameEn" validate:"max=200"`
	CategoryID      int64         `json:"categoryId" validate:"required,gt=0"`
	ParentAccountID *int64        `json:"parentAccountId,omitempty" validate:"omitempty,gt=0"`
	AccountType     AccountType   `json:"accountType" validate:"required,oneof=asset liability equity revenue expense cogs"`
	NormalBalance   NormalBalance `json:"normalBalance" validate:"required,oneof=debit credit"`
	Description     string        `json:"description"`
}

// UpdateAccountRequest is the PUT /accounts/:id payload. Only supplied fields
// are persisted. Level is intentionally never recomputed here, even when the
// parent changes (legacy behavior kept on purpose).
type UpdateAccountRequest struct {
	Code            *string        `json:"code,omitempty" validate:"omitempty,min=1,max=20"`
	Name            *string        `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameEn          *string        `json:"nameEn,omitempty" validate:"omitempty,max=200"`
	CategoryID      *int64         `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	ParentAccountID *int64         `json:"parentAccountId,omitempty" validate:"omitempty,gt=0"`
	AccountType     *AccountType   `json:"accountType,omitempty" validate:"omitempty,oneof=asset liability equity revenue expense cogs"`
	NormalBalance   *NormalBalance `json:"normalBalance,omitempty" validate:"omitempty,oneof=debit credit"`
	Description     *string        `json:"description,omitempty"`
	IsActive        *bool          `json:"isActive,omitempty"`
}
