package costcenters

// ListFilters collects the optional cost center listing filters.
type ListFilters struct {
	Search   string
	Type     string
	IsActive *bool
	Page     int
	Limit    int
}

// CreateCostCenterRequest is the POST /cost-centers payload.
type CreateCostCenterRequest struct {
	Code        string `json:"code" validate:"required,max=20"`
	Name        string `json:"name" validate:"required,max=120"`
	NameEn      string `json:"nameEn,omitempty" validate:"max=120"`
	Type        string `json:"type,omitempty" validate:"max=40"`
	ParentID    *int64 `json:"parentId,omitempty" validate:"omitempty,gt=0"`
	ManagerID   *int64 `json:"managerId,omitempty" validate:"omitempty,gt=0"`
	Description string `json:"description,omitempty"`
}

// UpdateCostCenterRequest is the PUT /cost-centers/{id} payload. Absent
// fields keep their stored value.
type UpdateCostCenterRequest struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=120"`
	NameEn      *string `json:"nameEn,omitempty" validate:"omitempty,max=120"`
	Type        *string `json:"type,omitempty" validate:"omitempty,max=40"`
	ParentID    *int64  `json:"parentId,omitempty" validate:"omitempty,gt=0"`
	ManagerID   *int64  `json:"managerId,omitempty" validate:"omitempty,gt=0"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
