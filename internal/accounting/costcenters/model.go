package costcenters

import "time"

// CostCenter groups journal activity by organisational unit. Journal lines
// reference cost centers optionally.
type CostCenter struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	NameEn      string     `json:"nameEn,omitempty"`
	Type        string     `json:"type,omitempty"`
	ParentID    *int64     `json:"parentId,omitempty"`
	ManagerID   *int64     `json:"managerId,omitempty"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}
