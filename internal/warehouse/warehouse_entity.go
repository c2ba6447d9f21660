package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a read model owned by the fleet-operations side of the system.
// Payroll only cares about ZoneRequired: when set, a route without a zone is
// excluded from computation and reported instead of being paid.
type Warehouse struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(120);not null"`
	ZoneRequired bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Zone struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(120);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
