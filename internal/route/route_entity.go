package route

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const StatusCompleted = "COMPLETED"

// CompletedRoute is the payroll-facing read model of a delivery route that
// reached its terminal state. The route lifecycle (creation, assignment,
// claiming, completion) lives upstream; payroll never mutates these rows.
type CompletedRoute struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ZoneID      *uuid.UUID `gorm:"type:uuid;index"`
	DriverID    uuid.UUID  `gorm:"type:uuid;not null;index"`

	RouteDate time.Time `gorm:"type:date;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"`

	DeliveryStops int             `gorm:"not null;default:0"`
	PackageVolume int             `gorm:"not null;default:0"`
	DistanceMiles decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	CNLCount      int             `gorm:"not null;default:0"`
	RescueStops   int             `gorm:"not null;default:0"`
	HoursWorked   decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	IsNightRoute  bool            `gorm:"not null;default:false"`

	Packages []RoutePackage `gorm:"foreignKey:RouteID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompletedRoute) TableName() string {
	return "routes"
}

// RoutePackage carries the per-package weight figures weight-extra rules are
// evaluated against.
type RoutePackage struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RouteID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	WeightKg decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
}

func (RoutePackage) TableName() string {
	return "route_packages"
}
