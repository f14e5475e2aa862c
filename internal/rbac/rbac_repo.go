package rbac

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListRolePermissions(ctx context.Context) ([]RolePermission, error)
	SeedRolePermissions(ctx context.Context, rows []RolePermission) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type RolePermission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"uniqueIndex:uq_role_permission;not null"`
	Resource string    `gorm:"uniqueIndex:uq_role_permission;not null"`
	Action   string    `gorm:"uniqueIndex:uq_role_permission;not null"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

func (r *repository) ListRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.WithContext(ctx).
		Order("role, resource, action").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SeedRolePermissions(ctx context.Context, rows []RolePermission) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
