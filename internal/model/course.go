package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Course represents a course owned by a single user.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:course"`

	ID              int64     `bun:"id,pk,autoincrement"`
	Title           string    `bun:"title,notnull" validate:"required,notblank" label:"Title"`
	Description     string    `bun:"description,notnull" validate:"required,notblank" label:"Description"`
	EstimatedTime   *string   `bun:"estimated_time"`
	MaterialsNeeded *string   `bun:"materials_needed"`
	UserID          int64     `bun:"user_id,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	User *User `bun:"rel:belongs-to,join:user_id=id" validate:"-"`
}
