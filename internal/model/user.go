package model

import (
	"time"

	"github.com/uptrace/bun"
)

// User represents a registered account. Password holds the one-way hash,
// never the plain text.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	FirstName    string    `bun:"first_name,notnull" validate:"required,notblank" label:"First name"`
	LastName     string    `bun:"last_name,notnull" validate:"required,notblank" label:"Last name"`
	EmailAddress string    `bun:"email_address,notnull,unique" validate:"required,email" label:"Email address"`
	Password     string    `bun:"password,notnull" validate:"required,notblank" label:"Password"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Courses []*Course `bun:"rel:has-many,join:id=user_id" validate:"-"`
}
