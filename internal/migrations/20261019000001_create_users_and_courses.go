package migrations

import (
	"context"
	"fmt"

	"courseapi/internal/model"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20261019000001, down_20261019000001)
}

func up_20261019000001(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*model.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	_, err = db.NewCreateTable().
		Model((*model.Course)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create courses table: %w", err)
	}

	_, err = db.NewCreateIndex().
		Model((*model.Course)(nil)).
		Index("idx_courses_user_id").
		Column("user_id").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create courses user_id index: %w", err)
	}
	return nil
}

func down_20261019000001(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewDropTable().Model((*model.Course)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("drop courses table: %w", err)
	}
	if _, err := db.NewDropTable().Model((*model.User)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("drop users table: %w", err)
	}
	return nil
}
