package migrate

import (
	"database/sql"
	"embed"

	"github.com/RaikyD/velocity-express/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func Up(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}
	v, err := goose.GetDBVersion(db)
	if err == nil {
		logger.Info("migrations applied", "version", v)
	}
	return nil
}
