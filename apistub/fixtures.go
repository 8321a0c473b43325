package apistub

import (
	"context"
	"embed"
	"text/template"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dbfixture"
)

//go:embed data/fixtures/*.yml
var fixturesFS embed.FS

// Setup registers the stub models and recreates the schema. Call once on
// startup before serving or seeding.
func Setup(ctx context.Context, db *bun.DB) error {
	db.RegisterModel(Models()...)

	for _, model := range Models() {
		if err := db.ResetModel(ctx, model); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to reset model")
		}
	}
	return nil
}

// Seed loads the embedded YAML fixtures. Fixture rows use two template
// helpers: `hash` bcrypt-hashes seed passwords, and `uuidFor` derives a
// stable UUID from an email so seed IDs survive schema resets.
func Seed(ctx context.Context, db *bun.DB) error {
	funcs := template.FuncMap{
		"hash": func(password string) (string, error) {
			return HashPassword(password)
		},
		"uuidFor": func(email string) (string, error) {
			id, err := hashid.NewUUID(email)
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}

	fixture := dbfixture.New(db, dbfixture.WithTemplateFuncs(funcs))
	if err := fixture.Load(ctx, fixturesFS, "data/fixtures/seed.yml"); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load seed fixtures")
	}
	return nil
}
