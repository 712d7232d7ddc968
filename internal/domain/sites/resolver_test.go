package sites

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock, sqlDB
}

func siteRows(id uint, slug, name, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "slug", "name", "custom_domain", "status", "owner_id", "created_at", "updated_at"}).
		AddRow(id, slug, name, nil, status, 1, now, now)
}

func TestParsePath(t *testing.T) {
	cases := []struct {
		name string
		path string
		want Ref
	}{
		{"slug only", "/acme", Ref{Slug: "acme"}},
		{"slug with sub path", "/acme/cart", Ref{Slug: "acme", SubPath: "/cart"}},
		{"id slug", "/7/acme", Ref{ID: 7, Slug: "acme", HasID: true}},
		{"id slug with sub path", "/7/acme/about/team", Ref{ID: 7, Slug: "acme", HasID: true, SubPath: "/about/team"}},
		{"preview", "/preview/sites/7", Ref{ID: 7, HasID: true}},
		{"preview with sub path", "/preview/sites/7/cart", Ref{ID: 7, HasID: true, SubPath: "/cart"}},
		{"trailing slash", "/acme/", Ref{Slug: "acme"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePathRejects(t *testing.T) {
	for _, path := range []string{
		"",
		"acme",               // no leading slash
		"/",                  // nothing to resolve
		"/7",                 // bare id without slug is not a shape
		"/preview",           // incomplete preview shape
		"/preview/sites",     // incomplete preview shape
		"/preview/sites/abc", // non-numeric id
	} {
		_, err := ParsePath(path)
		assert.Error(t, err, "path %q should not parse", path)
	}
}

func TestResolveBySlug(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE slug = \$1 AND status <> \$2`).
		WillReturnRows(siteRows(7, "acme", "Acme", StatusPublished))

	res, err := Resolve(db, Ref{Slug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), res.Site.ID)
	assert.Equal(t, MountSlug, res.Mount)
	assert.False(t, res.Unpublished)
	assert.Empty(t, res.RedirectTo)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveStaleSlugRedirects(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	// site 1 was renamed shop -> acme; the old URL still carries "shop"
	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(1, "acme", "Acme", StatusPublished))

	res, err := Resolve(db, Ref{ID: 1, Slug: "shop", HasID: true, SubPath: "/about"})
	require.NoError(t, err)
	assert.Equal(t, "/1/acme/about", res.RedirectTo, "redirect must preserve the sub-path")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCanonicalSlugNoRedirect(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(1, "acme", "Acme", StatusPublished))

	res, err := Resolve(db, Ref{ID: 1, Slug: "acme", HasID: true, SubPath: "/about"})
	require.NoError(t, err)
	assert.Empty(t, res.RedirectTo)
}

func TestResolveArchivedIsNotFound(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(9, "gone", "Gone", StatusArchived))

	_, err := Resolve(db, Ref{ID: 9, HasID: true})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestResolveUnknownSlugIsNotFound(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	// a dead slug never falls back to an id lookup
	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE slug = \$1 AND status <> \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := Resolve(db, Ref{Slug: "nope"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestResolveDraftSetsUnpublished(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(3, "wip", "WIP", StatusDraft))

	res, err := Resolve(db, Ref{ID: 3, HasID: true})
	require.NoError(t, err)
	assert.True(t, res.Unpublished)
	assert.Equal(t, MountPreview, res.Mount)
}

// All three shapes hit the same resolver, so a renamed site behaves the
// same everywhere: the parse step differs, the resolution does not.
func TestParseThenResolveRoundTrip(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	ref, err := ParsePath("/1/shop/cart")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(1, "acme", "Acme", StatusPublished))

	res, err := Resolve(db, ref)
	require.NoError(t, err)
	assert.Equal(t, "/1/acme/cart", res.RedirectTo)
}
