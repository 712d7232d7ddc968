package storefront

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	r.NoRoute(ServePath)
	return r, mock
}

func siteRows(id uint, slug, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "slug", "name", "custom_domain", "status", "owner_id", "created_at", "updated_at"}).
		AddRow(id, slug, "Store "+slug, nil, status, 1, now, now)
}

// A renamed site served under its old slug answers with one real 302 to
// the canonical path, sub-path preserved.
func TestServePathStaleSlug302(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(1, "acme", sites.StatusPublished))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/1/shop/about", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/1/acme/about", w.Header().Get("Location"))
}

// A protected page without a site-scoped identity redirects to the site's
// login carrying the attempted path.
func TestServePathProtectedSlugLoginRedirect(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE slug = \$1 AND status <> \$2`).
		WillReturnRows(siteRows(1, "acme", sites.StatusPublished))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/acme/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/acme/auth?returnTo=%2Facme%2Fcart", w.Header().Get("Location"))
}

func TestServePathUnpublishedNotice(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE slug = \$1 AND status <> \$2`).
		WillReturnRows(siteRows(1, "acme", sites.StatusDraft))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/acme", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unpublished":true`)
	assert.NotContains(t, w.Body.String(), `"blocks"`)
}

func TestServePathUnknownSite404(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE slug = \$1 AND status <> \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/no-such-store", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Preview mounts require a platform identity that owns the site.
func TestServePathPreviewRequiresOwner(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "sites" WHERE id = \$1`).
		WillReturnRows(siteRows(1, "acme", sites.StatusDraft))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/preview/sites/1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPageSlugOf(t *testing.T) {
	assert.Equal(t, "", pageSlugOf(""))
	assert.Equal(t, "", pageSlugOf("/"))
	assert.Equal(t, "cart", pageSlugOf("/cart"))
	assert.Equal(t, "about", pageSlugOf("/about/team"))
	assert.Equal(t, "about", pageSlugOf("about"))
}
