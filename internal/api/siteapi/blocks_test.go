package siteapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
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

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	database.DB = db
	return mock
}

// ownedSite stands in for RequireSiteOwner: the site is already loaded
// and the caller already passed the ownership check.
func ownedSite(siteID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("site", sites.Site{ID: siteID, Slug: "acme", Name: "Acme", Status: sites.StatusDraft, OwnerID: 1})
		c.Set("user_id", uint(1))
		c.Next()
	}
}

func pageRows(id string, siteID uint, slug, typ string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "site_id", "slug", "type", "title", "visible", "created_at", "updated_at"}).
		AddRow(id, siteID, slug, typ, "Title", true, now, now)
}

func blockIDRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

// Submitting only some of a page's unpinned blocks would leave the listed
// and unlisted blocks sharing sort indexes, so the request is refused and
// nothing is written.
func TestReorderBlocksRejectsPartialList(t *testing.T) {
	mock := setupMockDB(t)

	r := gin.New()
	r.PUT("/sites/:siteId/pages/:pageId/blocks/reorder", ownedSite(1), ReorderBlocks)

	mock.ExpectQuery(`SELECT \* FROM "pages" WHERE id = \$1 AND site_id = \$2`).
		WillReturnRows(pageRows("3f1c9a52-0000-0000-0000-000000000001", 1, "home", "home"))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "block_instances" WHERE page_id = \$1 AND pinned = false`).
		WillReturnRows(blockIDRows("a", "b", "c"))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		"/sites/1/pages/3f1c9a52-0000-0000-0000-000000000001/blocks/reorder",
		strings.NewReader(`{"block_ids":["c"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderBlocksRewritesFullSet(t *testing.T) {
	mock := setupMockDB(t)

	r := gin.New()
	r.PUT("/sites/:siteId/pages/:pageId/blocks/reorder", ownedSite(1), ReorderBlocks)

	mock.ExpectQuery(`SELECT \* FROM "pages" WHERE id = \$1 AND site_id = \$2`).
		WillReturnRows(pageRows("3f1c9a52-0000-0000-0000-000000000001", 1, "home", "home"))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "block_instances" WHERE page_id = \$1 AND pinned = false`).
		WillReturnRows(blockIDRows("a", "b", "c"))
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`UPDATE "block_instances" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		"/sites/1/pages/3f1c9a52-0000-0000-0000-000000000001/blocks/reorder",
		strings.NewReader(`{"block_ids":["c","a","b"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSameIDSet(t *testing.T) {
	assert.True(t, sameIDSet([]string{"a", "b"}, []string{"b", "a"}))
	assert.True(t, sameIDSet(nil, nil))

	assert.False(t, sameIDSet([]string{"a"}, []string{"a", "b"}), "partial list")
	assert.False(t, sameIDSet([]string{"a", "b", "c"}, []string{"a", "b"}), "extra id")
	assert.False(t, sameIDSet([]string{"a", "a"}, []string{"a", "b"}), "duplicate id")
	assert.False(t, sameIDSet([]string{"a", "x"}, []string{"a", "b"}), "unknown id")
}
