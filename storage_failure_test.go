package folio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

func newMockApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	app := New(SiteConfig{SessionSecret: "test-secret", StaticDir: t.TempDir()}, WithStore(NewStoreDB(db, DialectSQLite)))
	require.NoError(t, app.Init(context.Background()))
	t.Cleanup(func() { _ = app.Close() })
	return app, mock
}

func TestAPI_StorageFailure(t *testing.T) {
	app, mock := newMockApp(t)
	mock.ExpectQuery(`SELECT id, date, content, highlight, category, order_index FROM news`).
		WillReturnError(errors.New("connection refused"))

	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPages_StorageFailure(t *testing.T) {
	app, _ := newMockApp(t)

	// No expectations: every query of the aggregate load fails.
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch. Please try again later.")
}

func TestResource_StorageErrorsWrap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewServices(NewStoreDB(db, DialectSQLite), ContextGate)
	mock.ExpectQuery(`INSERT INTO about_paragraphs`).
		WithArgs("hello", 0).
		WillReturnError(errors.New("disk full"))
	mock.ExpectExec(`DELETE FROM about_paragraphs WHERE id = \?`).
		WithArgs(int64(4)).
		WillReturnError(errors.New("disk full"))

	_, err = svc.About.Create(ownerCtx(), content.AboutParagraph{Content: "hello"})
	assert.ErrorIs(t, err, content.ErrStorage)

	err = svc.About.Delete(ownerCtx(), 4)
	assert.ErrorIs(t, err, content.ErrStorage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResource_UpdateRebindsForPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewServices(NewStoreDB(db, DialectPostgres), ContextGate)
	rows := sqlmock.NewRows([]string{"id", "event", "date", "location", "role", "order_index"}).
		AddRow(int64(2), "Keynote", "2026", nil, "Speaker", 1)
	mock.ExpectQuery(`UPDATE upcoming_events SET event = \$1, date = \$2, location = \$3, role = \$4, order_index = \$5 WHERE id = \$6 RETURNING`).
		WithArgs("Keynote", "2026", nil, "Speaker", 1, int64(2)).
		WillReturnRows(rows)

	role := "Speaker"
	out, err := svc.Events.Update(ownerCtx(), 2, content.Event{Event: "Keynote", Date: "2026", Role: &role, OrderIndex: 1})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Nil(t, out.Location)
	assert.Equal(t, "Speaker", content.Str(out.Role))
	assert.NoError(t, mock.ExpectationsWereMet())
}
