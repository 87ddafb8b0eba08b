package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/person/handler"
	"library-backend/internal/domains/person/model"
	"library-backend/internal/domains/person/repository"
	"library-backend/internal/domains/person/service"
	"library-backend/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewPersonHandler(service.NewPersonService(repository.NewMemoryRepository()))

	r := gin.New()
	patrons := r.Group("/patrons")
	patrons.POST("", h.Create)
	patrons.GET("", h.List)
	patrons.GET("/:id", h.GetByID)
	patrons.PUT("/:id", h.Update)
	patrons.DELETE("/:id", h.Delete)
	patrons.POST("/:id/books", h.BorrowBook)
	patrons.DELETE("/:id/books/:bookId", h.ReturnBook)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func alicePayload() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Alice Pauline",
		"phone":   "94351253",
		"email":   "alice@example.com",
		"address": "123, Jurong West Ave 6, #08-111",
		"tags":    []string{"friends"},
	}
}

func createAlice(t *testing.T, r *gin.Engine) model.PatronResponse {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/patrons", alicePayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var p model.PatronResponse
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreate(t *testing.T) {
	r := newRouter()
	p := createAlice(t, r)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Alice Pauline", p.Name)
	assert.Equal(t, []string{"friends"}, p.Tags)
	assert.Empty(t, p.BorrowedBooks)
	assert.Equal(t, testutil.Alice().String(), p.Display)
}

func TestCreate_Errors(t *testing.T) {
	r := newRouter()
	createAlice(t, r)

	missingName := alicePayload()
	delete(missingName, "name")
	badPhone := alicePayload()
	badPhone["name"] = "Carl Kurz"
	badPhone["phone"] = "12"
	duplicate := alicePayload()
	duplicate["phone"] = "11111111"

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"missing_name", missingName, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"short_phone", badPhone, http.StatusBadRequest, "INVALID_PHONE"},
		{"same_person", duplicate, http.StatusConflict, "DUPLICATE_PERSON"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/patrons", tc.body)
			assert.Equal(t, tc.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestGetByID(t *testing.T) {
	r := newRouter()
	alice := createAlice(t, r)

	w, env := do(t, r, http.MethodGet, "/patrons/"+alice.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.PatronResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, alice.ID, got.ID)

	w, env = do(t, r, http.MethodGet, "/patrons/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PATRON_NOT_FOUND", env.Error.Code)

	w, _ = do(t, r, http.MethodGet, "/patrons/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList(t *testing.T) {
	r := newRouter()
	createAlice(t, r)

	w, env := do(t, r, http.MethodGet, "/patrons", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestUpdate(t *testing.T) {
	r := newRouter()
	alice := createAlice(t, r)
	path := "/patrons/" + alice.ID.String()

	w, env := do(t, r, http.MethodPut, path, map[string]interface{}{
		"phone":   "88888888",
		"version": alice.Version,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var got model.PatronResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "88888888", got.Phone)
	assert.Equal(t, alice.Version+1, got.Version)

	// stale version
	w, env = do(t, r, http.MethodPut, path, map[string]interface{}{
		"phone":   "77777777",
		"version": alice.Version,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "VERSION_CONFLICT", env.Error.Code)

	// nothing to change
	w, _ = do(t, r, http.MethodPut, path, map[string]interface{}{"version": got.Version})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedgerAndDelete(t *testing.T) {
	r := newRouter()
	alice := createAlice(t, r)
	path := "/patrons/" + alice.ID.String()
	b := testutil.Beloved

	w, env := do(t, r, http.MethodPost, path+"/books", map[string]interface{}{
		"book_id": b.ID,
		"title":   b.Title,
		"author":  b.Author,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var got model.PatronResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.BorrowedBooks, 1)
	assert.Equal(t, "Beloved | Toni Morrison", got.BorrowedBooks[0].Display)

	w, env = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PATRON_HAS_BOOKS", env.Error.Code)

	w, _ = do(t, r, http.MethodDelete, path+"/books/"+b.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBorrowBook_Invalid(t *testing.T) {
	r := newRouter()
	alice := createAlice(t, r)

	w, env := do(t, r, http.MethodPost, "/patrons/"+alice.ID.String()+"/books", map[string]interface{}{
		"title":  "Beloved",
		"author": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/patrons/"+alice.ID.String()+"/books", map[string]interface{}{
		"title":  "   ",
		"author": "Toni Morrison",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_BOOK", env.Error.Code)
}

func TestBorrowBook_ConflictingID(t *testing.T) {
	r := newRouter()
	alice := createAlice(t, r)
	path := "/patrons/" + alice.ID.String() + "/books"
	b := testutil.Beloved

	w, _ := do(t, r, http.MethodPost, path, map[string]interface{}{
		"book_id": b.ID,
		"title":   b.Title,
		"author":  b.Author,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodPost, path, map[string]interface{}{
		"book_id": b.ID,
		"title":   "Dune",
		"author":  "Frank Herbert",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BOOK_CONFLICT", env.Error.Code)
}
