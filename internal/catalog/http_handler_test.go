package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBook = Book{
	ID:              1,
	Title:           "Dune",
	Author:          "Herbert",
	ISBN:            "111",
	PublicationYear: 1965,
	Genre:           "Sci-Fi",
	Available:       true,
}

func newHandlerWithMock(t *testing.T) (*HTTPHandler, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(mockRepo)), mockRepo
}

func TestHTTPHandler_Root(t *testing.T) {
	handler, _ := newHandlerWithMock(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.Root(w, r)

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Welcome to Book Catalog API", resp.Body["message"])
	assert.Contains(t, resp.Body, "endpoints")
}

func TestHTTPHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(m *MockRepository)
		expectedStatus int
		expectedTotal  float64
	}{
		{
			name:  "success - empty catalog",
			query: "",
			setupMock: func(m *MockRepository) {
				m.EXPECT().List(gomock.Any(), Filter{}).Return([]Book{}, 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  0,
		},
		{
			name:  "success - with books",
			query: "",
			setupMock: func(m *MockRepository) {
				m.EXPECT().List(gomock.Any(), Filter{}).Return([]Book{testBook}, 1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  1,
		},
		{
			name:  "genre filter is passed through",
			query: "?genre=sci-fi",
			setupMock: func(m *MockRepository) {
				m.EXPECT().List(gomock.Any(), Filter{Genre: "sci-fi"}).Return([]Book{testBook}, 1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  1,
		},
		{
			name:  "available filter is parsed",
			query: "?available=true",
			setupMock: func(m *MockRepository) {
				m.EXPECT().List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f Filter) ([]Book, int, error) {
						require.NotNil(t, f.Available)
						assert.True(t, *f.Available)
						return []Book{testBook}, 1, nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  1,
		},
		{
			name:           "unparsable available is rejected",
			query:          "?available=maybe",
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockRepo := newHandlerWithMock(t)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/books"+tt.query, nil)

			handler.List(w, r)

			resp := testutil.RecordHTTPResponse(w)
			assert.Equal(t, tt.expectedStatus, resp.Code)
			if resp.Code == http.StatusOK {
				assert.Equal(t, tt.expectedTotal, resp.Body["total_books"])
				assert.Contains(t, resp.Body, "books")
			}
		})
	}
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Get(gomock.Any(), 1).Return(testBook, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/1", nil)
		r.SetPathValue("id", "1")

		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, float64(1), resp.Body["id"])
		assert.Equal(t, "Dune", resp.Body["title"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Get(gomock.Any(), 99).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/99", nil)
		r.SetPathValue("id", "99")

		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("non-integer id", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/abc", nil)
		r.SetPathValue("id", "abc")

		handler.Get(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	validBody := map[string]any{
		"title":            "Dune",
		"author":           "Herbert",
		"isbn":             "111",
		"publication_year": 1965,
		"genre":            "Sci-Fi",
	}

	t.Run("success - available defaults to true", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b Book) (Book, error) {
				assert.True(t, b.Available)
				b.ID = 1
				return b, nil
			})

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/books", validBody)

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, "Book created successfully", resp.Body["message"])
		book := resp.Body["book"].(map[string]interface{})
		assert.Equal(t, float64(1), book["id"])
	})

	t.Run("explicit available is honored", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b Book) (Book, error) {
				assert.False(t, b.Available)
				b.ID = 1
				return b, nil
			})

		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		body["available"] = false

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", body))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		body := map[string]any{"title": "Dune"}
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", body))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("mistyped field", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		body["publication_year"] = "nineteen sixty-five"

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", body))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", "{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("isbn conflict", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(Book{}, ErrISBNConflict)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", validBody))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("success - partial patch", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		updated := testBook
		updated.Available = false
		mockRepo.EXPECT().Update(gomock.Any(), 1, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, p Patch) (Book, error) {
				require.NotNil(t, p.Available)
				assert.False(t, *p.Available)
				assert.Nil(t, p.Title)
				return updated, nil
			})

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/1", map[string]any{"available": false})
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Book updated successfully", resp.Body["message"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Update(gomock.Any(), 99, gomock.Any()).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/99", map[string]any{"title": "x"})
		r.SetPathValue("id", "99")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("isbn conflict", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Update(gomock.Any(), 1, gomock.Any()).Return(Book{}, ErrISBNConflict)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/1", map[string]any{"isbn": "222"})
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("mistyped field", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/1", map[string]any{"available": "yes"})
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Delete(gomock.Any(), 1).Return(testBook, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/books/1", nil)
		r.SetPathValue("id", "1")

		handler.Delete(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Book deleted successfully", resp.Body["message"])
		deleted := resp.Body["deleted_book"].(map[string]interface{})
		assert.Equal(t, "Dune", deleted["title"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockRepo := newHandlerWithMock(t)
		mockRepo.EXPECT().Delete(gomock.Any(), 99).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/books/99", nil)
		r.SetPathValue("id", "99")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
