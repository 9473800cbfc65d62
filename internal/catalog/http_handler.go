package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type createBookRequest struct {
	Title           *string `json:"title" validate:"required"`
	Author          *string `json:"author" validate:"required"`
	ISBN            *string `json:"isbn" validate:"required"`
	PublicationYear *int    `json:"publication_year" validate:"required"`
	Genre           *string `json:"genre" validate:"required"`
	Available       *bool   `json:"available"`
}

type updateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publication_year"`
	Genre           *string `json:"genre"`
	Available       *bool   `json:"available"`
}

type listBooksResponse struct {
	TotalBooks int    `json:"total_books"`
	Books      []Book `json:"books"`
}

type bookMessageResponse struct {
	Message string `json:"message"`
	Book    Book   `json:"book"`
}

type deleteBookResponse struct {
	Message     string `json:"message"`
	DeletedBook Book   `json:"deleted_book"`
}

// Root handles GET /
// @Summary API welcome message
// @Description List the available catalog endpoints
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Book Catalog API",
		"endpoints": map[string]string{
			"GET /books":         "Get all books",
			"GET /books/{id}":    "Get specific book",
			"POST /books":        "Add new book",
			"PUT /books/{id}":    "Update book",
			"DELETE /books/{id}": "Delete book",
		},
	})
}

// List handles GET /books
// @Summary List books
// @Description Get all books, optionally filtered by genre and availability
// @Tags catalog
// @Produce json
// @Param genre query string false "Filter by genre (case-insensitive)"
// @Param available query bool false "Filter by availability"
// @Success 200 {object} listBooksResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f := Filter{Genre: query.Get("genre")}
	if raw := query.Get("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid query parameter", []httpx.ErrorDetail{
				{Field: "available", Message: "available must be a boolean"},
			})
			return
		}
		f.Available = &v
	}

	books, total, err := h.svc.List(r.Context(), f)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, listBooksResponse{
		TotalBooks: total,
		Books:      books,
	})
}

// Get handles GET /books/{id}
// @Summary Get book by id
// @Tags catalog
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	book, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, id, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, book)
}

// Create handles POST /books
// @Summary Add a new book
// @Tags catalog
// @Accept json
// @Produce json
// @Success 201 {object} bookMessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if details := validateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", details)
		return
	}

	candidate := Book{
		Title:           *req.Title,
		Author:          *req.Author,
		ISBN:            *req.ISBN,
		PublicationYear: *req.PublicationYear,
		Genre:           *req.Genre,
		Available:       true,
	}
	if req.Available != nil {
		candidate.Available = *req.Available
	}

	book, err := h.svc.Create(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, ErrISBNConflict) {
			httpx.JSONError(w, http.StatusBadRequest, "ISBN_CONFLICT",
				fmt.Sprintf("Book with ISBN %s already exists", candidate.ISBN), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, bookMessageResponse{
		Message: "Book created successfully",
		Book:    book,
	})
}

// Update handles PUT /books/{id}
// @Summary Update a book
// @Description Merge the provided fields into an existing book
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} bookMessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	var req updateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := Patch{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Genre:           req.Genre,
		Available:       req.Available,
	}

	book, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrISBNConflict) {
			isbn := ""
			if req.ISBN != nil {
				isbn = *req.ISBN
			}
			httpx.JSONError(w, http.StatusBadRequest, "ISBN_CONFLICT",
				fmt.Sprintf("ISBN %s already exists for another book", isbn), nil)
			return
		}
		h.writeServiceError(w, id, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bookMessageResponse{
		Message: "Book updated successfully",
		Book:    book,
	})
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags catalog
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} deleteBookResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	book, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, id, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, deleteBookResponse{
		Message:     "Book deleted successfully",
		DeletedBook: book,
	})
}

// bookID extracts the integer id path value, writing a validation
// error when it does not parse.
func bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid path parameter", []httpx.ErrorDetail{
			{Field: "id", Message: "id must be an integer"},
		})
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body, writing the appropriate
// boundary error on failure. A field of the wrong JSON type is a
// validation error; anything else malformed is a bad request.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", []httpx.ErrorDetail{
			{Field: typeErr.Field, Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)},
		})
		return false
	}

	httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
	return false
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, id int, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Book with ID %d not found", id), nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
