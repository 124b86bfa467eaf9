package v1

import (
	"encoding/json"
	"net/http"

	"github.com/Xunop/aldiaa/internal/catalog"
	"github.com/Xunop/aldiaa/internal/http/request"
	"github.com/Xunop/aldiaa/internal/http/response"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func searchFilters(r *http.Request) model.SearchFilters {
	return model.SearchFilters{
		Title:      request.QueryStringParam(r, "title", ""),
		Author:     request.QueryStringParam(r, "author", ""),
		Publisher:  request.QueryStringParam(r, "publisher", ""),
		PrintPlace: request.QueryStringParam(r, "print_place", ""),
		Editor:     request.QueryStringParam(r, "editor", ""),
		Course:     request.QueryStringParam(r, "course", ""),
	}
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	visible := request.QueryIntParam(r, "visible", h.catalog.PageSize())

	view, err := h.catalog.View(r.Context(), searchFilters(r), visible)
	if err != nil {
		// The list degrades to empty, the client still gets a view
		log.Error("Error listing books", zap.Error(err))
	}
	response.OK(w, r, view)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.Get(r.Context(), request.RouteStringParam(r, "id"))
	if errors.Is(err, catalog.ErrBookNotFound) {
		response.NotFound(w, r)
		return
	}
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func decodeBookForm(r *http.Request) (*model.BookForm, error) {
	var form model.BookForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		return nil, err
	}
	if err := validator.ValidateBookForm(&form); err != nil {
		log.Error("Failed to validate book", zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// createBook answers 409 with the existing book when the title is taken,
// the client may then resend with force=true.
func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	form, err := decodeBookForm(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.catalog.Create(r.Context(), *form, request.QueryBoolParam(r, "force"))
	var dup *catalog.DuplicateError
	if errors.As(err, &dup) {
		response.Conflict(w, r, err, "existing", dup.Existing)
		return
	}
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	form, err := decodeBookForm(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.catalog.Update(r.Context(), request.RouteStringParam(r, "id"), *form)
	if errors.Is(err, catalog.ErrBookNotFound) {
		response.NotFound(w, r)
		return
	}
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), request.RouteStringParam(r, "id")); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		log.Error("Error computing stats", zap.Error(err))
	}
	response.OK(w, r, stats)
}
