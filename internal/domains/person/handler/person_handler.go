package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	book "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/person/model"
	"library-backend/internal/domains/person/service"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type PersonHandler struct {
	service service.ServiceInterface
}

func NewPersonHandler(svc service.ServiceInterface) *PersonHandler {
	return &PersonHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/patrons
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) Create(c *gin.Context) {
	var req model.CreatePatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid patron", err)
		return
	}

	patron, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, patron.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /v1/patrons
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) List(c *gin.Context) {
	patrons, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	data := make([]model.PatronResponse, 0, len(patrons))
	for _, p := range patrons {
		data = append(data, *p.ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{Total: len(data)})
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /v1/patrons/:id
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	patron, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patron.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/patrons/:id
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid update", err)
		return
	}
	if !req.HasChanges() {
		response.BadRequest(c, "no fields to update")
		return
	}

	patron, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patron.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/patrons/:id
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ════════════════════════════════════════════════════════════════
// LEDGER: POST /v1/patrons/:id/books
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) BorrowBook(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid book", err)
		return
	}

	patron, err := h.service.BorrowBook(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patron.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// LEDGER: DELETE /v1/patrons/:id/books/:bookId
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) ReturnBook(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseUUIDParam(c, "bookId")
	if !ok {
		return
	}

	patron, err := h.service.ReturnBook(c.Request.Context(), id, bookID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patron.ToResponse())
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid UUID format for "+name)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, book.ErrInvalidBook) {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_BOOK", err.Error())
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("patron request failed", err)
		response.InternalServerError(c, "internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
