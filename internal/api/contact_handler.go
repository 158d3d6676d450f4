package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/rolodex-api/internal/api/shared"
	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/service"
)

// maxPageSize caps the size query parameter for contact search.
const maxPageSize = 100

// ContactHandler handles the contact CRUD and search endpoints.
type ContactHandler struct {
	contactService service.ContactService
	validator      *validator.Validate
}

// NewContactHandler creates a new ContactHandler with the given dependencies.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator.New(),
	}
}

// Create handles POST /api/contacts. The owner is stamped from the
// authenticated context.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	var req ContactRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	contact, err := h.contactService.Create(r.Context(), user.Username, service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newContactResponse(contact))
}

// Get handles GET /api/contacts/{contactId}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	contactID, err := getPathID(r, "contactId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	contact, err := h.contactService.Get(r.Context(), user.Username, contactID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newContactResponse(contact))
}

// Update handles PUT /api/contacts/{contactId}. The id comes from the path;
// all mutable fields are replaced with the body's values.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	contactID, err := getPathID(r, "contactId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req ContactRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	contact, err := h.contactService.Update(r.Context(), user.Username, contactID, service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newContactResponse(contact))
}

// Delete handles DELETE /api/contacts/{contactId}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	contactID, err := getPathID(r, "contactId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.contactService.Delete(r.Context(), user.Username, contactID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}

// Search handles GET /api/contacts with optional name, email, phone, page
// and size query parameters.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	page, err := getQueryInt(r, "page", 1)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	size, err := getQueryInt(r, "size", service.DefaultPageSize)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if size > maxPageSize {
		HandleAPIError(w, r, domain.NewValidationError("size", "must be at most 100", domain.ErrValidation))
		return
	}

	query := r.URL.Query()
	contacts, paging, err := h.contactService.Search(r.Context(), user.Username, service.SearchQuery{
		Name:  query.Get("name"),
		Email: query.Get("email"),
		Phone: query.Get("phone"),
		Page:  page,
		Size:  size,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, http.StatusOK, newContactResponses(contacts), shared.PagingMeta{
		Page:      paging.Page,
		TotalPage: paging.TotalPage,
		TotalItem: paging.TotalItem,
	})
}
