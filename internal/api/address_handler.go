package api

import (
	"net/http"

	"github.com/phrazzld/rolodex-api/internal/api/shared"
	"github.com/phrazzld/rolodex-api/internal/service"
)

// AddressHandler handles the address endpoints nested under contacts.
//
// Unlike the user and contact handlers, body validation happens inside the
// address service, after the contact ownership check: an address request
// under a contact the caller does not own must yield 404 before any
// address-specific validation runs.
type AddressHandler struct {
	addressService service.AddressService
}

// NewAddressHandler creates a new AddressHandler with the given dependencies.
func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// Create handles POST /api/contacts/{contactId}/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	contactID, err := getPathID(r, "contactId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req AddressRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	address, err := h.addressService.Create(r.Context(), user.Username, contactID, service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newAddressResponse(address))
}

// Get handles GET /api/contacts/{contactId}/addresses/{addressId}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	contactID, err := getPathID(r, "contactId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	// The address id is validated by the service after the ownership
	// check, so parse failures are deferred rather than rejected here.
	addressID := getDeferredPathID(r, "addressId")

	address, err := h.addressService.Get(r.Context(), user.Username, contactID, addressID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newAddressResponse(address))
}

// Update handles PUT /api/contacts/{contactId}/addresses. The target
// address is identified by the id field in the request body.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := getAuthenticatedUser(w, r)
	if !ok {
		return
	}

	contactID, err := getPathID(r, "contactId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateAddressRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	address, err := h.addressService.Update(r.Context(), user.Username, contactID, req.ID, service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newAddressResponse(address))
}
