package subscribers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/invoicepress/invoicepress/responses"
)

// SubscribeHandler handles POST /api/subscribe.
type SubscribeHandler struct {
	Store Store
}

func (h *SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "Email is required")
		return
	}

	sub, err := h.Store.Create(r.Context(), body.Email)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "This email is already subscribed")
			return
		}
		log.Printf("[ERROR] creating subscriber: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	responses.EncodeWriteJSON(w, http.StatusCreated, map[string]any{
		"message":    "Successfully subscribed",
		"subscriber": sub,
	})
}

// ListHandler handles GET /api/subscribers. Access-gated at routing level.
type ListHandler struct {
	Store Store
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Store.ListAll(r.Context())
	if err != nil {
		log.Printf("[ERROR] fetching subscribers: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, subs)
}
