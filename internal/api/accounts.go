package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/service"
)

// AccountHandler handles HTTP requests for customers, plans, subscriptions
// and invoices
type AccountHandler struct {
	accounts *service.AccountService
	log      zerolog.Logger
}

// NewAccountHandler creates a new account handler with the given service
func NewAccountHandler(accounts *service.AccountService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// ServeHTTP handles HTTP requests for account management
func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Path formats:
	//   /api/customers[/{uuid}[/subscriptions|/invoices]]
	//   /api/plans
	//   /api/subscriptions[/{id}/cancel]
	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")

	var id, sub string
	if len(pathParts) >= 4 {
		id = pathParts[3]
	}
	if len(pathParts) >= 5 {
		sub = pathParts[4]
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/customers":
		h.listCustomers(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/customers":
		h.createCustomer(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/customers/") && sub == "":
		h.getCustomer(w, r, id)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/customers/") && sub == "":
		h.updateCustomer(w, r, id)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/customers/") && sub == "":
		h.deleteCustomer(w, r, id)
	case r.Method == http.MethodGet && sub == "subscriptions":
		h.listSubscriptions(w, r, id)
	case r.Method == http.MethodGet && sub == "invoices":
		h.listInvoices(w, r, id)
	case r.Method == http.MethodGet && r.URL.Path == "/api/plans":
		h.listPlans(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/plans":
		h.savePlan(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/subscriptions":
		h.subscribe(w, r)
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/subscriptions/") && sub == "cancel":
		h.cancelSubscription(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *AccountHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.accounts.ListCustomers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list customers")
		http.Error(w, "Error retrieving customers", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(customers)
}

func (h *AccountHandler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.accounts.CreateCustomer(r.Context(), &customer); err != nil {
		h.log.Error().Err(err).Msg("failed to create customer")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

func (h *AccountHandler) getCustomer(w http.ResponseWriter, r *http.Request, uuid string) {
	customer, err := h.accounts.GetCustomer(r.Context(), uuid)
	if err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(customer)
}

func (h *AccountHandler) updateCustomer(w http.ResponseWriter, r *http.Request, uuid string) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	customer.UUID = uuid
	if err := h.accounts.UpdateCustomer(r.Context(), &customer); err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(customer)
}

func (h *AccountHandler) deleteCustomer(w http.ResponseWriter, r *http.Request, uuid string) {
	if err := h.accounts.DeleteCustomer(r.Context(), uuid); err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Customer deleted successfully"})
}

func (h *AccountHandler) listSubscriptions(w http.ResponseWriter, r *http.Request, customerUUID string) {
	subs, err := h.accounts.ListSubscriptions(r.Context(), customerUUID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list subscriptions")
		http.Error(w, "Error retrieving subscriptions", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(subs)
}

func (h *AccountHandler) listInvoices(w http.ResponseWriter, r *http.Request, customerUUID string) {
	invoices, err := h.accounts.ListInvoices(r.Context(), customerUUID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list invoices")
		http.Error(w, "Error retrieving invoices", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(invoices)
}

func (h *AccountHandler) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.accounts.ListPlans(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list plans")
		http.Error(w, "Error retrieving plans", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(plans)
}

func (h *AccountHandler) savePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.accounts.SavePlan(r.Context(), &plan); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(plan)
}

func (h *AccountHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerUUID string `json:"customer_uuid"`
		PlanID       string `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	sub, invoice, err := h.accounts.Subscribe(r.Context(), body.CustomerUUID, body.PlanID)
	if err != nil {
		h.log.Error().Err(err).Msg("subscription failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"subscription": sub,
		"invoice":      invoice,
	})
}

func (h *AccountHandler) cancelSubscription(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.accounts.CancelSubscription(r.Context(), id); err != nil {
		http.Error(w, "Subscription not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Subscription cancelled"})
}
