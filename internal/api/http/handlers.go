package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"foodorder/internal/cart"
	"foodorder/internal/domain"
	"foodorder/internal/relay"
	"foodorder/internal/service"

	"github.com/gorilla/mux"
)

const SessionTokenHeader = "X-Session-Token"
const StaffTokenHeader = "X-Staff-Token"

type Handler struct {
	Menu     service.MenuServiceInterface
	Orders   service.OrderServiceInterface
	Reports  *service.ReportService
	Auth     service.AuthServiceInterface
	Carts    *cart.Registry
	Sessions service.SessionStore
	Board    *relay.Board
	Events   relay.EventSource
	QR       service.QRGenerator
	Tables   []string
}

func NewHandler(
	menuSvc service.MenuServiceInterface,
	orderSvc service.OrderServiceInterface,
	reportSvc *service.ReportService,
	authSvc service.AuthServiceInterface,
	carts *cart.Registry,
	sessions service.SessionStore,
	board *relay.Board,
	events relay.EventSource,
	qr service.QRGenerator,
	tables []string,
) *Handler {
	return &Handler{
		Menu:     menuSvc,
		Orders:   orderSvc,
		Reports:  reportSvc,
		Auth:     authSvc,
		Carts:    carts,
		Sessions: sessions,
		Board:    board,
		Events:   events,
		QR:       qr,
		Tables:   tables,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.requireStaff(h.createMenuItem)).Methods("POST")
	r.HandleFunc("/api/menu/describe", h.requireStaff(h.describeDish)).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.requireStaff(h.updateMenuItem)).Methods("PUT")
	r.HandleFunc("/api/menu/{id}", h.requireStaff(h.deleteMenuItem)).Methods("DELETE")

	r.HandleFunc("/api/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/tables/{id}/qrcode", h.getTableQRCode).Methods("GET")
	r.HandleFunc("/api/tables/{id}/session", h.openSession).Methods("POST")
	r.HandleFunc("/api/tables/{id}/session", h.getSession).Methods("GET")
	r.HandleFunc("/api/tables/{id}/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/tables/{id}/cart/items", h.addToCart).Methods("POST")
	r.HandleFunc("/api/tables/{id}/cart/items/{itemId}", h.adjustCartItem).Methods("PATCH")
	r.HandleFunc("/api/tables/{id}/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/orders", h.requireStaff(h.getOrders)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/advance", h.requireStaff(h.advanceOrder)).Methods("POST")

	r.HandleFunc("/api/board", h.requireStaff(h.getBoard)).Methods("GET")
	r.HandleFunc("/api/board/alert/dismiss", h.requireStaff(h.dismissAlert)).Methods("POST")
	r.HandleFunc("/api/events", h.requireStaff(h.streamEvents)).Methods("GET")

	r.HandleFunc("/api/report", h.requireStaff(h.getReport)).Methods("GET")
	r.HandleFunc("/api/report/summary", h.requireStaff(h.getReportSummary)).Methods("GET")

	r.HandleFunc("/api/staff/login", h.staffLogin).Methods("POST")
	r.HandleFunc("/api/staff/logout", h.staffLogout).Methods("POST")
}

func (h *Handler) requireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Auth.Check(r.Context(), r.Header.Get(StaffTokenHeader)) {
			http.Error(w, "Staff authentication required", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "foodorder",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrInvalidMenuItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = mux.Vars(r)["id"]
	if err := h.Menu.Update(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrInvalidMenuItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, service.ErrMenuItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Menu.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) describeDish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Ingredients string `json:"ingredients"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Dish name is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"description": h.Menu.Describe(r.Context(), req.Name, req.Ingredients),
	})
}

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tables)
}

func (h *Handler) knownTable(id string) bool {
	for _, t := range h.Tables {
		if t == id {
			return true
		}
	}
	return false
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]
	if !h.knownTable(tableID) {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}
	png, err := h.QR.Generate(tableID)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// openSession remembers the customer's display name for the table and hands
// back the token the browser keeps for the rest of the visit.
func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]
	if !h.knownTable(tableID) {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	token, err := service.NewSessionToken()
	if err != nil {
		http.Error(w, "Failed to open session", http.StatusInternalServerError)
		return
	}
	if err := h.Sessions.SaveCustomerName(r.Context(), tableID, token, req.Name); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token, "name": req.Name})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]
	token := r.Header.Get(SessionTokenHeader)
	name, err := h.Sessions.CustomerName(r.Context(), tableID, token)
	if err != nil {
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}
	if name == "" {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func cartKey(tableID, token string) string {
	return tableID + ":" + token
}

type cartView struct {
	Lines []domain.OrderLine `json:"lines"`
	Total int64              `json:"total"`
}

func (h *Handler) sessionCart(w http.ResponseWriter, r *http.Request) (*cart.Cart, string, bool) {
	tableID := mux.Vars(r)["id"]
	token := r.Header.Get(SessionTokenHeader)
	if token == "" {
		http.Error(w, "Session token required", http.StatusBadRequest)
		return nil, "", false
	}
	return h.Carts.Get(cartKey(tableID, token)), tableID, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartView{Lines: c.Lines(), Total: c.Total()})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.Menu.Get(req.ItemID)
	if err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if !item.Available {
		http.Error(w, "Menu item is not available", http.StatusConflict)
		return
	}
	c.Add(*item)
	writeJSON(w, http.StatusOK, cartView{Lines: c.Lines(), Total: c.Total()})
}

func (h *Handler) adjustCartItem(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.Adjust(mux.Vars(r)["itemId"], req.Delta)
	writeJSON(w, http.StatusOK, cartView{Lines: c.Lines(), Total: c.Total()})
}

// checkout snapshots the cart into a new pending order. The cart is cleared
// only after the write succeeds, so a failed checkout keeps the lines.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	c, tableID, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.Empty() {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	token := r.Header.Get(SessionTokenHeader)
	customerName, err := h.Sessions.CustomerName(r.Context(), tableID, token)
	if err != nil {
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}

	order, err := h.Orders.Create(r.Context(), tableID, c.Lines(), req.Note, customerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrInvalidTable):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to place order, please try again", http.StatusBadGateway)
		}
		return
	}

	c.Clear()
	h.Carts.Drop(cartKey(tableID, token))
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Advance(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIllegalTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, sql.ErrNoRows):
			http.Error(w, "Order not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type boardView struct {
	Orders []domain.Order `json:"orders"`
	Alert  *domain.Order  `json:"alert,omitempty"`
}

func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, boardView{Orders: h.Board.Orders(), Alert: h.Board.Alert()})
}

func (h *Handler) dismissAlert(w http.ResponseWriter, r *http.Request) {
	h.Board.DismissAlert()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	date := time.Now()
	if dateParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}
	report, err := h.Reports.ForDate(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) getReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.Summary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) staffLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	token, err := h.Auth.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			http.Error(w, "Wrong password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) staffLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(StaffTokenHeader)
	if token != "" {
		if err := h.Auth.Logout(r.Context(), token); err != nil {
			http.Error(w, "Logout failed", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
