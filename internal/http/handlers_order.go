package http

import (
	"log/slog"
	"net/http"

	"vyapari/internal/core"
	"vyapari/internal/dataview"
	"vyapari/internal/whatsapp"
)

type orderItemJSON struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type orderJSON struct {
	ID             string          `json:"id"`
	CustomerName   string          `json:"customerName"`
	CustomerPhone  string          `json:"customerPhone"`
	Items          []orderItemJSON `json:"items"`
	TotalAmount    string          `json:"totalAmount"`
	GrossAmount    string          `json:"grossAmount"`
	Discount       string          `json:"discount"`
	DiscountString string          `json:"discountString,omitempty"`
	CostPrice      string          `json:"costPrice"`
	Profit         string          `json:"profit"`
	Status         string          `json:"status"`
	OrderDate      string          `json:"orderDate"`
}

type orderListJSON struct {
	Records    []orderJSON `json:"records"`
	Matched    int         `json:"matched"`
	StoreCount int         `json:"storeCount"`
}

type orderDraftJSON struct {
	Item          string `json:"item"`
	Quantity      int    `json:"quantity"`
	Rate          string `json:"rate"`
	Discount      string `json:"discount"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
}

type orderStatusJSON struct {
	Status string `json:"status"`
}

type whatsappLinkJSON struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

func toOrderJSON(o core.Order) orderJSON {
	out := orderJSON{
		ID:             o.ID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Items:          make([]orderItemJSON, 0, len(o.Items)),
		TotalAmount:    o.TotalAmount.DecimalString(),
		GrossAmount:    o.GrossAmount.DecimalString(),
		Discount:       o.Discount.DecimalString(),
		DiscountString: o.DiscountString,
		CostPrice:      o.CostPrice.DecimalString(),
		Profit:         o.Profit.DecimalString(),
		Status:         string(o.Status),
		OrderDate:      o.OrderDate.Format("2006-01-02"),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemJSON{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.DecimalString(),
		})
	}
	return out
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	records, err := s.orders.Records(r.Context())
	if err != nil {
		respondBackendError(w, r, err)
		return
	}

	view := dataview.DeriveOrderView(records, parseOrderQuery(r))
	resp := orderListJSON{
		Records:    make([]orderJSON, 0, len(view.Records)),
		Matched:    view.Matched,
		StoreCount: view.StoreCount,
	}
	for _, o := range view.Records {
		resp.Records = append(resp.Records, toOrderJSON(o))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in orderDraftJSON
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	rate, err := core.ParseDecimalToPaise(in.Rate)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "invalid rate")
		return
	}

	draft := core.OrderDraft{
		Item:          sanitizeInput(in.Item),
		Quantity:      in.Quantity,
		Rate:          core.Money{Paise: rate},
		Discount:      sanitizeInput(in.Discount),
		CustomerName:  sanitizeInput(in.CustomerName),
		CustomerPhone: sanitizeInput(in.CustomerPhone),
	}
	if err := draft.Validate(); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.orders.Create(r.Context(), draft); err != nil {
		respondBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Order created",
		"item", draft.Item,
		"quantity", draft.Quantity,
		"customer", draft.CustomerName)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, ok, err := s.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	if !ok {
		respondError(w, r, http.StatusNotFound, "record not found")
		return
	}
	respondJSON(w, r, http.StatusOK, toOrderJSON(o))
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		respondError(w, r, http.StatusPreconditionRequired, "deletion requires confirm=true")
		return
	}
	id := r.PathValue("id")

	if err := s.orders.Delete(r.Context(), id); err != nil {
		respondBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Order deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in orderStatusJSON
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	status, ok := core.ParseOrderStatus(in.Status)
	if !ok {
		respondError(w, r, http.StatusUnprocessableEntity, "invalid order status")
		return
	}

	if err := s.orders.SetStatus(r.Context(), id, status); err != nil {
		slog.WarnContext(r.Context(), "Status update reverted", "id", id, "status", status, "error", err)
		respondBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Order status updated", "id", id, "status", status)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOrderWhatsApp(w http.ResponseWriter, r *http.Request) {
	o, ok, err := s.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	if !ok {
		respondError(w, r, http.StatusNotFound, "record not found")
		return
	}

	link, err := whatsapp.BillLink(o, s.whatsappDomain)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, r, http.StatusOK, whatsappLinkJSON{
		Link:    link,
		Message: whatsapp.BillMessage(o),
	})
}
