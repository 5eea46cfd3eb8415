// Package rest implements the backend ports against the shop's REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vyapari/internal/backend"
	"vyapari/internal/core"
)

// Client talks to the external backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	timeout    time.Duration
}

// New creates a Client for the given base URL (e.g.
// "https://api.example.com/api"). The timeout bounds every call
// regardless of the supplied httpClient; a nil httpClient gets a
// default one.
func New(httpClient *http.Client, baseURL string, timeout time.Duration) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url %q: %w", baseURL, err)
	}
	return &Client{httpClient: httpClient, base: base, timeout: timeout}, nil
}

var (
	_ backend.ExpenseSource = (*Client)(nil)
	_ backend.OrderSource   = (*Client)(nil)
)

// Wire representations. Amounts travel as rupee JSON numbers; dates as
// RFC 3339 or plain YYYY-MM-DD.
type (
	expenseDTO struct {
		ID        string  `json:"id"`
		ExpenseID string  `json:"expenseId,omitempty"`
		Item      string  `json:"item"`
		Category  string  `json:"category"`
		Amount    float64 `json:"amount"`
		Date      string  `json:"date"`
	}

	customerDTO struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}

	orderDTO struct {
		ID             string      `json:"id"`
		Customer       customerDTO `json:"customer"`
		Items          string      `json:"items"`
		Amount         float64     `json:"amount"`
		GrossAmount    float64     `json:"grossAmount"`
		Discount       float64     `json:"discount"`
		DiscountString string      `json:"discountString,omitempty"`
		CostPrice      float64     `json:"costPrice"`
		Profit         float64     `json:"profit"`
		Status         string      `json:"status"`
		Date           string      `json:"date"`
	}

	expenseDraftDTO struct {
		Item     string  `json:"item"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	orderDraftDTO struct {
		Item          string  `json:"item"`
		Qty           int     `json:"qty"`
		Rate          float64 `json:"rate"`
		Discount      string  `json:"discount"`
		CustomerName  string  `json:"customerName,omitempty"`
		CustomerPhone string  `json:"customerPhone,omitempty"`
	}

	statusDTO struct {
		Status string `json:"status"`
	}

	errorDTO struct {
		Error string `json:"error"`
	}
)

func (c *Client) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	var dtos []expenseDTO
	if err := c.do(ctx, http.MethodGet, "expenses", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]core.Expense, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, mapExpense(d))
	}
	return out, nil
}

func (c *Client) CreateExpense(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error) {
	body := expenseDraftDTO{Item: draft.Item, Category: draft.Category, Amount: draft.Amount.Rupees()}
	var d expenseDTO
	if err := c.do(ctx, http.MethodPost, "expenses", body, &d); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return mapExpense(d), nil
}

func (c *Client) UpdateExpense(ctx context.Context, id string, draft core.ExpenseDraft) (core.Expense, error) {
	body := expenseDraftDTO{Item: draft.Item, Category: draft.Category, Amount: draft.Amount.Rupees()}
	var d expenseDTO
	if err := c.do(ctx, http.MethodPut, "expenses/"+url.PathEscape(id), body, &d); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %s: %w", id, err)
	}
	return mapExpense(d), nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "expenses/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	return nil
}

func (c *Client) ListOrders(ctx context.Context) ([]core.Order, error) {
	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, "orders", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]core.Order, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, mapOrder(d))
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, draft core.OrderDraft) (core.Order, error) {
	body := orderDraftDTO{
		Item:          draft.Item,
		Qty:           draft.Quantity,
		Rate:          draft.Rate.Rupees(),
		Discount:      draft.Discount,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
	}
	var d orderDTO
	if err := c.do(ctx, http.MethodPost, "orders", body, &d); err != nil {
		return core.Order{}, fmt.Errorf("create order: %w", err)
	}
	return mapOrder(d), nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "orders/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status core.OrderStatus) error {
	body := statusDTO{Status: string(status)}
	if err := c.do(ctx, http.MethodPatch, "orders/"+url.PathEscape(id)+"/status", body, nil); err != nil {
		return fmt.Errorf("update order %s status: %w", id, err)
	}
	return nil
}

// do performs one API round trip under the client's call timeout. A
// non-nil out gets the decoded 2xx body; error responses are mapped
// onto the backend error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.base.ResolveReference(&url.URL{Path: joinPath(c.base.Path, path)})

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return backend.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", backend.ErrValidation, errorMessage(resp.Body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return backend.StatusError(resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response body: %w", err)
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var e errorDTO
	if err := json.NewDecoder(body).Decode(&e); err != nil || e.Error == "" {
		return "request rejected"
	}
	return e.Error
}

func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return "/" + p
	}
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + p
}

func mapExpense(d expenseDTO) core.Expense {
	return core.Expense{
		ID:        d.ID,
		ExpenseID: d.ExpenseID,
		Item:      d.Item,
		Category:  d.Category,
		Amount:    core.MoneyFromRupees(d.Amount),
		Date:      parseDate(d.Date),
	}
}

// mapOrder flattens the nested customer object, wraps the raw items
// string into a single-element item list priced at the order total, and
// lower-cases the status so it matches the fixed enum.
func mapOrder(d orderDTO) core.Order {
	status, _ := core.ParseOrderStatus(d.Status)
	total := core.MoneyFromRupees(d.Amount)
	return core.Order{
		ID:             d.ID,
		CustomerName:   d.Customer.Name,
		CustomerPhone:  d.Customer.Phone,
		Items:          []core.OrderItem{{Name: d.Items, Quantity: 1, Price: total}},
		TotalAmount:    total,
		GrossAmount:    core.MoneyFromRupees(d.GrossAmount),
		Discount:       core.MoneyFromRupees(d.Discount),
		DiscountString: d.DiscountString,
		CostPrice:      core.MoneyFromRupees(d.CostPrice),
		Profit:         core.MoneyFromRupees(d.Profit),
		Status:         status,
		OrderDate:      parseDate(d.Date),
	}
}

func parseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local()
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
