package orderapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"upasana-backend/internal/domain"
)

// Client submits orders to the remote commerce API over GraphQL. One request
// per checkout attempt, no client-side retries: retrying here could place the
// same order twice.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

const createOrderMutation = `mutation CreateOrder($input: CreateOrderInput!) {
  createOrder(input: $input) {
    id
    orderNumber
    status
    totalAmount
  }
}`

// createOrderInput matches the remote CreateOrderInput shape: the item pairs
// plus flattened shipping fields.
type createOrderInput struct {
	Items           []domain.OrderDraftItem `json:"items"`
	ShippingName    string                  `json:"shippingName"`
	ShippingPhone   string                  `json:"shippingPhone"`
	ShippingLine1   string                  `json:"shippingLine1"`
	ShippingLine2   string                  `json:"shippingLine2,omitempty"`
	ShippingCity    string                  `json:"shippingCity"`
	ShippingState   string                  `json:"shippingState"`
	ShippingPincode string                  `json:"shippingPincode"`
	ShippingCountry string                  `json:"shippingCountry"`
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type createOrderResponse struct {
	Data struct {
		CreateOrder *domain.PlacedOrder `json:"createOrder"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}

func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.PlacedOrder, error) {
	input := createOrderInput{
		Items:           draft.Items,
		ShippingName:    draft.Shipping.Name,
		ShippingPhone:   draft.Shipping.Phone,
		ShippingLine1:   draft.Shipping.Line1,
		ShippingLine2:   draft.Shipping.Line2,
		ShippingCity:    draft.Shipping.City,
		ShippingState:   draft.Shipping.State,
		ShippingPincode: draft.Shipping.Pincode,
		ShippingCountry: draft.Shipping.Country,
	}

	body, err := json.Marshal(gqlRequest{
		Query:     createOrderMutation,
		Variables: map[string]interface{}{"input": input},
	})
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := domain.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order api unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order api returned status %d", resp.StatusCode)
	}

	var parsed createOrderResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("order rejected: %s", parsed.Errors[0].Message)
	}
	if parsed.Data.CreateOrder == nil {
		return nil, fmt.Errorf("order response missing createOrder payload")
	}

	return parsed.Data.CreateOrder, nil
}
