package catalog

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

// Client reads products from the remote commerce API over GraphQL. It is the
// stock source: the stock value it returns is what the cart clamps against.
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

const getProductQuery = `query GetProductById($id: ID!) {
  product(id: $id) {
    id
    title
    description
    price
    stock
    thumbnail
    isActive
    category {
      name
    }
  }
}`

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type productPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Thumbnail   string `json:"thumbnail"`
	IsActive    bool   `json:"isActive"`
	Category    *struct {
		Name string `json:"name"`
	} `json:"category"`
}

type getProductResponse struct {
	Data struct {
		Product *productPayload `json:"product"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	body, err := json.Marshal(gqlRequest{
		Query:     getProductQuery,
		Variables: map[string]interface{}{"id": id},
	})
	if err != nil {
		return nil, fmt.Errorf("encode product request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read product response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var parsed getProductResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("product query failed: %s", parsed.Errors[0].Message)
	}
	if parsed.Data.Product == nil {
		return nil, nil
	}

	p := parsed.Data.Product
	product := &domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Thumbnail:   p.Thumbnail,
		IsActive:    p.IsActive,
	}
	if p.Category != nil {
		product.Category = p.Category.Name
	}
	return product, nil
}
