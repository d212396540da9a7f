package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/utils"
)

const (
	msgFetchOrdersFailed      = "Failed to fetch orders"
	msgCompleteOrderFailed    = "Failed to mark order as completed"
	msgFetchRestaurantsFailed = "Failed to fetch restaurants"
	msgSigninFailed           = "Signin failed"
	msgSignupFailed           = "Signup failed"
)

// APIError is a non-2xx answer from the order backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// BackendClient talks to the order-management backend. Calls are not
// retried and carry no auth header.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (bc *BackendClient) BaseURL() string {
	return bc.baseURL
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RetailerID string `json:"retailerId"`
	SecretCode string `json:"secretCode"`
}

// SignInResponse keeps the whole body; the identity sits under "restaurant".
// Inactive is set only when the backend sends "isActive": false.
type SignInResponse struct {
	Restaurant *models.Restaurant     `json:"restaurant"`
	Inactive   bool                   `json:"-"`
	Extra      map[string]interface{} `json:"-"`
}

// ListOrders returns the orders of one restaurant in backend order.
func (bc *BackendClient) ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	var orders []models.Order
	path := "/orders/" + url.PathEscape(restaurantID)
	if err := bc.do(ctx, http.MethodGet, path, nil, &orders, msgFetchOrdersFailed, false); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (bc *BackendClient) CompleteOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	path := "/orders/" + url.PathEscape(orderID) + "/complete"
	if err := bc.do(ctx, http.MethodPut, path, nil, &order, msgCompleteOrderFailed, true); err != nil {
		return nil, err
	}
	return &order, nil
}

func (bc *BackendClient) ListRestaurants(ctx context.Context) ([]models.RestaurantOption, error) {
	var options []models.RestaurantOption
	if err := bc.do(ctx, http.MethodGet, "/restaurants", nil, &options, msgFetchRestaurantsFailed, false); err != nil {
		return nil, err
	}
	if options == nil {
		options = []models.RestaurantOption{}
	}
	return options, nil
}

func (bc *BackendClient) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	var raw map[string]json.RawMessage
	if err := bc.do(ctx, http.MethodPost, "/signin", req, &raw, msgSigninFailed, true); err != nil {
		return nil, err
	}

	resp := &SignInResponse{Extra: map[string]interface{}{}}
	for k, v := range raw {
		if k == "restaurant" {
			if string(v) == "null" {
				continue
			}
			var r models.Restaurant
			if err := json.Unmarshal(v, &r); err != nil {
				return nil, fmt.Errorf("error decoding restaurant: %w", err)
			}
			var flag struct {
				IsActive *bool `json:"isActive"`
			}
			if err := json.Unmarshal(v, &flag); err == nil && flag.IsActive != nil {
				resp.Inactive = !*flag.IsActive
			}
			resp.Restaurant = &r
			continue
		}
		var val interface{}
		if err := json.Unmarshal(v, &val); err == nil {
			resp.Extra[k] = val
		}
	}
	return resp, nil
}

// SignUp activates an account. The activation result is returned as sent.
func (bc *BackendClient) SignUp(ctx context.Context, req SignUpRequest) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := bc.do(ctx, http.MethodPost, "/signup", req, &result, msgSignupFailed, true); err != nil {
		return nil, err
	}
	return result, nil
}

// do sends one request and decodes a 2xx body into out. With useDetail the
// "detail" field of an error body becomes the error message.
func (bc *BackendClient) do(ctx context.Context, method, path string, body, out interface{}, fallback string, useDetail bool) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, bc.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		if useDetail {
			if detail := errorDetail(respBody); detail != "" {
				msg = detail
			}
		}
		utils.ErrorLogger.Errorf("Backend %s %s returned %d: %s", method, path, resp.StatusCode, msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	return nil
}

func errorDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	return ""
}
