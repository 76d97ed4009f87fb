package shopsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

// newServer answers every request with status and body, recording what it saw.
func newServer(t *testing.T, status int, body string) (*shopsdk.Client, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &rec.body))
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return shopsdk.NewClient(srv.URL+"/", nil), rec
}

func TestLogin(t *testing.T) {
	t.Parallel()

	client, rec := newServer(t, http.StatusOK, `{"message":"ok","data":"tok.en.value"}`)

	token, err := client.Login(context.Background(), shopsdk.LoginRequest{Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "tok.en.value", token)

	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/auth/login", rec.path)
	require.Equal(t, map[string]any{"email": "a@x.io", "password": "pw"}, rec.body)
}

func TestCartEndpoints(t *testing.T) {
	t.Parallel()

	cartJSON := `{"message":"ok","data":{"_id":"c1","user":"u1","items":[{"product":{"_id":"p1","name":"Mug","price":2},"quantity":3,"price":2,"total":6}],"cartTotal":6,"itemsCount":1}}`

	t.Run("add", func(t *testing.T) {
		t.Parallel()
		client, rec := newServer(t, http.StatusOK, cartJSON)

		cart, err := client.AddToCart(context.Background(), "Mug", 1)
		require.NoError(t, err)
		require.Equal(t, 3, cart.Count())
		require.Equal(t, "/cart", rec.path)
		require.Equal(t, map[string]any{"name": "Mug", "quantity": float64(1)}, rec.body)
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		client, rec := newServer(t, http.StatusOK, cartJSON)

		_, err := client.RemoveFromCart(context.Background(), "Mug")
		require.NoError(t, err)
		require.Equal(t, "/cart/remove", rec.path)
		require.Equal(t, map[string]any{"name": "Mug"}, rec.body)
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()
		client, rec := newServer(t, http.StatusOK, `{"message":"cleared"}`)

		require.NoError(t, client.ClearCart(context.Background()))
		require.Equal(t, http.MethodDelete, rec.method)
		require.Equal(t, "/cart/clear", rec.path)
	})

	t.Run("null cart", func(t *testing.T) {
		t.Parallel()
		client, _ := newServer(t, http.StatusOK, `{"message":"no cart","data":null}`)

		cart, err := client.GetCart(context.Background())
		require.NoError(t, err)
		require.Nil(t, cart)
	})
}

func TestOrderEndpoints(t *testing.T) {
	t.Parallel()

	orderJSON := `{"message":"ok","data":{"_id":"o 1","user":"u1","product":"p1","status":"shipped"}}`

	cases := []struct {
		name   string
		call   func(*shopsdk.Client) error
		method string
		path   string
		body   map[string]any
	}{
		{"create", func(c *shopsdk.Client) error {
			_, err := c.CreateOrder(context.Background(), shopsdk.CreateOrderRequest{Address: "1 Rd", PhoneNumber: "0123456789"})
			return err
		}, http.MethodPost, "/order", map[string]any{"address": "1 Rd", "phonenumber": "0123456789"}},
		{"get", func(c *shopsdk.Client) error {
			_, err := c.GetOrder(context.Background(), "o 1")
			return err
		}, http.MethodGet, "/order/o 1", nil},
		{"update", func(c *shopsdk.Client) error {
			_, err := c.UpdateOrder(context.Background(), "o1", shopsdk.UpdateOrderRequest{Address: "2 Rd"})
			return err
		}, http.MethodPut, "/order/o1", map[string]any{"address": "2 Rd"}},
		{"cancel", func(c *shopsdk.Client) error {
			_, err := c.CancelOrder(context.Background(), "o1")
			return err
		}, http.MethodPut, "/order/o1/cancel", map[string]any{}},
		{"status", func(c *shopsdk.Client) error {
			_, err := c.UpdateOrderStatus(context.Background(), "o1", shopsdk.StatusShipped)
			return err
		}, http.MethodPut, "/order/o1/status", map[string]any{"status": "shipped"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client, rec := newServer(t, http.StatusOK, orderJSON)

			require.NoError(t, tc.call(client))
			require.Equal(t, tc.method, rec.method)
			require.Equal(t, tc.path, rec.path)
			require.Equal(t, tc.body, rec.body)
		})
	}
}

func TestListOrdersEmpty(t *testing.T) {
	t.Parallel()

	client, rec := newServer(t, http.StatusOK, `{"message":"ok","data":[]}`)

	orders, err := client.ListAllOrders(context.Background())
	require.NoError(t, err)
	require.NotNil(t, orders)
	require.Empty(t, orders)
	require.Equal(t, "/order/all", rec.path)
}

func TestOrderStats(t *testing.T) {
	t.Parallel()

	client, _ := newServer(t, http.StatusOK,
		`{"message":"ok","data":{"stats":[{"_id":"pending","count":2,"totalAmount":30}],"totalOrders":2,"pendingOrders":2,"canCancel":true}}`)

	stats, err := client.OrderStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalOrders)
	require.True(t, stats.CanCancel)
	require.Equal(t, shopsdk.StatusPending, stats.Stats[0].Status)
}

func TestErrorResponses(t *testing.T) {
	t.Parallel()

	t.Run("envelope", func(t *testing.T) {
		t.Parallel()
		client, _ := newServer(t, http.StatusForbidden, `{"message":"not yours","error":"owner mismatch"}`)

		_, err := client.GetOrder(context.Background(), "o1")
		var apiErr *shopsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, "not yours", apiErr.Message)
		require.Equal(t, "owner mismatch", apiErr.Detail)
		require.True(t, shopsdk.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden))
		require.False(t, shopsdk.IsStatus(err, http.StatusNotFound))
	})

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		client, _ := newServer(t, http.StatusBadGateway, "upstream down\n")

		_, err := client.ListOrders(context.Background())
		var apiErr *shopsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "upstream down", apiErr.Message)
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()
		client := shopsdk.NewClient("http://127.0.0.1:1", nil)

		_, err := client.GetCart(context.Background())
		require.Error(t, err)
		require.False(t, shopsdk.IsStatus(err, http.StatusNotFound))
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()

	client, rec := newServer(t, http.StatusOK, `{"message":"Password updated"}`)

	msg, err := client.UpdatePassword(context.Background(), "u1", shopsdk.UpdatePasswordRequest{
		CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "newpass",
	})
	require.NoError(t, err)
	require.Equal(t, "Password updated", msg)
	require.Equal(t, "/user/u1/password", rec.path)
	require.Equal(t, "newpass", rec.body["confirmPassword"])
}
