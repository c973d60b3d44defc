package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pageJSON builds one products page carrying one single-variant product per
// SKU, each with one "Main" location holding 1 available unit.
func pageJSON(t *testing.T, hasNext bool, cursor string, skus ...string) string {
	t.Helper()

	var resp graphQLResponse
	resp.Data.Products.PageInfo = pageInfo{HasNextPage: hasNext, EndCursor: cursor}

	for _, sku := range skus {
		var level inventoryLevelEdge
		level.Node.Location.Name = "Main"
		level.Node.Quantities = []quantityEntry{{Name: "available", Quantity: 1}}

		var variant variantEdge
		variant.Node.ID = "gid://shopify/ProductVariant/" + sku
		variant.Node.SKU = sku
		variant.Node.InventoryItem.InventoryLevels.Edges = []inventoryLevelEdge{level}

		var product productEdge
		product.Node.ID = "gid://shopify/Product/" + sku
		product.Node.Variants.Edges = []variantEdge{variant}

		resp.Data.Products.Edges = append(resp.Data.Products.Edges, product)
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func newTestClient(baseURL string) *Client {
	cfg := Config{
		BaseURL:         baseURL,
		AccessToken:     "test-token",
		PageDelayMillis: 1,
		RetryBaseMillis: 1,
	}
	return NewClient(cfg, zap.NewNop())
}

func decodeRequest(t *testing.T, r *http.Request) graphQLRequest {
	t.Helper()
	var req graphQLRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func TestFullInventory_Pagination(t *testing.T) {
	var requests []graphQLRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get(accessTokenHeader))
		req := decodeRequest(t, r)
		requests = append(requests, req)

		switch len(requests) {
		case 1:
			fmt.Fprint(w, pageJSON(t, true, "cur-1", "A"))
		case 2:
			fmt.Fprint(w, pageJSON(t, true, "cur-2", "B"))
		default:
			fmt.Fprint(w, pageJSON(t, false, "", "C"))
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	facts, err := c.FullInventory(context.Background(), "store-a")

	require.NoError(t, err)
	require.Len(t, requests, 3, "exactly one request per page")
	require.Len(t, facts, 3)

	// Facts arrive in page order
	assert.Equal(t, "A", facts[0].SKU)
	assert.Equal(t, "B", facts[1].SKU)
	assert.Equal(t, "C", facts[2].SKU)

	// Cursor threading: absent on the first page, then the previous end cursor
	assert.NotContains(t, requests[0].Variables, "cursor")
	assert.Equal(t, "cur-1", requests[1].Variables["cursor"])
	assert.Equal(t, "cur-2", requests[2].Variables["cursor"])
}

func TestFullInventory_CancellationReturnsPartial(t *testing.T) {
	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		fmt.Fprint(w, pageJSON(t, true, "cur-1", "A"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	// Cancellation surfaces through the inter-page pause.
	c.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}
	facts, err := c.FullInventory(context.Background(), "store-a")

	require.NoError(t, err)
	assert.Equal(t, 1, requestCount, "no further page requests after cancellation")
	require.Len(t, facts, 1)
	assert.Equal(t, "A", facts[0].SKU)
}

func TestExecute_RetriesTransientWithBackoff(t *testing.T) {
	var delays []time.Duration
	failures := 2
	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, pageJSON(t, false, "", "A"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.cfg.RetryBaseMillis = 100
	c.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	facts, err := c.FullInventory(context.Background(), "store-a")

	require.NoError(t, err)
	assert.Equal(t, 3, requestCount)
	require.Len(t, facts, 1)

	// Two backoff pauses (the final sleep recorded is the inter-page pause)
	require.GreaterOrEqual(t, len(delays), 2)
	assert.Equal(t, 100*time.Millisecond, delays[0])
	assert.Equal(t, 200*time.Millisecond, delays[1])
	assert.Less(t, delays[0], delays[1], "backoff delay strictly increases")
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	_, err := c.FullInventory(context.Background(), "store-a")

	require.Error(t, err)
	assert.Equal(t, 3, requestCount, "no fourth attempt after three failures")
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestExecute_GraphQLErrorsAreFatal(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"Throttled"},{"message":"Bad field"}]}`)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FullInventory(context.Background(), "store-a")

	require.Error(t, err)
	assert.Equal(t, 1, requestCount, "application-level errors are not retried")
	assert.Contains(t, err.Error(), "Throttled")
	assert.Contains(t, err.Error(), "Bad field")
}

func TestExecute_ClientErrorIsFatal(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FullInventory(context.Background(), "store-a")

	require.Error(t, err)
	assert.Equal(t, 1, requestCount)
}

func TestIncrementalInventory_Filter(t *testing.T) {
	var captured graphQLRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = decodeRequest(t, r)
		fmt.Fprint(w, pageJSON(t, false, "", "A"))
	}))
	defer server.Close()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -1)
	to := today.Add(-time.Nanosecond)

	c := newTestClient(server.URL)
	_, err := c.IncrementalInventory(context.Background(), "store-a", from, to)

	require.NoError(t, err)
	assert.Equal(t, "updated_at:>="+from.Format("2006-01-02"), captured.Variables["query"])
}

func TestPrices_OneFactPerVariant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Price pages carry no inventory levels at all
		fmt.Fprint(w, `{"data":{"products":{"pageInfo":{"hasNextPage":false,"endCursor":""},"edges":[
			{"node":{"id":"gid://shopify/Product/1","variants":{"edges":[
				{"node":{"id":"gid://shopify/ProductVariant/11","sku":"A","price":"5.00"}},
				{"node":{"id":"gid://shopify/ProductVariant/12","sku":"B","price":"6.00"}}
			]}}}
		]}}}`)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	facts, err := c.Prices(context.Background(), "store-a")

	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "11", facts[0].VariantID)
	assert.Equal(t, "12", facts[1].VariantID)
	assert.Empty(t, facts[0].Location)
	assert.True(t, facts[0].Price.Valid)
}

func TestConfig_StoreNames(t *testing.T) {
	assert.Equal(t, []string{"default"}, Config{}.StoreNames())
	assert.Equal(t, []string{"alpha", "beta"}, Config{Stores: "alpha, beta"}.StoreNames())
}

func TestConfig_CredentialsFor(t *testing.T) {
	cfg := Config{
		BaseURL:     "https://global.example.com",
		AccessToken: "global-token",
		StoreOverrides: map[string]StoreCredentials{
			"special": {BaseURL: "https://special.example.com"},
		},
	}

	t.Run("Global fallback", func(t *testing.T) {
		creds, err := cfg.CredentialsFor("plain")
		assert.NoError(t, err)
		assert.Equal(t, "https://global.example.com", creds.BaseURL)
		assert.Equal(t, "global-token", creds.AccessToken)
	})

	t.Run("Partial override keeps global token", func(t *testing.T) {
		creds, err := cfg.CredentialsFor("special")
		assert.NoError(t, err)
		assert.Equal(t, "https://special.example.com", creds.BaseURL)
		assert.Equal(t, "global-token", creds.AccessToken)
	})

	t.Run("Missing configuration", func(t *testing.T) {
		_, err := Config{}.CredentialsFor("nowhere")
		assert.Error(t, err)
	})
}
