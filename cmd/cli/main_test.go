package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against srv and returns stdout.
func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--url", srv.URL}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func jsonServer(t *testing.T, wantMethod, wantPath string, status int, body any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantMethod, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestReconcileCmd(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		srv := jsonServer(t, http.MethodGet, "/api/v1/ledger/reconcile", http.StatusOK, map[string]any{
			"consistent":         true,
			"total_holders":      3,
			"reconciled_holders": 3,
			"products_checked":   2,
		})

		out, err := execute(t, srv, "reconcile")
		require.NoError(t, err)
		assert.Contains(t, out, "Holders: 3/3 reconciled")
		assert.Contains(t, out, "Ledger is consistent")
	})

	t.Run("inconsistent", func(t *testing.T) {
		srv := jsonServer(t, http.MethodGet, "/api/v1/ledger/reconcile", http.StatusOK, map[string]any{
			"consistent":         false,
			"total_holders":      2,
			"reconciled_holders": 1,
			"discrepancies": []map[string]string{
				{"holder_id": "acc-2", "holder_kind": "account", "difference": "5"},
			},
		})

		out, err := execute(t, srv, "reconcile")
		require.EqualError(t, err, "ledger is inconsistent")
		assert.Contains(t, out, "acc-2")
		assert.Contains(t, out, "off by 5")
	})
}

func TestBalanceCmd(t *testing.T) {
	srv := jsonServer(t, http.MethodGet, "/api/v1/accounts/acc-1/balance", http.StatusOK, map[string]string{
		"id":      "acc-1",
		"balance": "460.5",
	})

	out, err := execute(t, srv, "balance", "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "460.5\n", out)

	_, err = execute(t, srv, "balance")
	assert.Error(t, err)
}

func TestBatchesCmd(t *testing.T) {
	srv := jsonServer(t, http.MethodGet, "/api/v1/products/p-1/batches", http.StatusOK, map[string]any{
		"batches": []map[string]any{
			{
				"id":                 "b-1",
				"available_quantity": "6",
				"purchase_price":     "10",
				"purchase_date":      "2026-01-02T00:00:00Z",
				"status":             "active",
			},
		},
	})

	out, err := execute(t, srv, "batches", "p-1")
	require.NoError(t, err)
	assert.Contains(t, out, "b-1")
	assert.Contains(t, out, "2026-01-02")
}

func TestBatchesExpireCmd(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products/batches/expire", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]int{"expired": 2})
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, srv, "batches", "expire", "--as-of", "2026-05-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "Expired 2 batches\n", out)
	assert.Equal(t, "2026-05-01T00:00:00Z", got["as_of"])

	_, err = execute(t, srv, "batches", "expire", "--as-of", "yesterday")
	assert.ErrorContains(t, err, "invalid --as-of")
}

func TestTxDeleteCmd(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		srv := jsonServer(t, http.MethodDelete, "/api/v1/transactions/tx-1", http.StatusNoContent, nil)

		out, err := execute(t, srv, "tx", "delete", "tx-1")
		require.NoError(t, err)
		assert.Equal(t, "Deleted tx-1\n", out)
	})

	t.Run("has dependents", func(t *testing.T) {
		srv := jsonServer(t, http.MethodDelete, "/api/v1/transactions/tx-1", http.StatusConflict, map[string]string{
			"error":   "transaction has dependents",
			"message": "batch consumed by tx-2",
		})

		_, err := execute(t, srv, "tx", "delete", "tx-1")
		var apiErr *apiError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.Status)
		assert.Contains(t, err.Error(), "batch consumed by tx-2")
	})
}
