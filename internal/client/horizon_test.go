package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const testAddress = "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7"

func TestAccountDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/"+testAddress, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"account_id": "` + testAddress + `",
			"sequence": "103420918407103888",
			"subentry_count": 1,
			"balances": [
				{"balance": "125.5000000", "asset_type": "native"},
				{"balance": "12.0000000", "asset_type": "credit_alphanum4", "asset_code": "USDC", "asset_issuer": "GISSUER"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewHorizonClient(srv.URL, nil)
	account, err := c.AccountDetail(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, "103420918407103888", account.Sequence)
	require.Equal(t, int32(1), account.SubentryCount)
	require.Len(t, account.Balances, 2)
	require.Equal(t, "native", account.Balances[0].AssetType)
	require.Equal(t, "USDC", account.Balances[1].AssetCode)
}

func TestAccountDetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "Resource Missing", "status": 404}`))
	}))
	defer srv.Close()

	c := NewHorizonClient(srv.URL, nil)
	_, err := c.AccountDetail(context.Background(), testAddress)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestTransactionsQueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/"+testAddress+"/transactions", r.URL.Path)
		require.Equal(t, "25", r.URL.Query().Get("limit"))
		require.Equal(t, "desc", r.URL.Query().Get("order"))
		w.Write([]byte(`{"_embedded": {"records": [
			{"hash": "abc123", "ledger": 7, "successful": true, "fee_charged": "100", "operation_count": 1},
			{"hash": "def456", "ledger": 6, "successful": false, "fee_charged": "100", "operation_count": 2}
		]}}`))
	}))
	defer srv.Close()

	c := NewHorizonClient(srv.URL, nil)
	records, err := c.Transactions(context.Background(), testAddress, 25)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "abc123", records[0].Hash)
	require.Equal(t, "100", records[0].FeeCharged.String())
	require.False(t, records[1].Successful)
}

func TestTransactionOperations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/abc123/operations", r.URL.Path)
		w.Write([]byte(`{"_embedded": {"records": [
			{"id": "1", "type": "payment", "from": "GFROM", "to": "GTO", "amount": "5.0000000", "asset_type": "native"}
		]}}`))
	}))
	defer srv.Close()

	c := NewHorizonClient(srv.URL, nil)
	ops, err := c.TransactionOperations(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, ops, 1)
	require.Equal(t, "payment", ops[0].Type)
	require.Equal(t, "native", ops[0].AssetType)
}

func TestSubmitTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transactions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "AAAA-envelope", r.PostForm.Get("tx"))
		w.Write([]byte(`{"hash": "deadbeef", "ledger": 42, "successful": true}`))
	}))
	defer srv.Close()

	c := NewHorizonClient(srv.URL, nil)
	result, err := c.SubmitTransaction(context.Background(), "AAAA-envelope")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", result.Hash)
	require.Equal(t, int32(42), result.Ledger)
	require.True(t, result.Successful)
}

func TestSubmitTransactionRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"title": "Transaction Failed",
			"status": 400,
			"extras": {"result_codes": {"transaction": "tx_bad_seq", "operations": []}}
		}`))
	}))
	defer srv.Close()

	c := NewHorizonClient(srv.URL, nil)
	_, err := c.SubmitTransaction(context.Background(), "AAAA-envelope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "tx_bad_seq")
}

func TestFriendbotFund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, testAddress, r.URL.Query().Get("addr"))
		w.Write([]byte(`{"hash": "fundhash"}`))
	}))
	defer srv.Close()

	fb := NewFriendbotClient(srv.URL, nil)
	require.NoError(t, fb.Fund(context.Background(), testAddress))
}

func TestFriendbotFundFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title": "account already funded"}`))
	}))
	defer srv.Close()

	fb := NewFriendbotClient(srv.URL, nil)
	err := fb.Fund(context.Background(), testAddress)
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
}
