package server

import (
	"net/http"
	"testing"

	"offerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionStatusFlow(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)

	app := authedApp(client.ID)
	app.Post("/transactions", s.CreateTransaction)
	app.Patch("/transactions/:id/status", s.UpdateTransactionStatus)

	// Create a pending payment; the hash is generated when omitted
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/transactions", map[string]any{
		"from_user_id": client.ID,
		"to_user_id":   freelancer.ID,
		"amount":       150.0,
		"type":         "payment",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tx := decodeBody[models.Transaction](t, resp)
	assert.Equal(t, models.TransactionStatusPending, tx.Status)
	assert.Equal(t, "USD", tx.Currency)
	assert.NotEmpty(t, tx.TransactionHash)
	assert.Nil(t, tx.CompletedAt)

	// Complete it
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/transactions/1/status", map[string]any{
		"status": "completed",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	completed := decodeBody[models.Transaction](t, resp)
	assert.Equal(t, models.TransactionStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// Re-asserting the same status is accepted as a no-op
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/transactions/1/status", map[string]any{
		"status": "completed",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Any other transition out of a terminal status conflicts
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/transactions/1/status", map[string]any{
		"status": "pending",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreateTransaction_DuplicateHash(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)

	app := authedApp(client.ID)
	app.Post("/transactions", s.CreateTransaction)

	body := map[string]any{
		"from_user_id":     client.ID,
		"to_user_id":       freelancer.ID,
		"amount":           150.0,
		"type":             "payment",
		"transaction_hash": "0xdeadbeef",
	}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/transactions", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/transactions", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetTransactionByHash(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)

	require.NoError(t, s.db.Create(&models.Transaction{
		FromUserID: client.ID, ToUserID: freelancer.ID, Amount: 100,
		Currency: "USD", TransactionHash: "0xfeedface",
		Status: models.TransactionStatusPending, Type: models.TransactionTypePayment,
	}).Error)

	app := authedApp(client.ID)
	app.Get("/transactions/hash/:hash", s.GetTransactionByHash)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/transactions/hash/0xfeedface", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tx := decodeBody[models.Transaction](t, resp)
	assert.Equal(t, "0xfeedface", tx.TransactionHash)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/transactions/hash/0xunknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetTransactions_UserFilterMatchesEitherSide(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)
	third := models.User{
		WalletAddress: "0x2000000000000000000000000000000000000003",
		Username:      "third", IsActive: true,
	}
	require.NoError(t, s.db.Create(&third).Error)

	require.NoError(t, s.db.Create(&models.Transaction{
		FromUserID: client.ID, ToUserID: freelancer.ID, Amount: 100,
		Currency: "USD", TransactionHash: "h1",
		Status: models.TransactionStatusPending, Type: models.TransactionTypePayment,
	}).Error)
	require.NoError(t, s.db.Create(&models.Transaction{
		FromUserID: freelancer.ID, ToUserID: third.ID, Amount: 50,
		Currency: "USD", TransactionHash: "h2",
		Status: models.TransactionStatusPending, Type: models.TransactionTypeRefund,
	}).Error)

	app := authedApp(client.ID)
	app.Get("/transactions", s.GetTransactions)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/transactions?user_id=2", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs := decodeBody[[]models.Transaction](t, resp)
	assert.Len(t, txs, 2, "user 2 is a side of both transfers")
}

func TestUpdateTransaction_TerminalIsImmutable(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)

	require.NoError(t, s.db.Create(&models.Transaction{
		FromUserID: client.ID, ToUserID: freelancer.ID, Amount: 100,
		Currency: "USD", TransactionHash: "h1",
		Status: models.TransactionStatusCancelled, Type: models.TransactionTypePayment,
	}).Error)

	app := authedApp(client.ID)
	app.Patch("/transactions/:id", s.UpdateTransaction)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/transactions/1", map[string]any{
		"amount": 500.0,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeleteTransaction_AdminGate(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)
	s.adminWallets = map[string]bool{client.WalletAddress: true}

	require.NoError(t, s.db.Create(&models.Transaction{
		FromUserID: client.ID, ToUserID: freelancer.ID, Amount: 100,
		Currency: "USD", TransactionHash: "h1",
		Status: models.TransactionStatusPending, Type: models.TransactionTypePayment,
	}).Error)

	// Non-admin caller is refused
	app := authedApp(freelancer.ID)
	app.Delete("/transactions/:id", s.AdminRequired(), s.DeleteTransaction)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/transactions/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Admin caller succeeds
	adminApp := authedApp(client.ID)
	adminApp.Delete("/transactions/:id", s.AdminRequired(), s.DeleteTransaction)

	resp, err = adminApp.Test(jsonRequest(t, http.MethodDelete, "/transactions/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()
}
