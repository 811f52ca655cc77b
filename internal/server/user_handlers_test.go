package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"offerhub/internal/config"
	"offerhub/internal/database"
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newHandlerTestServer builds a Server on an in-memory sqlite database with
// the full repository/service graph wired, skipping metrics and Redis.
func newHandlerTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret", Env: "test"},
		db:           db,
		adminWallets: map[string]bool{},

		userRepo:            repository.NewUserRepository(db),
		serviceRepo:         repository.NewServiceRepository(db),
		categoryRepo:        repository.NewCategoryRepository(db),
		serviceCategoryRepo: repository.NewServiceCategoryRepository(db),
		convRepo:            repository.NewConversationRepository(db),
		msgRepo:             repository.NewMessageRepository(db),
		txRepo:              repository.NewTransactionRepository(db),
		reviewRepo:          repository.NewReviewRepository(db),
		achievementRepo:     repository.NewAchievementRepository(db),
		userAchievementRepo: repository.NewUserAchievementRepository(db),
		skillRepo:           repository.NewSkillRepository(db),
		freelancerSkillRepo: repository.NewFreelancerSkillRepository(db),
		activityRepo:        repository.NewActivityLogRepository(db),
	}

	s.userService = service.NewUserService(
		s.userRepo, s.freelancerSkillRepo, s.userAchievementRepo, s.activityRepo)
	s.catalogService = service.NewCatalogService(
		s.serviceRepo, s.categoryRepo, s.serviceCategoryRepo, s.userRepo)
	s.chatService = service.NewChatService(s.convRepo, s.msgRepo, s.userRepo)
	s.transactionService = service.NewTransactionService(s.txRepo, s.userRepo, s.activityRepo)
	s.reviewService = service.NewReviewService(s.reviewRepo, s.userRepo)
	s.achievementService = service.NewAchievementService(
		s.achievementRepo, s.userAchievementRepo, s.userRepo)
	s.skillService = service.NewSkillService(s.skillRepo, s.freelancerSkillRepo, s.userRepo)
	s.activityService = service.NewActivityService(s.activityRepo, s.userRepo)

	return s
}

// authedApp returns a Fiber app where every request runs as the given user,
// bypassing JWT parsing. Tests register only the routes they exercise.
func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	_ = resp.Body.Close()
	return v
}

func TestGetUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newMockedServer(mockRepo)

	app.Get("/users/:id", s.GetUser)

	tests := []struct {
		name           string
		userID         string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:   "Success",
			userID: "1",
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, Username: "alice", WalletAddress: testWalletAddr}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			userID:         "abc",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Not Found",
			userID: "99",
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", uint(99))).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userID, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserLifecycleFlow(t *testing.T) {
	s := newHandlerTestServer(t)
	app := authedApp(1)
	app.Post("/users", s.CreateUser)
	app.Get("/users/:id", s.GetUser)
	app.Patch("/users/:id", s.UpdateUser)
	app.Delete("/users/:id", s.DeleteUser)

	// Create
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]any{
		"wallet_address": testWalletAddr,
		"username":       "alice",
		"email":          "alice@example.com",
		"is_freelancer":  true,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.User](t, resp)
	require.NotZero(t, created.ID)

	// Same wallet again conflicts
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]any{
		"wallet_address": testWalletAddr,
		"username":       "alice2",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Partial update keeps untouched fields
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/users/1", map[string]any{
		"username": "alice_v2",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.User](t, resp)
	assert.Equal(t, "alice_v2", updated.Username)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "alice@example.com", *updated.Email)
	assert.True(t, updated.IsFreelancer)

	// Delete, then a second delete misses
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/users/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/users/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// The deleted account is gone for reads too
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/users/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetUsers_FreelancerFilter(t *testing.T) {
	s := newHandlerTestServer(t)
	require.NoError(t, s.db.Create(&models.User{
		WalletAddress: "0x1000000000000000000000000000000000000001",
		Username:      "freelancer1", IsFreelancer: true, IsActive: true,
	}).Error)
	require.NoError(t, s.db.Create(&models.User{
		WalletAddress: "0x1000000000000000000000000000000000000002",
		Username:      "client1", IsFreelancer: false, IsActive: true,
	}).Error)

	app := authedApp(1)
	app.Get("/users", s.GetUsers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?is_freelancer=true", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]models.User](t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "freelancer1", users[0].Username)
}

func TestGetUserByUsername(t *testing.T) {
	s := newHandlerTestServer(t)
	require.NoError(t, s.db.Create(&models.User{
		WalletAddress: testWalletAddr,
		Username:      "alice", IsActive: true,
	}).Error)

	app := authedApp(1)
	app.Get("/users/username/:username", s.GetUserByUsername)

	t.Run("Success", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/username/alice", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := decodeBody[models.User](t, resp)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Unknown Username", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/username/ghost", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Invalid Username", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/username/a", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestEmptyListsRenderAsArrays(t *testing.T) {
	s := newHandlerTestServer(t)

	app := authedApp(1)
	app.Get("/users", s.GetUsers)
	app.Get("/services", s.GetServices)
	app.Get("/transactions", s.GetTransactions)
	app.Get("/reviews", s.GetReviews)
	app.Get("/activity-logs", s.GetActivityLogs)

	for _, target := range []string{
		"/users", "/services", "/transactions", "/reviews", "/activity-logs",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, "[]", string(body), target)
	}
}

func TestDeactivateUser_Idempotent(t *testing.T) {
	s := newHandlerTestServer(t)
	require.NoError(t, s.db.Create(&models.User{
		WalletAddress: "0x1000000000000000000000000000000000000001",
		Username:      "alice", IsActive: true,
	}).Error)

	app := authedApp(1)
	app.Patch("/users/:id/deactivate", s.DeactivateUser)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/users/1/deactivate", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := decodeBody[models.User](t, resp)
		assert.False(t, user.IsActive)
	}
}
