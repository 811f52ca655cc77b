package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"offerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceLifecycle(t *testing.T) {
	s := newHandlerTestServer(t)
	client, freelancer := seedChatUsers(t, s)

	app := authedApp(freelancer.ID)
	app.Post("/services", s.CreateService)
	app.Patch("/services/:id", s.UpdateService)
	app.Get("/services", s.GetServices)

	t.Run("Only Freelancers Offer Services", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/services", map[string]any{
			"freelancer_id": client.ID,
			"title":         "Logo design",
			"base_price":    100.0,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Defaults", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/services", map[string]any{
			"freelancer_id": freelancer.ID,
			"title":         "Logo design",
			"base_price":    100.0,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		svc := decodeBody[models.Service](t, resp)
		assert.Equal(t, "USD", svc.Currency)
		assert.Equal(t, 1, svc.DeliveryTimeDays)
		assert.True(t, svc.IsActive)
	})

	t.Run("Partial Update", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/services/1", map[string]any{
			"base_price": 150.0,
			"is_active":  false,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		svc := decodeBody[models.Service](t, resp)
		assert.Equal(t, 150.0, svc.BasePrice)
		assert.False(t, svc.IsActive)
		assert.Equal(t, "Logo design", svc.Title)
	})

	t.Run("Active Filter", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/services?is_active=true", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		services := decodeBody[[]models.Service](t, resp)
		assert.Empty(t, services, "the only listing was deactivated above")
	})
}

func TestCategoryFlow(t *testing.T) {
	s := newHandlerTestServer(t)
	client, _ := seedChatUsers(t, s)

	app := authedApp(client.ID)
	app.Post("/categories", s.CreateCategory)
	app.Get("/categories/slug/:slug", s.GetCategoryBySlug)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/categories", map[string]any{
		"name": "Web Development",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decodeBody[models.Category](t, resp)
	assert.Equal(t, "web-development", cat.Slug, "slug is derived from the name when omitted")

	// Same slug conflicts even under a different display name
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/categories", map[string]any{
		"name": "Frontend",
		"slug": "web-development",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/categories", map[string]any{
		"name": "Bad Slug",
		"slug": "Not A Slug!",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Lookup by slug resolves the created category
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/categories/slug/web-development", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decodeBody[models.Category](t, resp)
	assert.Equal(t, "Web Development", found.Name)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/categories/slug/no-such-slug", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestServiceCategoryLinks(t *testing.T) {
	s := newHandlerTestServer(t)
	_, freelancer := seedChatUsers(t, s)

	require.NoError(t, s.db.Create(&models.Service{
		FreelancerID: freelancer.ID, Title: "Logo design",
		BasePrice: 100, Currency: "USD", DeliveryTimeDays: 1, IsActive: true,
	}).Error)
	require.NoError(t, s.db.Create(&models.Category{
		Name: "Design", Slug: "design",
	}).Error)

	app := authedApp(freelancer.ID)
	app.Post("/service-categories", s.LinkServiceCategory)
	app.Delete("/service-categories/:serviceId/:categoryId", s.UnlinkServiceCategory)
	app.Get("/services/:id/categories", s.GetServiceCategories)

	t.Run("Both Sides Must Exist", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/service-categories", map[string]any{
			"service_id":  9999,
			"category_id": 1,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()

		resp, err = app.Test(jsonRequest(t, http.MethodPost, "/service-categories", map[string]any{
			"service_id":  1,
			"category_id": 9999,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Link, Relist, Unlink", func(t *testing.T) {
		body := map[string]any{"service_id": 1, "category_id": 1}

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/service-categories", body))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		// Linking the same pair again conflicts
		resp, err = app.Test(jsonRequest(t, http.MethodPost, "/service-categories", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		_ = resp.Body.Close()

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/services/1/categories", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		links := decodeBody[[]models.ServiceCategory](t, resp)
		require.Len(t, links, 1)

		resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/service-categories/1/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()

		resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/service-categories/1/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
