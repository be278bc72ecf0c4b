package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	printingapp "github.com/bizledger/backend/internal/application/printing"
	domain "github.com/bizledger/backend/internal/domain/printing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/interfaces/http/dto"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
	"github.com/bizledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockTemplateRepo mocks the template repository for handler tests
type mockTemplateRepo struct {
	mock.Mock
}

func (m *mockTemplateRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.ReceiptTemplate, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptTemplate), args.Error(1)
}

func (m *mockTemplateRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]domain.ReceiptTemplate, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptTemplate), args.Error(1)
}

func (m *mockTemplateRepo) FindDefault(ctx context.Context, tenantID uuid.UUID) (*domain.ReceiptTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptTemplate), args.Error(1)
}

func (m *mockTemplateRepo) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTemplateRepo) Save(ctx context.Context, template *domain.ReceiptTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *mockTemplateRepo) UnsetDefaultForTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *mockTemplateRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *mockTemplateRepo) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTemplateRouter(repo *mockTemplateRepo) *gin.Engine {
	svc := printingapp.NewTemplateService(repo, nil, zap.NewNop())
	h := NewReceiptTemplateHandler(svc)

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(ReceiptTemplateRoutes(h, middleware.TenantMiddleware()))
	r.Setup()
	return engine
}

func newStoredTemplate(t *testing.T, tenantID uuid.UUID, name string) *domain.ReceiptTemplate {
	t.Helper()
	template, err := domain.NewReceiptTemplate(
		tenantID,
		name,
		"#667eea",
		domain.PaperSizeReceipt80MM,
		domain.Sections{
			{ID: "header-1", Type: domain.SectionHeader},
			{ID: "items-1", Type: domain.SectionItemsTable},
		},
	)
	require.NoError(t, err)
	return template
}

func doJSON(engine *gin.Engine, method, path string, tenantID uuid.UUID, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tenantID != uuid.Nil {
		req.Header.Set(middleware.TenantHeaderKey, tenantID.String())
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestReceiptTemplateHandler_CreateTemplate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates template", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		repo.On("ExistsByName", mock.Anything, tenantID, "Counter", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		engine := newTemplateRouter(repo)
		w := doJSON(engine, http.MethodPost, "/api/v1/receipt-templates", tenantID, printingapp.CreateTemplateRequest{
			Name:      "Counter",
			PaperSize: "RECEIPT_80MM",
			Sections: []printingapp.SectionDTO{
				{ID: "header-1", Type: "header"},
			},
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp APIResponse[printingapp.TemplateResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Counter", resp.Data.Name)
		assert.Equal(t, "#667eea", resp.Data.AccentColor)
		assert.Equal(t, tenantID.String(), resp.Data.TenantID)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		engine := newTemplateRouter(repo)

		w := doJSON(engine, http.MethodPost, "/api/v1/receipt-templates", tenantID, map[string]any{
			"paper_size": "RECEIPT_80MM",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		repo.On("ExistsByName", mock.Anything, tenantID, "Counter", (*uuid.UUID)(nil)).Return(true, nil)

		engine := newTemplateRouter(repo)
		w := doJSON(engine, http.MethodPost, "/api/v1/receipt-templates", tenantID, printingapp.CreateTemplateRequest{
			Name:      "Counter",
			PaperSize: "RECEIPT_80MM",
		})

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("requires tenant context", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		engine := newTemplateRouter(repo)

		w := doJSON(engine, http.MethodPost, "/api/v1/receipt-templates", uuid.Nil, printingapp.CreateTemplateRequest{
			Name:      "Counter",
			PaperSize: "RECEIPT_80MM",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestReceiptTemplateHandler_GetTemplate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns template", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		template := newStoredTemplate(t, tenantID, "Counter")
		repo.On("FindByID", mock.Anything, tenantID, template.ID).Return(template, nil)

		engine := newTemplateRouter(repo)
		w := doJSON(engine, http.MethodGet, "/api/v1/receipt-templates/"+template.ID.String(), tenantID, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp APIResponse[printingapp.TemplateResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, template.ID.String(), resp.Data.ID)
		assert.Len(t, resp.Data.Sections, 2)
	})

	t.Run("returns 404 for unknown template", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		missingID := uuid.New()
		repo.On("FindByID", mock.Anything, tenantID, missingID).Return(nil, shared.ErrNotFound)

		engine := newTemplateRouter(repo)
		w := doJSON(engine, http.MethodGet, "/api/v1/receipt-templates/"+missingID.String(), tenantID, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		engine := newTemplateRouter(repo)

		w := doJSON(engine, http.MethodGet, "/api/v1/receipt-templates/not-a-uuid", tenantID, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReceiptTemplateHandler_ListTemplates(t *testing.T) {
	tenantID := uuid.New()

	repo := new(mockTemplateRepo)
	first := newStoredTemplate(t, tenantID, "Counter")
	second := newStoredTemplate(t, tenantID, "Kitchen")
	repo.On("FindAll", mock.Anything, tenantID, mock.Anything).Return([]domain.ReceiptTemplate{*first, *second}, nil)
	repo.On("Count", mock.Anything, tenantID, mock.Anything).Return(int64(2), nil)

	engine := newTemplateRouter(repo)
	w := doJSON(engine, http.MethodGet, "/api/v1/receipt-templates?page=1&page_size=20", tenantID, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[[]printingapp.TemplateResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestReceiptTemplateHandler_UpdateTemplate(t *testing.T) {
	tenantID := uuid.New()

	repo := new(mockTemplateRepo)
	template := newStoredTemplate(t, tenantID, "Counter")
	repo.On("FindByID", mock.Anything, tenantID, template.ID).Return(template, nil)
	repo.On("Save", mock.Anything, template).Return(nil)

	engine := newTemplateRouter(repo)
	accent := "#FF5733"
	w := doJSON(engine, http.MethodPut, "/api/v1/receipt-templates/"+template.ID.String(), tenantID, printingapp.UpdateTemplateRequest{
		AccentColor: &accent,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[printingapp.TemplateResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "#FF5733", resp.Data.AccentColor)
}

func TestReceiptTemplateHandler_DeleteTemplate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("deletes template", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		template := newStoredTemplate(t, tenantID, "Counter")
		repo.On("FindByID", mock.Anything, tenantID, template.ID).Return(template, nil)
		repo.On("Delete", mock.Anything, tenantID, template.ID).Return(nil)

		engine := newTemplateRouter(repo)
		w := doJSON(engine, http.MethodDelete, "/api/v1/receipt-templates/"+template.ID.String(), tenantID, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("refuses to delete the default template", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		template := newStoredTemplate(t, tenantID, "Counter")
		require.NoError(t, template.SetAsDefault())
		repo.On("FindByID", mock.Anything, tenantID, template.ID).Return(template, nil)

		engine := newTemplateRouter(repo)
		w := doJSON(engine, http.MethodDelete, "/api/v1/receipt-templates/"+template.ID.String(), tenantID, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReceiptTemplateHandler_SetDefaultTemplate(t *testing.T) {
	tenantID := uuid.New()

	repo := new(mockTemplateRepo)
	template := newStoredTemplate(t, tenantID, "Counter")
	repo.On("FindByID", mock.Anything, tenantID, template.ID).Return(template, nil)
	repo.On("UnsetDefaultForTenant", mock.Anything, tenantID).Return(nil)
	repo.On("Save", mock.Anything, template).Return(nil)

	engine := newTemplateRouter(repo)
	w := doJSON(engine, http.MethodPost, "/api/v1/receipt-templates/"+template.ID.String()+"/default", tenantID, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[printingapp.TemplateResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsDefault)
}

func TestReceiptTemplateHandler_DeactivateTemplate(t *testing.T) {
	tenantID := uuid.New()

	repo := new(mockTemplateRepo)
	template := newStoredTemplate(t, tenantID, "Counter")
	repo.On("FindByID", mock.Anything, tenantID, template.ID).Return(template, nil)
	repo.On("Save", mock.Anything, template).Return(nil)

	engine := newTemplateRouter(repo)
	w := doJSON(engine, http.MethodPost, "/api/v1/receipt-templates/"+template.ID.String()+"/deactivate", tenantID, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[printingapp.TemplateResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INACTIVE", resp.Data.Status)
}

func TestReceiptTemplateHandler_GetPresets(t *testing.T) {
	repo := new(mockTemplateRepo)
	engine := newTemplateRouter(repo)

	w := doJSON(engine, http.MethodGet, "/api/v1/receipt-templates/presets", uuid.New(), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[[]printingapp.PresetResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data)

	defaults := 0
	for _, p := range resp.Data {
		if p.IsDefault {
			defaults++
		}
		assert.NotEmpty(t, p.Key)
		assert.NotEmpty(t, p.Sections)
	}
	assert.Equal(t, 1, defaults)
}
