package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/api/middleware"
	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/internal/projects"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
	"github.com/lumoworks/licensing-backend/pkg/types"
)

type stubProjectService struct {
	createFn func(ctx context.Context, ownerID uuid.UUID, input projects.CreateProjectInput) (*models.Project, error)
	listFn   func(ctx context.Context, params projects.ListParams) (*projects.ListResult, error)
}

func (s *stubProjectService) CreateProject(ctx context.Context, ownerID uuid.UUID, input projects.CreateProjectInput) (*models.Project, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubProjectService) ListProjects(ctx context.Context, params projects.ListParams) (*projects.ListResult, error) {
	return s.listFn(ctx, params)
}

func (s *stubProjectService) UpdateProject(ctx context.Context, ownerID, projectID uuid.UUID, input projects.UpdateProjectInput) (*models.Project, error) {
	return nil, nil
}

func (s *stubProjectService) DeleteProject(ctx context.Context, ownerID, projectID uuid.UUID) error {
	return nil
}

func (s *stubProjectService) ExportProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	return nil, nil
}

func (s *stubProjectService) ShareProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	return nil, nil
}

func (s *stubProjectService) CountProjects(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return 0, nil
}

type fixedCounter struct{ count int64 }

func (f fixedCounter) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return f.count, nil
}

func enterpriseContext(userID uuid.UUID) entitlement.RequestLicenseContext {
	validation := entitlement.LicenseValidation{
		IsValid:         true,
		LicenseType:     enums.LicenseTypeEnterprise,
		Restrictions:    []string{},
		AllowedFeatures: entitlement.FeaturesFor(enums.LicenseTypeEnterprise),
	}
	return entitlement.RequestLicenseContext{
		UserID:        userID,
		Validation:    validation,
		ProjectAccess: entitlement.AccessLevelFor(validation.LicenseType, false),
	}
}

func TestProjectCreatePersistsAndReturns201(t *testing.T) {
	userID := uuid.New()
	svc := &stubProjectService{
		createFn: func(ctx context.Context, ownerID uuid.UUID, input projects.CreateProjectInput) (*models.Project, error) {
			if ownerID != userID {
				t.Fatalf("expected owner %s, got %s", userID, ownerID)
			}
			return &models.Project{ID: uuid.New(), OwnerID: ownerID, Name: input.Name, SizeBytes: input.SizeBytes}, nil
		},
	}
	quotas, err := entitlement.NewQuotaEnforcer(fixedCounter{}, nil)
	if err != nil {
		t.Fatalf("construct enforcer: %v", err)
	}

	handler := ProjectCreate(svc, quotas, middleware.Guard{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"atlas","size_bytes":1024}`))
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithLicense(ctx, enterpriseContext(userID))
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProjectCreateOversizedUploadDenies413(t *testing.T) {
	userID := uuid.New()
	svc := &stubProjectService{
		createFn: func(ctx context.Context, ownerID uuid.UUID, input projects.CreateProjectInput) (*models.Project, error) {
			t.Fatal("service must not be reached on quota denial")
			return nil, nil
		},
	}
	quotas, err := entitlement.NewQuotaEnforcer(fixedCounter{}, nil)
	if err != nil {
		t.Fatalf("construct enforcer: %v", err)
	}

	// 5GB declared size exceeds even the enterprise 2000MB ceiling.
	handler := ProjectCreate(svc, quotas, middleware.Guard{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"atlas","size_bytes":5368709120}`))
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithLicense(ctx, enterpriseContext(userID))
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d: %s", resp.Code, resp.Body.String())
	}
	var body types.DemoLimitationBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "File size limit exceeded" {
		t.Fatalf("unexpected error string %q", body.Error)
	}
	if body.DemoLimitation.Type != types.DenialTypeFileSizeLimit {
		t.Fatalf("unexpected denial type %q", body.DemoLimitation.Type)
	}
	if body.DemoLimitation.FileSize == nil || *body.DemoLimitation.FileSize != 5120 {
		t.Fatalf("expected fileSize 5120, got %v", body.DemoLimitation.FileSize)
	}
	if body.DemoLimitation.MaxAllowed != 2000 {
		t.Fatalf("expected maxAllowed 2000, got %d", body.DemoLimitation.MaxAllowed)
	}
}

func TestProjectCreateChecksContentLength(t *testing.T) {
	userID := uuid.New()
	svc := &stubProjectService{
		createFn: func(ctx context.Context, ownerID uuid.UUID, input projects.CreateProjectInput) (*models.Project, error) {
			t.Fatal("service must not be reached on quota denial")
			return nil, nil
		},
	}
	quotas, err := entitlement.NewQuotaEnforcer(fixedCounter{}, nil)
	if err != nil {
		t.Fatalf("construct enforcer: %v", err)
	}

	// An understated size_bytes cannot dodge the ceiling when the transport
	// length already exceeds it.
	handler := ProjectCreate(svc, quotas, middleware.Guard{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"atlas","size_bytes":1024}`))
	req.ContentLength = 3 * 1024 * 1024 * 1024
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithLicense(ctx, enterpriseContext(userID))
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d: %s", resp.Code, resp.Body.String())
	}
	var body types.DemoLimitationBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.DemoLimitation.FileSize == nil || *body.DemoLimitation.FileSize != 3072 {
		t.Fatalf("expected fileSize 3072, got %v", body.DemoLimitation.FileSize)
	}
}

func TestProjectCreateRejectsInvalidBody(t *testing.T) {
	svc := &stubProjectService{
		createFn: func(ctx context.Context, ownerID uuid.UUID, input projects.CreateProjectInput) (*models.Project, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	quotas, err := entitlement.NewQuotaEnforcer(fixedCounter{}, nil)
	if err != nil {
		t.Fatalf("construct enforcer: %v", err)
	}

	userID := uuid.New()
	handler := ProjectCreate(svc, quotas, middleware.Guard{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"size_bytes":10}`))
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithLicense(ctx, enterpriseContext(userID))
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProjectListReturnsPage(t *testing.T) {
	userID := uuid.New()
	svc := &stubProjectService{
		listFn: func(ctx context.Context, params projects.ListParams) (*projects.ListResult, error) {
			if params.OwnerID != userID {
				t.Fatalf("expected owner filter %s, got %s", userID, params.OwnerID)
			}
			return &projects.ListResult{Items: []projects.ListItem{{ID: uuid.New(), Name: "atlas"}}}, nil
		},
	}

	handler := ProjectList(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProjectCreateWithoutIdentityRejects401(t *testing.T) {
	svc := &stubProjectService{}
	handler := ProjectCreate(svc, nil, middleware.Guard{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"atlas"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
