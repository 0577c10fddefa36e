package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
	"github.com/jhconstruction/backoffice/internal/server/handlers"
	"github.com/jhconstruction/backoffice/internal/service/auth"
)

// stubStore overrides the handful of Store methods a test exercises. The
// embedded interface is left nil so an unexpected call fails loudly.
type stubStore struct {
	handlers.Store

	createAttendance      func(context.Context, *models.Attendance) error
	createPaymentSchedule func(context.Context, *models.PaymentSchedule) error
	deleteWorkSchedule    func(context.Context, primitive.ObjectID) error
	createUser            func(context.Context, *models.User) error
	createProject         func(context.Context, *models.Project) error
}

func (s *stubStore) CreateAttendance(ctx context.Context, a *models.Attendance) error {
	return s.createAttendance(ctx, a)
}

func (s *stubStore) CreatePaymentSchedule(ctx context.Context, p *models.PaymentSchedule) error {
	return s.createPaymentSchedule(ctx, p)
}

func (s *stubStore) DeleteWorkSchedule(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteWorkSchedule(ctx, id)
}

func (s *stubStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.createUser(ctx, u)
}

func (s *stubStore) CreateProject(ctx context.Context, p *models.Project) error {
	return s.createProject(ctx, p)
}

func testRouter(t *testing.T, store handlers.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := handlers.New(store, auth.NewService("test-secret", time.Hour), nil, nil, nil)
	r := gin.New()
	r.POST("/attendance", h.CreateAttendance)
	r.POST("/payment-schedules", h.CreatePaymentSchedule)
	r.DELETE("/work-schedules/:id", h.DeleteWorkSchedule)
	r.POST("/auth/register", h.Register)
	r.POST("/projects", h.CreateProject)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAttendanceDuplicate(t *testing.T) {
	store := &stubStore{
		createAttendance: func(context.Context, *models.Attendance) error {
			return mongodb.ErrDuplicate
		},
	}
	r := testRouter(t, store)

	body := `{"labourId":"` + primitive.NewObjectID().Hex() + `","date":"2024-03-14T00:00:00Z"}`
	w := do(r, http.MethodPost, "/attendance", body)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestCreatePaymentScheduleDanglingWorkSchedule(t *testing.T) {
	store := &stubStore{
		createPaymentSchedule: func(context.Context, *models.PaymentSchedule) error {
			return mongodb.ErrNotFound
		},
	}
	r := testRouter(t, store)

	body := `{"projectId":"` + primitive.NewObjectID().Hex() +
		`","workScheduleId":"` + primitive.NewObjectID().Hex() +
		`","title":"Mobilization advance"}`
	w := do(r, http.MethodPost, "/payment-schedules", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body %s", w.Code, w.Body.String())
	}
}

func TestDeleteWorkScheduleStillReferenced(t *testing.T) {
	store := &stubStore{
		deleteWorkSchedule: func(context.Context, primitive.ObjectID) error {
			return mongodb.ErrReferenced
		},
	}
	r := testRouter(t, store)

	w := do(r, http.MethodDelete, "/work-schedules/"+primitive.NewObjectID().Hex(), "")

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	var stored *models.User
	store := &stubStore{
		createUser: func(_ context.Context, u *models.User) error {
			u.ID = primitive.NewObjectID()
			stored = u
			return nil
		},
	}
	r := testRouter(t, store)

	body := `{"name":"Asha","email":"asha@example.com","password":"s3cretpass","role":"manager"}`
	w := do(r, http.MethodPost, "/auth/register", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if stored == nil {
		t.Fatal("user was not stored")
	}
	if stored.Role != authz.RoleEmployee {
		t.Errorf("stored role = %q, self-registration must not grant %q", stored.Role, stored.Role)
	}

	var resp struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Role != authz.RoleEmployee {
		t.Errorf("response role = %q, want %q", resp.User.Role, authz.RoleEmployee)
	}
}

func TestCreateProjectProgressOutOfRange(t *testing.T) {
	for _, progress := range []string{"-5", "150"} {
		created := false
		store := &stubStore{
			createProject: func(context.Context, *models.Project) error {
				created = true
				return nil
			},
		}
		r := testRouter(t, store)

		w := do(r, http.MethodPost, "/projects", `{"name":"Tower A","progress":`+progress+`}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("progress %s: status = %d, want 400", progress, w.Code)
		}
		if created {
			t.Errorf("progress %s: project must not be stored", progress)
		}
	}
}
