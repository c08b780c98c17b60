package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finhack/internal/errors"
	"finhack/internal/middleware"
	"finhack/internal/models"
	"finhack/internal/services"
	"finhack/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn             func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn         func(email string) (*models.User, error)
	getUserByIDFn            func(id string) (*models.User, error)
	verifyPasswordFn         func(user *models.User, password string) bool
	attemptLoginFn           func(email, password string) (*models.User, error)
	storeRefreshTokenHashFn  func(userID string, tokenHash string) error
	getRefreshTokenHashFn    func(userID string) (string, error)
	rotateRefreshTokenHashFn func(userID, presentedHash, newHash string) error
	updateProfileFn          func(userID string, update services.ProfileUpdate) (*models.User, error)
	changePasswordFn         func(userID, currentPassword, newPassword string) error
	deleteUserFn             func(userID string) error
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

func (m *mockUserService) RotateRefreshTokenHash(userID, presentedHash, newHash string) error {
	if m.rotateRefreshTokenHashFn != nil {
		return m.rotateRefreshTokenHashFn(userID, presentedHash, newHash)
	}
	return nil
}

func (m *mockUserService) UpdateProfile(userID string, update services.ProfileUpdate) (*models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(userID, update)
	}
	return &models.User{Base: models.Base{ID: userID}}, nil
}

func (m *mockUserService) ChangePassword(userID, currentPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, currentPassword, newPassword)
	}
	return nil
}

func (m *mockUserService) DeleteUser(userID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(userID)
	}
	return nil
}

type auditEntry struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]any) {
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.Refresh)
	r.GET("/profile", injectUserID(testUserID), handler.GetProfile)
	r.PUT("/profile", injectUserID(testUserID), handler.UpdateProfile)
	r.PUT("/profile/password", injectUserID(testUserID), handler.ChangePassword)
	r.DELETE("/profile", injectUserID(testUserID), handler.DeleteAccount)
	return r
}

const (
	testUserID  = "0190c6a0-0000-7000-8000-000000000001"
	testAssetID = "0190c6a0-0000-7000-8000-0000000000a1"
	testTxID    = "0190c6a0-0000-7000-8000-0000000000b1"
)

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]any, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, firstName, lastName string) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: testUserID},
					Email:     email,
					FirstName: firstName,
					LastName:  lastName,
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123","first_name":"John","last_name":"Doe"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["access_token"] == "" {
			t.Error("expected non-empty access_token")
		}
		if result["refresh_token"] == nil || result["refresh_token"] == "" {
			t.Error("expected non-empty refresh_token")
		}
		user := result["user"].(map[string]any)
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"email":"test@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid email format", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"email":"not-an-email","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"email":"dup@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})

	t.Run("stores refresh token hash", func(t *testing.T) {
		var storedHash string
		userSvc := &mockUserService{
			createUserFn: func(email, _, _, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
			storeRefreshTokenHashFn: func(_ string, hash string) error {
				storedHash = hash
				return nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if storedHash == "" {
			t.Error("refresh token hash was not stored")
		}
		if len(storedHash) != 64 {
			t.Errorf("expected SHA-256 hex digest (64 chars), got %d chars", len(storedHash))
		}
	})

	t.Run("returns 500 when token storage fails", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, _, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
			storeRefreshTokenHashFn: func(_ string, _ string) error {
				return fmt.Errorf("db connection lost")
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email, FirstName: "Test"}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["access_token"] == "" {
			t.Error("expected non-empty access_token")
		}
		if result["refresh_token"] == nil || result["refresh_token"] == "" {
			t.Error("expected non-empty refresh_token")
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 423 on locked account", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrAccountLocked
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"locked@example.com","password":"password123"}`)

		if rec.Code != http.StatusLocked {
			t.Fatalf("expected 423, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_LOCKED")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with user profile", func(t *testing.T) {
		now := time.Now()
		userSvc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{
					Base:        models.Base{ID: id},
					Email:       "test@example.com",
					FirstName:   "John",
					LastName:    "Doe",
					LastLoginAt: &now,
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]any)
		if user["email"] != "test@example.com" {
			t.Errorf("expected test@example.com, got %v", user["email"])
		}
		if user["first_name"] != "John" {
			t.Errorf("expected John, got %v", user["first_name"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := gin.New()
		r.GET("/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when user not found", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	user := &models.User{Base: models.Base{ID: testUserID}, Email: "test@example.com"}

	// casStore swaps the stored hash only when the presented one matches.
	type casStore struct {
		mu     sync.Mutex
		stored string
	}
	newUserSvc := func(store *casStore) *mockUserService {
		return &mockUserService{
			getUserByIDFn: func(_ string) (*models.User, error) {
				return user, nil
			},
			rotateRefreshTokenHashFn: func(id, presented, next string) error {
				if id != testUserID {
					t.Errorf("expected rotation for %s, got %s", testUserID, id)
				}
				store.mu.Lock()
				defer store.mu.Unlock()
				if presented != store.stored {
					return apperrors.ErrInvalidToken
				}
				store.stored = next
				return nil
			},
		}
	}

	t.Run("returns 200 and rotates the stored hash", func(t *testing.T) {
		token, err := middleware.GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}
		store := &casStore{stored: middleware.HashToken(token)}
		r := setupAuthRouter(NewAuthHandler(newUserSvc(store), &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, token))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		newToken, _ := result["refresh_token"].(string)
		if newToken == "" || newToken == token {
			t.Fatal("expected a fresh refresh_token")
		}
		if store.stored != middleware.HashToken(newToken) {
			t.Error("expected the stored hash to match the new refresh token")
		}
	})

	t.Run("returns 401 when the token was superseded", func(t *testing.T) {
		token, _ := middleware.GenerateRefreshToken(user)
		store := &casStore{stored: middleware.HashToken("some-other-token")}
		r := setupAuthRouter(NewAuthHandler(newUserSvc(store), &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, token))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TOKEN")
	})

	t.Run("only one of two concurrent exchanges succeeds", func(t *testing.T) {
		token, _ := middleware.GenerateRefreshToken(user)
		store := &casStore{stored: middleware.HashToken(token)}
		r := setupAuthRouter(NewAuthHandler(newUserSvc(store), &mockAuditService{}))
		body := fmt.Sprintf(`{"refresh_token":%q}`, token)

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				codes[i] = doRequest(r, "POST", "/auth/refresh", body).Code
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, code := range codes {
			if code == http.StatusOK {
				ok++
			} else if code != http.StatusUnauthorized {
				t.Errorf("unexpected status %d", code)
			}
		}
		if ok != 1 {
			t.Errorf("expected exactly one successful exchange, got %d (%v)", ok, codes)
		}
	})

	t.Run("returns 401 for an access token", func(t *testing.T) {
		token, _ := middleware.GenerateAccessToken(user)
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, token))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TOKEN")
	})

	t.Run("returns 400 on missing token", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Login_audits(t *testing.T) {
	audit := &mockAuditService{}
	userSvc := &mockUserService{
		attemptLoginFn: func(email, _ string) (*models.User, error) {
			return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
		},
	}
	r := setupAuthRouter(NewAuthHandler(userSvc, audit))

	rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"password123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(audit.entries) != 1 || audit.entries[0].action != "LOGIN" || audit.entries[0].userID != testUserID {
		t.Errorf("expected one LOGIN audit entry, got %+v", audit.entries)
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	t.Run("returns 200 with the updated user and audits", func(t *testing.T) {
		var got services.ProfileUpdate
		userSvc := &mockUserService{
			updateProfileFn: func(id string, update services.ProfileUpdate) (*models.User, error) {
				got = update
				return &models.User{Base: models.Base{ID: id}, Email: "new@example.com", FirstName: "Ada"}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(userSvc, audit))

		rec := doRequest(r, "PUT", "/profile", `{"email":"new@example.com","first_name":"Ada"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Email == nil || *got.Email != "new@example.com" || got.LastName != nil {
			t.Errorf("unexpected update passed to the service: %+v", got)
		}
		user := parseJSON(t, rec)["user"].(map[string]any)
		if user["email"] != "new@example.com" {
			t.Errorf("expected new email, got %v", user["email"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != models.AuditUpdateProfile {
			t.Errorf("expected one UPDATE_PROFILE audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 for a malformed email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile", `{"email":"not-an-email"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 for a taken email", func(t *testing.T) {
		userSvc := &mockUserService{
			updateProfileFn: func(_ string, _ services.ProfileUpdate) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile", `{"email":"taken@example.com"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("returns 200 and audits", func(t *testing.T) {
		var current, next string
		userSvc := &mockUserService{
			changePasswordFn: func(_ string, c, n string) error {
				current, next = c, n
				return nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(userSvc, audit))

		rec := doRequest(r, "PUT", "/profile/password",
			`{"current_password":"password123","new_password":"newpassword1","confirm_password":"newpassword1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if current != "password123" || next != "newpassword1" {
			t.Errorf("unexpected passwords passed: %q %q", current, next)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != models.AuditChangePassword {
			t.Errorf("expected one CHANGE_PASSWORD audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 when the confirmation differs", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile/password",
			`{"current_password":"password123","new_password":"newpassword1","confirm_password":"newpassword2"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 401 for a wrong current password", func(t *testing.T) {
		userSvc := &mockUserService{
			changePasswordFn: func(_, _, _ string) error {
				return apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile/password",
			`{"current_password":"nope","new_password":"newpassword1","confirm_password":"newpassword1"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	t.Run("returns 200 and audits", func(t *testing.T) {
		var deleted string
		userSvc := &mockUserService{
			deleteUserFn: func(id string) error {
				deleted = id
				return nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(userSvc, audit))

		rec := doRequest(r, "DELETE", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != testUserID {
			t.Errorf("expected %s deleted, got %q", testUserID, deleted)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != models.AuditDeleteAccount {
			t.Errorf("expected one DELETE_ACCOUNT audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 404 for a missing user", func(t *testing.T) {
		userSvc := &mockUserService{
			deleteUserFn: func(_ string) error { return apperrors.ErrUserNotFound },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
