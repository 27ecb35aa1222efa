package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/constants"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func requestWithRole(role constants.OrgRole) *http.Request {
	req := httptest.NewRequest("POST", "/api/v1/logs", nil)
	claims := &auth.APIKeyClaims{
		UserUUID:  "user-1",
		OrgUUID:   "org-1",
		RoleValue: role,
	}
	return req.WithContext(auth.SetUserClaims(req.Context(), claims))
}

func TestIsEditorMiddleware(t *testing.T) {
	cases := []struct {
		role       constants.OrgRole
		wantStatus int
	}{
		{constants.RoleViewer, http.StatusForbidden},
		{constants.RoleEditor, http.StatusOK},
		{constants.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		next, called := okHandler()
		handler := IsEditorMiddleware()(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithRole(tc.role))

		if rr.Code != tc.wantStatus {
			t.Errorf("role %s: expected status %d, got %d", tc.role, tc.wantStatus, rr.Code)
		}
		if (rr.Code == http.StatusOK) != *called {
			t.Errorf("role %s: handler called=%v for status %d", tc.role, *called, rr.Code)
		}
	}
}

func TestIsAdminMiddleware(t *testing.T) {
	cases := []struct {
		role       constants.OrgRole
		wantStatus int
	}{
		{constants.RoleViewer, http.StatusForbidden},
		{constants.RoleEditor, http.StatusForbidden},
		{constants.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		next, _ := okHandler()
		handler := IsAdminMiddleware()(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithRole(tc.role))

		if rr.Code != tc.wantStatus {
			t.Errorf("role %s: expected status %d, got %d", tc.role, tc.wantStatus, rr.Code)
		}
	}
}

func TestRequireRole_MissingClaims(t *testing.T) {
	next, called := okHandler()
	handler := IsEditorMiddleware()(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/logs", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without claims, got %d", rr.Code)
	}
	if *called {
		t.Error("Handler must not run without claims")
	}
}

func TestSignedLinkClaimsAreReadOnly(t *testing.T) {
	next, _ := okHandler()
	handler := IsEditorMiddleware()(next)

	req := httptest.NewRequest("POST", "/api/v1/logs", nil)
	claims := &auth.LinkClaims{UserUUID: "user-1", OrgUUID: "org-1"}
	req = req.WithContext(auth.SetUserClaims(req.Context(), claims))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for signed-link claims on an edit route, got %d", rr.Code)
	}
}
