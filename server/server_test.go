package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
	"github.com/goliatone/lrs-client/config"
	"github.com/goliatone/lrs-client/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp stands the web client up against a fake LRS API.
func newTestApp(t *testing.T, api http.Handler) *server.App {
	t.Helper()

	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	cfg := config.AppConfig{}
	cfg.Sanitize()
	cfg.API.BaseURL = ts.URL

	app, err := server.New(cfg, apiclient.New(ts.URL))
	require.NoError(t, err)
	return app
}

// mintCredential signs a bearer token the identity decoder accepts. The
// client never verifies signatures, so any key works.
func mintCredential(t *testing.T, id, email string, role lrs.Role) string {
	t.Helper()

	claims := lrs.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:     email,
		UserRole:  string(role),
		FirstName: "Test",
		LastName:  "User",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

func getPage(t *testing.T, app *server.App, path, credential string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if credential != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: credential})
	}

	res, err := app.Fiber().Test(req, -1)
	require.NoError(t, err)
	return res
}

func postForm(t *testing.T, app *server.App, path, credential string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if credential != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: credential})
	}

	res, err := app.Fiber().Test(req, -1)
	require.NoError(t, err)
	return res
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestPublicHomeRendersScheduleBoard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/schedules", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]apiclient.Schedule{
			{ID: "s1", CourseTitle: "Algorithms", CourseCode: "CSC305", Date: "2026-09-09", Time: "14:00", Venue: "Lab 2"},
		})
	})

	app := newTestApp(t, mux)

	res := getPage(t, app, "/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	page := body(t, res)
	assert.Contains(t, page, "Algorithms")
	assert.Contains(t, page, "Lab 2")
}

func TestGuardRedirectsAnonymousVisitor(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())

	res := getPage(t, app, "/courses", "")
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
}

func TestGuardBlocksStudentFromCourses(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())
	student := mintCredential(t, "u-student", "sam@uni.test", lrs.RoleStudent)

	res := getPage(t, app, "/courses", student)
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/unauthorized", res.Header.Get("Location"))
}

func TestStudentReachesDashboard(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())
	student := mintCredential(t, "u-student", "sam@uni.test", lrs.RoleStudent)

	res := getPage(t, app, "/dashboard", student)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "schedule board")
}

func TestCoursesPageListsLecturerCourses(t *testing.T) {
	lecturer := ""

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+lecturer, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]apiclient.Course{
			{ID: "c1", Code: "CSC101", Title: "Intro to Computing"},
		})
	})

	app := newTestApp(t, mux)
	lecturer = mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)

	res := getPage(t, app, "/courses", lecturer)
	require.Equal(t, http.StatusOK, res.StatusCode)

	page := body(t, res)
	assert.Contains(t, page, "CSC101")
	assert.Contains(t, page, "Intro to Computing")
}

func TestCreateCourseSubmitsToAPI(t *testing.T) {
	var received apiclient.CourseInput

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]apiclient.Course{})
	})
	mux.HandleFunc("POST /api/courses", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(apiclient.Course{ID: "c2", Code: received.Code, Title: received.Title})
	})

	app := newTestApp(t, mux)
	lecturer := mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)

	res := postForm(t, app, "/courses", lecturer, url.Values{
		"code":        {"CSC999"},
		"title":       {"Compilers"},
		"description": {"Parsing and codegen"},
	})

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/courses", res.Header.Get("Location"))
	assert.Equal(t, "CSC999", received.Code)
	assert.Equal(t, "Compilers", received.Title)
}

func TestCreateCourseValidationRendersInline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]apiclient.Course{})
	})
	mux.HandleFunc("POST /api/courses", func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not reach the API")
	})

	app := newTestApp(t, mux)
	lecturer := mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)

	res := postForm(t, app, "/courses", lecturer, url.Values{
		"code": {"CSC999"},
		// title missing
	})

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "cannot be blank")
}

func TestAPIFailureSurfacesMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "database on fire"})
	})

	app := newTestApp(t, mux)
	lecturer := mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)

	res := getPage(t, app, "/courses", lecturer)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "database on fire")
}

func TestUsersPageRequiresSuperAdmin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]apiclient.User{
			{ID: "u1", FirstName: "Rita", LastName: "Okafor", Email: "admin@uni.test", Role: "super_admin"},
		})
	})

	app := newTestApp(t, mux)

	lecturer := mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)
	res := getPage(t, app, "/users", lecturer)
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/unauthorized", res.Header.Get("Location"))

	admin := mintCredential(t, "u-admin", "admin@uni.test", lrs.RoleSuperAdmin)
	res = getPage(t, app, "/users", admin)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "admin@uni.test")
}

func TestNotificationTestReportsResultInline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/settings/notifications", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiclient.NotificationSettings{
			OwnerType: "lecturer",
			OwnerID:   "u-lect",
			Channels:  apiclient.ChannelToggles{Email: true},
		})
	})
	mux.HandleFunc("POST /api/settings/notifications/test", func(w http.ResponseWriter, r *http.Request) {
		var req apiclient.NotificationTestRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "email", req.Provider)
		json.NewEncoder(w).Encode(apiclient.NotificationTestResult{
			Success: true,
			Message: "test email sent",
		})
	})

	app := newTestApp(t, mux)
	lecturer := mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)

	res := postForm(t, app, "/notifications/test", lecturer, url.Values{
		"provider":   {"email"},
		"test_email": {"ada@uni.test"},
	})

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "test email sent")
}

func TestLoginCookieHonorsSecureFlag(t *testing.T) {
	credential := ""

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": credential})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	credential = mintCredential(t, "u-lect", "ada@uni.test", lrs.RoleLecturer)

	for _, secure := range []bool{false, true} {
		name := "insecure for http dev"
		if secure {
			name = "secure for https"
		}

		t.Run(name, func(t *testing.T) {
			cfg := config.AppConfig{}
			cfg.Sanitize()
			cfg.API.BaseURL = ts.URL
			cfg.Session.CookieSecure = secure

			app, err := server.New(cfg, apiclient.New(ts.URL))
			require.NoError(t, err)

			res := postForm(t, app, "/login", "", url.Values{
				"email":    {"ada@uni.test"},
				"password": {"lecture123"},
			})
			require.Equal(t, http.StatusSeeOther, res.StatusCode)

			var sessionCookie *http.Cookie
			for _, c := range res.Cookies() {
				if c.Name == "token" {
					sessionCookie = c
				}
			}
			require.NotNil(t, sessionCookie, "login must set the credential cookie")
			assert.Equal(t, secure, sessionCookie.Secure)
		})
	}
}

func TestLoginPageServed(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())

	res := getPage(t, app, "/login", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "Sign in")
}
