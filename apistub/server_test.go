package apistub_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/lrs-client/apistub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestServer(t *testing.T) *apistub.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()
	require.NoError(t, apistub.Setup(ctx, db))
	require.NoError(t, apistub.Seed(ctx, db))

	tokens := apistub.NewTokenService([]byte("test-signing-key"), time.Hour, "lrs-apistub")
	return apistub.NewServer(db, apistub.NewRepositoryManager(db), tokens)
}

func doJSON(t *testing.T, srv *apistub.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func loginAs(t *testing.T, srv *apistub.Server, email, password string) string {
	t.Helper()

	resp, raw := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestLoginIssuesToken(t *testing.T) {
	srv := newTestServer(t)

	token := loginAs(t, srv, "ada@uni.test", "lecture123")
	assert.NotEmpty(t, token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@uni.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "invalid email or password")
}

func TestPublicScheduleList(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doJSON(t, srv, http.MethodGet, "/api/schedules", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schedules []map[string]any
	require.NoError(t, json.Unmarshal(raw, &schedules))
	assert.Len(t, schedules, 2)
}

func TestCoursesRequireLecturerRole(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	studentToken := loginAs(t, srv, "sam@uni.test", "student123")
	resp, _ = doJSON(t, srv, http.MethodGet, "/api/courses", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	lecturerToken := loginAs(t, srv, "ada@uni.test", "lecture123")
	resp, raw := doJSON(t, srv, http.MethodGet, "/api/courses", lecturerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var courses []map[string]any
	require.NoError(t, json.Unmarshal(raw, &courses))
	assert.Len(t, courses, 2)
}

func TestCourseLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "ada@uni.test", "lecture123")

	resp, raw := doJSON(t, srv, http.MethodPost, "/api/courses", token, map[string]string{
		"code":  "CSC210",
		"title": "Data Structures",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created map[string]any
	require.NoError(t, json.Unmarshal(raw, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, raw = doJSON(t, srv, http.MethodPut, "/api/courses/"+id, token, map[string]string{
		"code":  "CSC211",
		"title": "Data Structures II",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), "CSC211")

	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/courses/"+id, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateCourseValidation(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "ada@uni.test", "lecture123")

	resp, raw := doJSON(t, srv, http.MethodPost, "/api/courses", token, map[string]string{
		"code": "CSC999",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "title")
}

func TestEnrollmentListIncludesRelations(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "ada@uni.test", "lecture123")

	resp, raw := doJSON(t, srv, http.MethodGet, "/api/enrollments", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var enrollments []struct {
		Student *struct {
			Email string `json:"email"`
		} `json:"student"`
		Course *struct {
			Code string `json:"code"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(raw, &enrollments))
	require.Len(t, enrollments, 2)
	for _, enr := range enrollments {
		require.NotNil(t, enr.Student)
		require.NotNil(t, enr.Course)
	}
}

func TestDuplicateEnrollmentRejected(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "ada@uni.test", "lecture123")

	_, raw := doJSON(t, srv, http.MethodGet, "/api/enrollments", token, nil)
	var enrollments []struct {
		StudentID string `json:"studentId"`
		CourseID  string `json:"courseId"`
	}
	require.NoError(t, json.Unmarshal(raw, &enrollments))
	require.NotEmpty(t, enrollments)

	resp, raw := doJSON(t, srv, http.MethodPost, "/api/enrollments", token, map[string]string{
		"studentId": enrollments[0].StudentID,
		"courseId":  enrollments[0].CourseID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "already enrolled")
}

func TestUserManagementRequiresSuperAdmin(t *testing.T) {
	srv := newTestServer(t)

	lecturerToken := loginAs(t, srv, "ada@uni.test", "lecture123")
	resp, _ := doJSON(t, srv, http.MethodPost, "/api/users", lecturerToken, map[string]string{
		"firstName": "New", "lastName": "User",
		"email": "new@uni.test", "password": "pass123", "role": "student",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := loginAs(t, srv, "admin@uni.test", "admin123")
	resp, raw := doJSON(t, srv, http.MethodPost, "/api/users", adminToken, map[string]string{
		"firstName": "New", "lastName": "User",
		"email": "new@uni.test", "password": "pass123", "role": "student",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.NotContains(t, string(raw), "password")

	resp, raw = doJSON(t, srv, http.MethodPost, "/api/users", adminToken, map[string]string{
		"firstName": "Dup", "lastName": "User",
		"email": "new@uni.test", "password": "pass123", "role": "student",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "already exists")
}

func TestLecturerCanListUsersForEnrollmentForms(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "ada@uni.test", "lecture123")

	resp, raw := doJSON(t, srv, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 4)
}

func TestNotificationSettingsLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "ada@uni.test", "lecture123")

	resp, _ := doJSON(t, srv, http.MethodGet, "/api/settings/notifications", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	settings := map[string]any{
		"channels": map[string]bool{"email": true, "sms": false, "push": false, "calendar": false},
		"email_config": map[string]any{
			"provider":   "smtp",
			"smtp_host":  "smtp.uni.test",
			"smtp_port":  587,
			"from_email": "noreply@uni.test",
		},
	}
	resp, raw := doJSON(t, srv, http.MethodPut, "/api/settings/notifications", token, settings)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, srv, http.MethodGet, "/api/settings/notifications", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "smtp.uni.test")

	resp, raw = doJSON(t, srv, http.MethodPost, "/api/settings/notifications/test", token, map[string]string{
		"provider":   "email",
		"test_email": "ada@uni.test",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "test email sent")

	resp, raw = doJSON(t, srv, http.MethodPost, "/api/settings/notifications/test", token, map[string]string{
		"provider": "sms",
		"test_to":  "+14155552671",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "disabled")
}
