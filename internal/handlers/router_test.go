package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-board-backend/internal/config"
	"job-board-backend/internal/middleware"
	"job-board-backend/internal/models"
	"job-board-backend/internal/repository/memory"
	"job-board-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, folder string, file *services.Upload) (*models.FileInfo, error) {
	data, err := io.ReadAll(file.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	key := folder + "/" + file.Filename
	return &models.FileInfo{URL: "https://files.test/" + key, Filename: key}, nil
}

const testOrigin = "http://app.test"

type testServer struct {
	*httptest.Server
	handler http.Handler
	tokens  *services.TokenService
	hub     *services.NotificationHub
}

func newTestServer(t *testing.T, opts ...func(*Router)) *testServer {
	t.Helper()

	store := memory.New()
	uploader := stubUploader{}
	tokens := services.NewTokenService("test-secret", time.Hour, nil)
	hub := services.NewNotificationHub()
	jwtCfg := config.JWTConfig{CookieName: "token"}
	const maxBytes = 1 << 20

	userService := services.NewUserService(store.Users, uploader, tokens)
	rt := Router{
		Auth:           NewAuthHandler(userService, tokens, jwtCfg, maxBytes),
		Users:          NewUserHandler(userService, maxBytes),
		JobPosts:       NewJobPostHandler(services.NewJobPostService(store, uploader, false), maxBytes),
		Applicants:     NewApplicantHandler(services.NewApplicantService(store, uploader, hub), maxBytes),
		WebSocket:      NewWebSocketHandler(hub, tokens, jwtCfg.CookieName, []string{testOrigin}),
		Health:         NewHealthHandler(map[string]Pinger{"store": store.Ping}),
		Tokens:         tokens,
		CookieName:     jwtCfg.CookieName,
		AllowedOrigins: []string{testOrigin},
		LoginLimiter:   middleware.NewRateLimiter(600, 100),
	}
	for _, opt := range opts {
		opt(&rt)
	}
	router := NewRouter(rt)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testServer{Server: server, handler: router, tokens: tokens, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	return s.do(t, method, path, token, reader, "application/json")
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("file contents"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func (s *testServer) registerAndLogin(t *testing.T, first, email string) (*models.User, string) {
	t.Helper()
	status, data := s.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"firstName": first,
		"lastName":  "Tester",
		"email":     email,
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, status, string(data))

	status, data = s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "secret123"})
	require.Equal(t, http.StatusOK, status, string(data))
	login := decode[LoginResponse](t, data)
	require.NotEmpty(t, login.Token)
	return login.User, login.Token
}

var jobFields = map[string]string{
	"jobTitle":        "Backend Engineer",
	"companyName":     "Acme Corp",
	"minimumSalary":   "50000",
	"maximumSalary":   "90000",
	"salaryType":      "Yearly",
	"jobLocation":     "Remote",
	"experienceLevel": "Mid",
	"employmentType":  "Full-time",
	"jobDescription":  "Build APIs",
	"postedBy":        "hr@acme.com",
}

var applicantFields = map[string]string{
	"name":        "Jane Doe",
	"email":       "jane@example.com",
	"coverLetter": "Hello",
	"phone":       "555-0100",
	"address":     "1 Main St",
	"position":    "Backend Engineer",
}

func (s *testServer) createJob(t *testing.T, token string) *models.JobPost {
	t.Helper()
	body, contentType := multipartBody(t, jobFields, "image", "logo.png")
	status, data := s.do(t, http.MethodPost, "/api/v1/job/jobs", token, body, contentType)
	require.Equal(t, http.StatusCreated, status, string(data))
	jobs := decode[[]*models.JobPost](t, data)
	require.NotEmpty(t, jobs)
	return jobs[len(jobs)-1]
}

func TestScenario_RegisterLoginCreateListMine(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	_, bobToken := s.registerAndLogin(t, "Bob", "bob@example.com")
	s.createJob(t, bobToken)

	job := s.createJob(t, token)
	assert.Equal(t, alice.ID, job.UserID)
	require.NotNil(t, job.CompanyLogo)
	assert.NotEmpty(t, job.CompanyLogo.URL)

	status, data := s.do(t, http.MethodGet, "/api/v1/job/getMyJobPosts", token, nil, "")
	require.Equal(t, http.StatusOK, status, string(data))
	mine := decode[[]map[string]interface{}](t, data)
	require.Len(t, mine, 1)
	assert.Equal(t, job.ID.Hex(), mine[0]["id"])
	owner, ok := mine[0]["userId"].(map[string]interface{})
	require.True(t, ok, "userId should be populated")
	assert.Equal(t, alice.ID.Hex(), owner["id"])
	assert.NotContains(t, owner, "passwordHash")

	status, data = s.do(t, http.MethodGet, "/api/v1/job/jobs/"+job.ID.Hex(), "", nil, "")
	require.Equal(t, http.StatusOK, status)
	got := decode[JobPostResponse](t, data)
	assert.True(t, got.Success)
	require.NotNil(t, got.JobPost.CompanyLogo)
	assert.NotEmpty(t, got.JobPost.CompanyLogo.URL)
}

func TestScenario_ApplyAndManageApplicants(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	job := s.createJob(t, token)
	base := "/api/v1/apply/jobs/" + job.ID.Hex()

	body, contentType := multipartBody(t, applicantFields, "resume", "cv.pdf")
	status, data := s.do(t, http.MethodPost, base+"/apply", "", body, contentType)
	require.Equal(t, http.StatusCreated, status, string(data))
	applied := decode[applyResponse](t, data)
	assert.True(t, applied.Success)
	assert.Equal(t, "Application Submitted", applied.Message)
	require.Len(t, applied.JobPosts, 1)
	require.Len(t, applied.JobPosts[0].Applicants, 1)
	applicant := applied.JobPosts[0].Applicants[0]
	assert.Equal(t, "Jane Doe", applicant.Name)

	status, data = s.do(t, http.MethodGet, base+"/applicants", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[applicantsResponse](t, data)

	status, data = s.do(t, http.MethodGet, base+"/noofapplicants", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	count := decode[countResponse](t, data)
	assert.Equal(t, len(list.Applicants), count.NumberOfApplicants)

	status, data = s.do(t, http.MethodGet, base+"/applicants/"+applicant.ID.Hex(), "", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, applicant.ID, decode[applicantResponse](t, data).Applicant.ID)

	status, _ = s.do(t, http.MethodDelete, base+"/applicants/"+applicant.ID.Hex(), "", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, base+"/applicants/"+applicant.ID.Hex(), "", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, data = s.do(t, http.MethodGet, base+"/noofapplicants", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, decode[countResponse](t, data).NumberOfApplicants)
}

func TestApply_RejectsUnknownJobAndMissingResume(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	job := s.createJob(t, token)

	body, contentType := multipartBody(t, applicantFields, "resume", "cv.pdf")
	status, data := s.do(t, http.MethodPost, "/api/v1/apply/jobs/"+primitive.NewObjectID().Hex()+"/apply", "", body, contentType)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, decode[ErrorResponse](t, data).Success)

	body, contentType = multipartBody(t, applicantFields, "", "")
	status, _ = s.do(t, http.MethodPost, "/api/v1/apply/jobs/"+job.ID.Hex()+"/apply", "", body, contentType)
	assert.Equal(t, http.StatusConflict, status)

	status, data = s.do(t, http.MethodGet, "/api/v1/apply/jobs/"+job.ID.Hex()+"/noofapplicants", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, decode[countResponse](t, data).NumberOfApplicants)
}

func TestCreateJobPost_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, jobFields, "", "")
	status, data := s.do(t, http.MethodPost, "/api/v1/job/jobs", "", body, contentType)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, decode[ErrorResponse](t, data).Success)

	expired := services.NewTokenService("test-secret", -time.Minute, nil)
	token, _, err := expired.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	body, contentType = multipartBody(t, jobFields, "", "")
	status, _ = s.do(t, http.MethodPost, "/api/v1/job/jobs", token, body, contentType)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, data = s.do(t, http.MethodGet, "/api/v1/job/jobs", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.ListedJobPost](t, data))
}

func TestCreateJobPost_FailuresAreConflicts(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "alice@example.com")

	fields := map[string]string{"jobTitle": "Backend Engineer", "minimumSalary": "lots"}
	body, contentType := multipartBody(t, fields, "", "")
	status, data := s.do(t, http.MethodPost, "/api/v1/job/jobs", token, body, contentType)
	assert.Equal(t, http.StatusConflict, status, string(data))

	ghost, _, err := s.tokens.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	body, contentType = multipartBody(t, jobFields, "", "")
	status, _ = s.do(t, http.MethodPost, "/api/v1/job/jobs", ghost, body, contentType)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetJobPost_MalformedID(t *testing.T) {
	s := newTestServer(t)

	status, data := s.do(t, http.MethodGet, "/api/v1/job/jobs/abc", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode[ErrorResponse](t, data)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid jobId", body.Error)
}

func TestListJobPosts_RendersPostingDate(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	s.createJob(t, token)

	status, data := s.do(t, http.MethodGet, "/api/v1/job/jobs", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	listed := decode[[]map[string]interface{}](t, data)
	require.Len(t, listed, 1)
	assert.Equal(t, models.FormatPostingDate(time.Now()), listed[0]["jobPostingDate"])
}

func TestUpdateAndDeleteJobPost(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	job := s.createJob(t, token)

	status, data := s.doJSON(t, http.MethodPut, "/api/v1/job/update/"+job.ID.Hex(), token, map[string]interface{}{
		"jobTitle": "Staff Engineer",
	})
	require.Equal(t, http.StatusOK, status, string(data))
	updated := decode[UpdateJobPostResponse](t, data)
	assert.Equal(t, "Job Updated Successfully", updated.Message)
	assert.Equal(t, "Staff Engineer", updated.Job.JobTitle)
	assert.Equal(t, job.CompanyLogo, updated.Job.CompanyLogo)

	status, _ = s.doJSON(t, http.MethodPut, "/api/v1/job/update/"+job.ID.Hex(), token, map[string]interface{}{
		"userId": primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusConflict, status)

	status, data = s.do(t, http.MethodDelete, "/api/v1/job/delete/"+job.ID.Hex(), token, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Job Deleted Successfully", decode[MessageResponse](t, data).Message)

	status, data = s.do(t, http.MethodGet, "/api/v1/users/"+alice.ID.Hex(), token, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[models.User](t, data).Jobs)

	status, _ = s.do(t, http.MethodDelete, "/api/v1/job/delete/"+job.ID.Hex(), token, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUsers_RegisterDuplicateAndFriends(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	bob, _ := s.registerAndLogin(t, "Bob", "bob@example.com")

	status, _ := s.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"firstName": "Again",
		"lastName":  "Alice",
		"email":     "alice@example.com",
		"password":  "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, data := s.do(t, http.MethodGet, "/api/v1/users", "", nil, "")
	require.Equal(t, http.StatusOK, status)
	users := decode[[]map[string]interface{}](t, data)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "passwordHash")
		assert.NotContains(t, u, "PasswordHash")
	}

	status, data = s.do(t, http.MethodPatch, "/api/v1/users/"+alice.ID.Hex()+"/"+bob.ID.Hex(), token, nil, "")
	require.Equal(t, http.StatusOK, status, string(data))
	friends := decode[[]models.User](t, data)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	status, data = s.do(t, http.MethodGet, "/api/v1/users/"+bob.ID.Hex()+"/friends", token, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.User](t, data), 1)

	status, _ = s.do(t, http.MethodGet, "/api/v1/users/"+alice.ID.Hex(), "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUsers_EditWithImage(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.registerAndLogin(t, "Alice", "alice@example.com")

	body, contentType := multipartBody(t, map[string]string{"lastName": "Jones"}, "image", "me.png")
	status, data := s.do(t, http.MethodPut, "/api/v1/users/"+alice.ID.Hex(), token, body, contentType)
	require.Equal(t, http.StatusOK, status, string(data))
	user := decode[models.User](t, data)
	assert.Equal(t, "Jones", user.LastName)
	require.NotNil(t, user.Photo)
	assert.NotEmpty(t, user.Photo.URL)

	status, _ = s.doJSON(t, http.MethodPut, "/api/v1/users/"+alice.ID.Hex(), token, map[string]interface{}{"jobs": []string{}})
	assert.Equal(t, http.StatusConflict, status)
}

func TestAuth_LoginCookieAndLogout(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.registerAndLogin(t, "Alice", "alice@example.com")

	data, err := json.Marshal(LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	resp, err := s.Client().Post(s.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, int(time.Hour.Seconds()), session.MaxAge)

	// the cookie alone authenticates
	req, err := http.NewRequest(http.MethodGet, s.URL+"/api/v1/users/"+alice.ID.Hex(), nil)
	require.NoError(t, err)
	req.AddCookie(session)
	resp, err = s.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ := s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	req, err = http.NewRequest(http.MethodGet, s.URL+"/api/v1/auth/logout", nil)
	require.NoError(t, err)
	resp, err = s.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := false
	for _, c := range resp.Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestRouter_UnknownEndpointAndMethod(t *testing.T) {
	s := newTestServer(t)

	status, data := s.do(t, http.MethodGet, "/api/v1/nothing", "", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	body := decode[ErrorResponse](t, data)
	assert.False(t, body.Success)
	assert.Equal(t, "unknown endpoint", body.Error)

	status, data = s.do(t, http.MethodDelete, "/api/v1/job/jobs", "", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.False(t, decode[ErrorResponse](t, data).Success)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, data := s.do(t, http.MethodGet, "/healthz", "", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), `"store":"ok"`)

	s.do(t, http.MethodGet, "/api/v1/job/jobs", "", nil, "")
	status, data = s.do(t, http.MethodGet, "/metrics", "", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), "jobboard_http_requests_total")
}

func TestPayload_TooLarge(t *testing.T) {
	s := newTestServer(t)

	big := `{"firstName":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, decode[ErrorResponse](t, rec.Body.Bytes()).Success)

	status, _ := s.do(t, http.MethodPost, "/api/v1/users", "", strings.NewReader("{not json"), "application/json")
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *testServer) loginFrom(t *testing.T, header, ip string) int {
	t.Helper()
	data, err := json.Marshal(LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/v1/auth/login", bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(header, ip)
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestLogin_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	s := newTestServer(t, func(rt *Router) {
		rt.LoginLimiter = middleware.NewRateLimiter(1, 1)
	})

	var statuses []int
	for i := 1; i <= 5; i++ {
		header := "X-Forwarded-For"
		if i%2 == 0 {
			header = "X-Real-IP"
		}
		statuses = append(statuses, s.loginFrom(t, header, fmt.Sprintf("203.0.113.%d", i)))
	}
	assert.Equal(t, []int{401, 429, 429, 429, 429}, statuses)
}

func TestLogin_RateLimitBehindTrustedProxy(t *testing.T) {
	s := newTestServer(t, func(rt *Router) {
		rt.LoginLimiter = middleware.NewRateLimiter(1, 1)
		rt.TrustProxy = true
	})

	assert.Equal(t, http.StatusUnauthorized, s.loginFrom(t, "X-Real-IP", "203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, s.loginFrom(t, "X-Real-IP", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, s.loginFrom(t, "X-Real-IP", "203.0.113.1"))
}

func TestDeleteApplicant_MalformedIDBeforeLookup(t *testing.T) {
	s := newTestServer(t)

	path := "/api/v1/apply/jobs/" + primitive.NewObjectID().Hex() + "/applicants/abc"
	status, data := s.do(t, http.MethodDelete, path, "", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid jobId or applicantId", decode[ErrorResponse](t, data).Error)

	path = "/api/v1/apply/jobs/abc/applicants/" + primitive.NewObjectID().Hex()
	status, _ = s.do(t, http.MethodDelete, path, "", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateJobPost_MalformedBodyIsConflict(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "alice@example.com")

	status, data := s.do(t, http.MethodPost, "/api/v1/job/jobs", token, strings.NewReader("{not json"), "application/json")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Invalid request body", decode[ErrorResponse](t, data).Error)
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/api/v1/job/jobs", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
