package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"job-board-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocket_OwnerNotifiedOfApplications(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.registerAndLogin(t, "Alice", "alice@example.com")
	job := s.createJob(t, token)

	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.IsOnline(alice.ID.Hex()) }, 2*time.Second, 10*time.Millisecond)

	body, contentType := multipartBody(t, applicantFields, "resume", "cv.pdf")
	status, _ := s.do(t, http.MethodPost, "/api/v1/apply/jobs/"+job.ID.Hex()+"/apply", "", body, contentType)
	require.Equal(t, http.StatusCreated, status)

	var event services.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, services.EventApplicantCreated, event.Type)
	assert.Equal(t, job.ID.Hex(), event.JobPostID)
	require.NotNil(t, event.Applicant)
	assert.Equal(t, "Jane Doe", event.Applicant.Name)
}

func TestWebSocket_RejectsMissingOrInvalidToken(t *testing.T) {
	s := newTestServer(t)
	base := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(base, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(base+"?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
