package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	appconfig "job-board-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu     sync.Mutex
	paths  []string
	bodies [][]byte
	status int
}

func (s *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	s.paths = append(s.paths, r.URL.Path)
	s.bodies = append(s.bodies, body)
	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func newTestUploader(t *testing.T, backend *fakeS3, publicURL string) *S3Uploader {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	uploader, err := NewS3Uploader(context.Background(), appconfig.AWSConfig{
		Region:       "us-east-1",
		S3Bucket:     "uploads",
		AccessKey:    "test",
		SecretKey:    "test",
		Endpoint:     server.URL,
		PublicURL:    publicURL,
		UsePathStyle: true,
	})
	require.NoError(t, err)
	return uploader
}

func TestS3Uploader_Upload(t *testing.T) {
	backend := &fakeS3{}
	uploader := newTestUploader(t, backend, "")

	body := []byte("%PDF-1.4 resume")
	info, err := uploader.Upload(context.Background(), FolderResumes, &Upload{
		Filename:    "My CV.PDF",
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	})
	require.NoError(t, err)

	require.Len(t, backend.paths, 1)
	assert.True(t, strings.HasPrefix(backend.paths[0], "/uploads/resumes/"), backend.paths[0])
	assert.True(t, strings.HasSuffix(backend.paths[0], ".pdf"), backend.paths[0])
	assert.Contains(t, string(backend.bodies[0]), "%PDF-1.4 resume")

	assert.True(t, strings.HasPrefix(info.Filename, "resumes/"))
	assert.Equal(t, uploader.endpoint+"/uploads/"+info.Filename, info.URL)
}

func TestS3Uploader_UniqueNames(t *testing.T) {
	backend := &fakeS3{}
	uploader := newTestUploader(t, backend, "https://cdn.example.com/")

	first, err := uploader.Upload(context.Background(), FolderLogos, upload("logo.png"))
	require.NoError(t, err)
	second, err := uploader.Upload(context.Background(), FolderLogos, upload("logo.png"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
	assert.Equal(t, "https://cdn.example.com/"+first.Filename, first.URL)
}

func TestS3Uploader_Failure(t *testing.T) {
	backend := &fakeS3{status: http.StatusForbidden}
	uploader := newTestUploader(t, backend, "")

	_, err := uploader.Upload(context.Background(), FolderPhotos, upload("me.png"))
	assert.Error(t, err)
}

func TestS3Uploader_ObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		uploader S3Uploader
		want     string
	}{
		{
			name:     "aws default",
			uploader: S3Uploader{bucket: "b", region: "eu-west-1"},
			want:     "https://b.s3.eu-west-1.amazonaws.com/k",
		},
		{
			name:     "public url wins",
			uploader: S3Uploader{bucket: "b", publicURL: "https://cdn.test", endpoint: "http://minio:9000"},
			want:     "https://cdn.test/k",
		},
		{
			name:     "path style endpoint",
			uploader: S3Uploader{bucket: "b", endpoint: "http://minio:9000", pathStyle: true},
			want:     "http://minio:9000/b/k",
		},
		{
			name:     "virtual host endpoint",
			uploader: S3Uploader{bucket: "b", endpoint: "https://storage.test"},
			want:     "https://b.storage.test/k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.uploader.objectURL("k"))
		})
	}
}
