package usecase_test

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// アップロード先を記録するだけのストレージ
type captureStorage struct {
	key         string
	contentType string
}

func (s *captureStorage) Upload(_ context.Context, key string, contentType string, _ io.Reader) (string, error) {
	s.key = key
	s.contentType = contentType
	return "https://cdn.example.com/" + key, nil
}

func TestUpload_KeyExtensionFollowsContentType(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
		wantExt     string
	}{
		{"ファイル名の拡張子を使う", "photo.png", "image/png", ".png"},
		{"大文字は小文字に揃える", "PHOTO.PNG", "image/png", ".png"},
		{"jpegはjpgへ正規化", "photo.jpeg", "image/jpeg", ".jpg"},
		{"拡張子なしはContent-Typeから", "photo", "image/webp", ".webp"},
		{"画像以外の拡張子は無視してContent-Typeから", "x.html", "image/png", ".png"},
		{"実行形式風の名前も同様", "payload.php", "image/gif", ".gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &captureStorage{}
			uc := usecase.NewMediaUsecase(st, newTxManager(db))

			out, err := uc.Upload(ctxTODO(), usecase.UploadInput{
				Filename:    tt.filename,
				ContentType: tt.contentType,
				Size:        100,
				Body:        strings.NewReader("data"),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantExt, path.Ext(st.key))
			assert.True(t, strings.HasPrefix(st.key, "uploads/"))
			assert.Equal(t, tt.contentType, st.contentType)
			assert.Equal(t, "https://cdn.example.com/"+st.key, out.URL)
		})
	}
}

func TestUpload_RejectsUnsupportedContentType(t *testing.T) {
	db := newTestDB(t)
	uc := usecase.NewMediaUsecase(&captureStorage{}, newTxManager(db))

	_, err := uc.Upload(ctxTODO(), usecase.UploadInput{
		Filename:    "page.html",
		ContentType: "text/html",
		Size:        100,
		Body:        strings.NewReader("<html>"),
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpload_RejectsTooLarge(t *testing.T) {
	db := newTestDB(t)
	uc := usecase.NewMediaUsecase(&captureStorage{}, newTxManager(db))

	_, err := uc.Upload(ctxTODO(), usecase.UploadInput{
		Filename:    "big.png",
		ContentType: "image/png",
		Size:        11 << 20,
		Body:        strings.NewReader("x"),
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpload_WithoutStorageReturns503(t *testing.T) {
	db := newTestDB(t)
	uc := usecase.NewMediaUsecase(nil, newTxManager(db))

	_, err := uc.Upload(ctxTODO(), usecase.UploadInput{
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        100,
		Body:        strings.NewReader("data"),
	})
	requireHTTPStatus(t, err, http.StatusServiceUnavailable)
}

func TestUpload_AttachesThumbnailToProject(t *testing.T) {
	db := newTestDB(t)
	st := &captureStorage{}
	uc := usecase.NewMediaUsecase(st, newTxManager(db))

	p := seedProject(t, db, model.ProjectStatusApproved)

	out, err := uc.Upload(ctxTODO(), usecase.UploadInput{
		Filename:    "thumb.png",
		ContentType: "image/png",
		Size:        100,
		Body:        strings.NewReader("data"),
		Target:      "project",
		TargetID:    p.ID,
	})
	require.NoError(t, err)

	var got model.Project
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, out.URL, got.ThumbnailURL)
}
