package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

// アップロード先ストレージの約束。実体はS3互換（infra/storage）
type MediaStorage interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// 10MBまで
const maxUploadSize = 10 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ファイル名由来の拡張子として採用してよいもの
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type MediaUsecase struct {
	storage MediaStorage
	tx      repo.TransactionManager
}

func NewMediaUsecase(storage MediaStorage, tx repo.TransactionManager) *MediaUsecase {
	return &MediaUsecase{storage: storage, tx: tx}
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader

	// 任意。指定があればアップロード後にURLをそのレコードへ保存する
	// "merchandise" → image_url / "project" → thumbnail_url
	Target   string
	TargetID int64
}

type UploadOutput struct {
	URL string `json:"url"`
}

// Upload はファイルをオブジェクトストレージへ中継し、公開URLを返す。
// ストレージが未設定の環境では503を返す
func (u *MediaUsecase) Upload(ctx context.Context, in UploadInput) (UploadOutput, error) {
	if u.storage == nil {
		return UploadOutput{}, NewHTTPError(http.StatusServiceUnavailable, "media storage is not configured")
	}
	if in.Body == nil || in.Size <= 0 {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if in.Size > maxUploadSize {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "file too large")
	}

	ext, ok := allowedContentTypes[in.ContentType]
	if !ok {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "unsupported content type")
	}
	// ファイル名の拡張子は画像として既知のものだけ尊重する。
	// それ以外（.htmlなど）はContent-Type由来の拡張子で保存する
	if e := strings.ToLower(path.Ext(in.Filename)); allowedExtensions[e] && e != ".jpeg" {
		ext = e
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)

	url, err := u.storage.Upload(ctx, key, in.ContentType, in.Body)
	if err != nil {
		return UploadOutput{}, NewHTTPError(http.StatusInternalServerError, "upload failed")
	}

	//URLをレコードに保存
	if in.Target != "" {
		if err := u.attach(ctx, in.Target, in.TargetID, url); err != nil {
			return UploadOutput{}, err
		}
	}

	return UploadOutput{URL: url}, nil
}

func (u *MediaUsecase) attach(ctx context.Context, target string, targetID int64, url string) error {
	if targetID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid target_id")
	}

	switch target {
	case "merchandise":
		return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			m, err := r.Merchandise().FindByID(ctx, targetID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "merchandise not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			m.ImageURL = url
			if err := r.Merchandise().Update(ctx, m); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return nil
		})
	case "project":
		return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			p, err := r.Projects().FindByID(ctx, targetID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "project not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			p.ThumbnailURL = url
			if err := r.Projects().Update(ctx, p); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return nil
		})
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid target")
	}
}
