package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 関心表明とレビュー。
// クライアントは購入/依頼、学生は協業の関心を承認済みプロジェクトに出せる。
// レビューは自分の関心表明に対して1件だけ
type InterestUsecase struct {
	interests repo.InterestRepository
	reviews   repo.ReviewRepository
	projects  repo.ProjectRepository
}

func NewInterestUsecase(interests repo.InterestRepository, reviews repo.ReviewRepository, projects repo.ProjectRepository) *InterestUsecase {
	return &InterestUsecase{interests: interests, reviews: reviews, projects: projects}
}

type ExpressInterestInput struct {
	ProjectID    int64  `json:"project_id"`
	InterestedIn string `json:"interested_in"`
	Message      string `json:"message"`
}

type InterestOutput struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	UserID       int64     `json:"user_id"`
	InterestedIn string    `json:"interested_in"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

type InterestListOutput struct {
	Interests []InterestOutput `json:"interests"`
	Total     int64            `json:"total"`
	Page      int              `json:"page"`
}

type ReviewCreateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewOutput struct {
	ID         int64     `json:"id"`
	InterestID int64     `json:"interest_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewListOutput struct {
	Reviews []ReviewOutput `json:"reviews"`
}

// Express は承認済みプロジェクトへの関心表明。
// 種別はロールで決まる（client=buying/hiring、student=collaboration）
func (u *InterestUsecase) Express(ctx context.Context, userID int64, role model.Role, in ExpressInterestInput) (InterestOutput, error) {
	if userID <= 0 {
		return InterestOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProjectID <= 0 {
		return InterestOutput{}, NewHTTPError(http.StatusBadRequest, "project_id is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return InterestOutput{}, NewHTTPError(http.StatusBadRequest, "message is required")
	}

	kind, err := interestKindFor(role, in.InterestedIn)
	if err != nil {
		return InterestOutput{}, err
	}

	p, err := u.projects.FindByID(ctx, in.ProjectID)
	if err == repo.ErrNotFound {
		return InterestOutput{}, NewHTTPError(http.StatusNotFound, "project not found")
	}
	if err != nil {
		return InterestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Status != model.ProjectStatusApproved {
		return InterestOutput{}, NewHTTPError(http.StatusBadRequest, "cannot express interest in unapproved projects")
	}

	//同じプロジェクトへの二重表明は不可
	if _, err := u.interests.FindByUserAndProject(ctx, userID, in.ProjectID); err == nil {
		return InterestOutput{}, NewHTTPError(http.StatusBadRequest, "you have already expressed interest in this project")
	} else if err != repo.ErrNotFound {
		return InterestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	i, err := u.interests.Create(ctx, model.Interest{
		ProjectID:    in.ProjectID,
		UserID:       userID,
		InterestedIn: kind,
		Message:      strings.TrimSpace(in.Message),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return InterestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toInterestOutput(i), nil
}

// List はロールで見える範囲が変わる。
// client=自分が出したもの / student=自分のプロジェクトに来たもの / admin=全件
func (u *InterestUsecase) List(ctx context.Context, userID int64, role model.Role, page int, limit int) (InterestListOutput, error) {
	if userID <= 0 {
		return InterestListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	f := repo.InterestListFilter{Page: page, Limit: limit}
	switch role {
	case model.RoleAdmin:
		// 全件
	case model.RoleClient:
		f.UserID = &userID
	case model.RoleStudent:
		f.OwnerUserID = &userID
	default:
		return InterestListOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	interests, total, err := u.interests.List(ctx, f)
	if err != nil {
		return InterestListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]InterestOutput, 0, len(interests))
	for _, i := range interests {
		outs = append(outs, toInterestOutput(i))
	}
	return InterestListOutput{Interests: outs, Total: total, Page: page}, nil
}

// GetDetail はListと同じ可視性ルールで1件返す
func (u *InterestUsecase) GetDetail(ctx context.Context, userID int64, role model.Role, interestID int64) (InterestOutput, error) {
	if userID <= 0 {
		return InterestOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if interestID <= 0 {
		return InterestOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	i, err := u.interests.FindByID(ctx, interestID)
	if err == repo.ErrNotFound {
		return InterestOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return InterestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	switch role {
	case model.RoleAdmin:
		// 全件見える
	case model.RoleClient:
		if i.UserID != userID {
			return InterestOutput{}, NewHTTPError(http.StatusForbidden, "you can only view your own interests")
		}
	case model.RoleStudent:
		p, err := u.projects.FindByID(ctx, i.ProjectID)
		if err == repo.ErrNotFound {
			return InterestOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return InterestOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if p.OwnerUserID != userID {
			return InterestOutput{}, NewHTTPError(http.StatusForbidden, "you can only view interests in your own projects")
		}
	default:
		return InterestOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return toInterestOutput(i), nil
}

// AddReview は自分の関心表明へのレビュー投稿。1件まで
func (u *InterestUsecase) AddReview(ctx context.Context, userID int64, interestID int64, in ReviewCreateInput) (ReviewOutput, error) {
	if userID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if interestID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	i, err := u.interests.FindByID(ctx, interestID)
	if err == repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if i.UserID != userID {
		return ReviewOutput{}, NewHTTPError(http.StatusForbidden, "you can only review your own interests")
	}

	if _, err := u.reviews.FindByInterestID(ctx, interestID); err == nil {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "review already exists for this interest")
	} else if err != repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rv, err := u.reviews.Create(ctx, model.Review{
		InterestID: interestID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toReviewOutput(rv), nil
}

// ListReviews は公開。認証不要でプロジェクトのレビューを返す
func (u *InterestUsecase) ListReviews(ctx context.Context, projectID int64) (ReviewListOutput, error) {
	if projectID <= 0 {
		return ReviewListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reviews, err := u.reviews.ListByProjectID(ctx, projectID)
	if err != nil {
		return ReviewListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ReviewOutput, 0, len(reviews))
	for _, rv := range reviews {
		outs = append(outs, toReviewOutput(rv))
	}
	return ReviewListOutput{Reviews: outs}, nil
}

// ロールごとに許される関心種別。空ならロールのデフォルト
func interestKindFor(role model.Role, raw string) (model.InterestKind, error) {
	v := strings.TrimSpace(strings.ToLower(raw))

	switch role {
	case model.RoleClient:
		switch v {
		case "":
			return model.InterestKindBuying, nil
		case string(model.InterestKindBuying):
			return model.InterestKindBuying, nil
		case string(model.InterestKindHiring):
			return model.InterestKindHiring, nil
		}
		return "", NewHTTPError(http.StatusBadRequest, "clients can express interest in buying or hiring")
	case model.RoleStudent:
		switch v {
		case "", string(model.InterestKindCollaboration):
			return model.InterestKindCollaboration, nil
		}
		return "", NewHTTPError(http.StatusBadRequest, "students can express interest in collaboration")
	}
	return "", NewHTTPError(http.StatusForbidden, "forbidden")
}

func toInterestOutput(i model.Interest) InterestOutput {
	return InterestOutput{
		ID:           i.ID,
		ProjectID:    i.ProjectID,
		UserID:       i.UserID,
		InterestedIn: string(i.InterestedIn),
		Message:      i.Message,
		CreatedAt:    i.CreatedAt,
	}
}

func toReviewOutput(rv model.Review) ReviewOutput {
	return ReviewOutput{
		ID:         rv.ID,
		InterestID: rv.InterestID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		CreatedAt:  rv.CreatedAt,
	}
}
