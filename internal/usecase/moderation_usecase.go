package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 審査ワークフロー。
// pending→approved / pending→rejected に加えて、
// rejected→pending（再提出）と approved↔rejected（再審査）を許す。
// すべての遷移は操作した管理者つきでModerationLogに残る。
type ModerationUsecase struct {
	tx repo.TransactionManager
}

func NewModerationUsecase(tx repo.TransactionManager) *ModerationUsecase {
	return &ModerationUsecase{tx: tx}
}

type ProjectOutput struct {
	ID              int64  `json:"id"`
	CategoryID      int64  `json:"category_id"`
	OwnerUserID     int64  `json:"owner_user_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TechStack       string `json:"tech_stack"`
	GithubLink      string `json:"github_link"`
	DemoLink        string `json:"demo_link"`
	IsForSale       bool   `json:"is_for_sale"`
	Status          string `json:"status"`
	Featured        bool   `json:"featured"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	ReviewedBy      *int64 `json:"reviewed_by"`
	Views           int64  `json:"views"`
	ThumbnailURL    string `json:"thumbnail_url"`
}

type ProjectListOutput struct {
	Projects []ProjectOutput `json:"projects"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
}

// 審査待ちキュー
func (u *ModerationUsecase) ListPending(ctx context.Context, page int, limit int) (ProjectListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var out ProjectListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		projects, total, err := r.Projects().ListByStatus(ctx, model.ProjectStatusPending, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]ProjectOutput, 0, len(projects))
		for _, p := range projects {
			outs = append(outs, toProjectOutput(p))
		}
		out = ProjectListOutput{Projects: outs, Total: total, Page: page}
		return nil
	})

	if err != nil {
		return ProjectListOutput{}, err
	}
	return out, nil
}

// Approve はpending/rejectedのプロジェクトを承認する
func (u *ModerationUsecase) Approve(ctx context.Context, adminUserID int64, projectID int64) (ProjectOutput, error) {
	return u.transition(ctx, adminUserID, projectID, model.ModerationActionApprove, "",
		func(p *model.Project) error {
			if p.Status == model.ProjectStatusApproved {
				return NewHTTPError(http.StatusBadRequest, "project is already approved")
			}
			p.Status = model.ProjectStatusApproved
			p.RejectionReason = ""
			return nil
		})
}

// Reject はpending/approvedのプロジェクトを却下する。
// approvedから外れるのでfeaturedも必ず落とす
func (u *ModerationUsecase) Reject(ctx context.Context, adminUserID int64, projectID int64, reason string) (ProjectOutput, error) {
	reason = strings.TrimSpace(reason)
	return u.transition(ctx, adminUserID, projectID, model.ModerationActionReject, reason,
		func(p *model.Project) error {
			if p.Status == model.ProjectStatusRejected {
				return NewHTTPError(http.StatusBadRequest, "project is already rejected")
			}
			p.Status = model.ProjectStatusRejected
			p.RejectionReason = reason
			p.Featured = false
			return nil
		})
}

// Resubmit は却下済みを審査キューに戻す
func (u *ModerationUsecase) Resubmit(ctx context.Context, adminUserID int64, projectID int64) (ProjectOutput, error) {
	return u.transition(ctx, adminUserID, projectID, model.ModerationActionResubmit, "",
		func(p *model.Project) error {
			if p.Status != model.ProjectStatusRejected {
				return NewHTTPError(http.StatusBadRequest, "only rejected projects can be resubmitted")
			}
			p.Status = model.ProjectStatusPending
			p.RejectionReason = ""
			return nil
		})
}

// ToggleFeature はfeaturedフラグを反転する。承認済み限定
func (u *ModerationUsecase) ToggleFeature(ctx context.Context, adminUserID int64, projectID int64) (ProjectOutput, error) {
	return u.transition(ctx, adminUserID, projectID, model.ModerationActionFeature, "",
		func(p *model.Project) error {
			if p.Status != model.ProjectStatusApproved {
				return NewHTTPError(http.StatusBadRequest, "only approved projects can be featured")
			}
			p.Featured = !p.Featured
			return nil
		})
}

// transition は取得→遷移チェック→更新→ログをひとつのtxで行う
func (u *ModerationUsecase) transition(
	ctx context.Context,
	adminUserID int64,
	projectID int64,
	action model.ModerationAction,
	reason string,
	apply func(p *model.Project) error,
) (ProjectOutput, error) {
	if adminUserID <= 0 {
		return ProjectOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if projectID <= 0 {
		return ProjectOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out ProjectOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Projects().FindByID(ctx, projectID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		fromStatus := p.Status

		if err := apply(&p); err != nil {
			return err
		}
		p.ReviewedBy = &adminUserID

		if err := r.Projects().Update(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//審査ログ
		if err := r.ModerationLogs().Create(ctx, model.ModerationLog{
			AdminUserID: adminUserID,
			ProjectID:   projectID,
			Action:      action,
			FromStatus:  fromStatus,
			ToStatus:    p.Status,
			Reason:      reason,
			CreatedAt:   time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toProjectOutput(p)
		return nil
	})

	if err != nil {
		return ProjectOutput{}, err
	}
	return out, nil
}

func toProjectOutput(p model.Project) ProjectOutput {
	return ProjectOutput{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		OwnerUserID:     p.OwnerUserID,
		Title:           p.Title,
		Description:     p.Description,
		TechStack:       p.TechStack,
		GithubLink:      p.GithubLink,
		DemoLink:        p.DemoLink,
		IsForSale:       p.IsForSale,
		Status:          string(p.Status),
		Featured:        p.Featured,
		RejectionReason: p.RejectionReason,
		ReviewedBy:      p.ReviewedBy,
		Views:           p.Views,
		ThumbnailURL:    p.ThumbnailURL,
	}
}
