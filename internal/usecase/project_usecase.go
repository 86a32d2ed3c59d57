package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ProjectUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
}

func NewProjectUsecase(tx repo.TransactionManager, categories repo.CategoryRepository) *ProjectUsecase {
	return &ProjectUsecase{tx: tx, categories: categories}
}

type ProjectListInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Featured *bool
}

type ProjectCreateInput struct {
	CategoryID  int64  `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TechStack   string `json:"tech_stack"`
	GithubLink  string `json:"github_link"`
	DemoLink    string `json:"demo_link"`
	IsForSale   bool   `json:"is_for_sale"`
}

// 公開一覧。承認済みだけが出る
func (u *ProjectUsecase) List(ctx context.Context, in ProjectListInput) (ProjectListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 10
	}

	q := repo.ProjectListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        in.Q,
		Featured: in.Featured,
	}

	//カテゴリ名で絞り込み
	if strings.TrimSpace(in.Category) != "" {
		c, err := u.categories.FindByName(ctx, strings.TrimSpace(in.Category))
		if err == repo.ErrNotFound {
			return ProjectListOutput{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		if err != nil {
			return ProjectListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		q.CategoryID = &c.ID
	}

	var out ProjectListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		projects, total, err := r.Projects().List(ctx, q)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]ProjectOutput, 0, len(projects))
		for _, p := range projects {
			outs = append(outs, toProjectOutput(p))
		}
		out = ProjectListOutput{Projects: outs, Total: total, Page: in.Page}
		return nil
	})

	if err != nil {
		return ProjectListOutput{}, err
	}
	return out, nil
}

// 詳細。閲覧のたびにビュー数を+1する
func (u *ProjectUsecase) GetDetail(ctx context.Context, projectID int64) (ProjectOutput, error) {
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

		if err := r.Projects().IncrementViews(ctx, projectID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p.Views++
		out = toProjectOutput(p)
		return nil
	})

	if err != nil {
		return ProjectOutput{}, err
	}
	return out, nil
}

// Create は学生の投稿。新規は必ずpendingで審査に入る
func (u *ProjectUsecase) Create(ctx context.Context, ownerUserID int64, in ProjectCreateInput) (ProjectOutput, error) {
	if ownerUserID <= 0 {
		return ProjectOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return ProjectOutput{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return ProjectOutput{}, NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if in.CategoryID <= 0 {
		return ProjectOutput{}, NewHTTPError(http.StatusBadRequest, "category_id is required")
	}

	if _, err := u.categories.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return ProjectOutput{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return ProjectOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out ProjectOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Projects().Create(ctx, model.Project{
			CategoryID:  in.CategoryID,
			OwnerUserID: ownerUserID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			TechStack:   in.TechStack,
			GithubLink:  in.GithubLink,
			DemoLink:    in.DemoLink,
			IsForSale:   in.IsForSale,
			Status:      model.ProjectStatusPending,
			Featured:    false,
		})
		if err != nil {
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
