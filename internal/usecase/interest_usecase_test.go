package usecase_test

import (
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInterestUsecase(db *gorm.DB) *usecase.InterestUsecase {
	return usecase.NewInterestUsecase(
		infraRepo.NewInterestGormRepository(db),
		infraRepo.NewReviewGormRepository(db),
		infraRepo.NewProjectGormRepository(db),
	)
}

func TestExpressInterest_ClientDefaultsToBuying(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	p := seedProject(t, db, model.ProjectStatusApproved)

	out, err := uc.Express(ctxTODO(), 10, model.RoleClient, usecase.ExpressInterestInput{
		ProjectID: p.ID,
		Message:   "購入を検討しています",
	})
	require.NoError(t, err)
	assert.Equal(t, "buying", out.InterestedIn)
	assert.Equal(t, p.ID, out.ProjectID)
	assert.Equal(t, int64(10), out.UserID)
}

func TestExpressInterest_StudentOnlyCollaboration(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	p := seedProject(t, db, model.ProjectStatusApproved)

	_, err := uc.Express(ctxTODO(), 10, model.RoleStudent, usecase.ExpressInterestInput{
		ProjectID:    p.ID,
		InterestedIn: "buying",
		Message:      "一緒にやりたい",
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	out, err := uc.Express(ctxTODO(), 10, model.RoleStudent, usecase.ExpressInterestInput{
		ProjectID: p.ID,
		Message:   "一緒にやりたい",
	})
	require.NoError(t, err)
	assert.Equal(t, "collaboration", out.InterestedIn)
}

func TestExpressInterest_RejectsUnapprovedProject(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	p := seedProject(t, db, model.ProjectStatusPending)

	_, err := uc.Express(ctxTODO(), 10, model.RoleClient, usecase.ExpressInterestInput{
		ProjectID: p.ID,
		Message:   "気になります",
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestExpressInterest_DuplicateFails(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	p := seedProject(t, db, model.ProjectStatusApproved)

	in := usecase.ExpressInterestInput{ProjectID: p.ID, Message: "購入したい"}
	_, err := uc.Express(ctxTODO(), 10, model.RoleClient, in)
	require.NoError(t, err)

	_, err = uc.Express(ctxTODO(), 10, model.RoleClient, in)
	requireHTTPStatus(t, err, http.StatusBadRequest)

	//別ユーザーからは出せる
	_, err = uc.Express(ctxTODO(), 11, model.RoleClient, in)
	require.NoError(t, err)
}

func TestListInterests_ScopedByRole(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	owner := int64(5)
	mine := seedProject(t, db, model.ProjectStatusApproved)
	require.NoError(t, db.Model(&model.Project{}).
		Where("id = ?", mine.ID).Update("owner_user_id", owner).Error)
	other := seedProject(t, db, model.ProjectStatusApproved)

	_, err := uc.Express(ctxTODO(), 10, model.RoleClient, usecase.ExpressInterestInput{ProjectID: mine.ID, Message: "a"})
	require.NoError(t, err)
	_, err = uc.Express(ctxTODO(), 11, model.RoleClient, usecase.ExpressInterestInput{ProjectID: other.ID, Message: "b"})
	require.NoError(t, err)

	//クライアントは自分が出したものだけ
	out, err := uc.List(ctxTODO(), 10, model.RoleClient, 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Interests, 1)
	assert.Equal(t, mine.ID, out.Interests[0].ProjectID)
	assert.Equal(t, int64(1), out.Total)

	//学生は自分のプロジェクトに来たものだけ
	out, err = uc.List(ctxTODO(), owner, model.RoleStudent, 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Interests, 1)
	assert.Equal(t, mine.ID, out.Interests[0].ProjectID)

	//管理者は全件
	out, err = uc.List(ctxTODO(), 99, model.RoleAdmin, 1, 10)
	require.NoError(t, err)
	assert.Len(t, out.Interests, 2)
	assert.Equal(t, int64(2), out.Total)
}

func TestGetInterestDetail_Visibility(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	owner := int64(5)
	p := seedProject(t, db, model.ProjectStatusApproved)
	require.NoError(t, db.Model(&model.Project{}).
		Where("id = ?", p.ID).Update("owner_user_id", owner).Error)

	created, err := uc.Express(ctxTODO(), 10, model.RoleClient, usecase.ExpressInterestInput{ProjectID: p.ID, Message: "hi"})
	require.NoError(t, err)

	//本人・プロジェクト所有者・管理者は見える
	for _, tc := range []struct {
		userID int64
		role   model.Role
	}{
		{10, model.RoleClient},
		{owner, model.RoleStudent},
		{99, model.RoleAdmin},
	} {
		out, err := uc.GetDetail(ctxTODO(), tc.userID, tc.role, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, out.ID)
	}

	//他人のクライアント・無関係の学生は403
	_, err = uc.GetDetail(ctxTODO(), 11, model.RoleClient, created.ID)
	requireHTTPStatus(t, err, http.StatusForbidden)
	_, err = uc.GetDetail(ctxTODO(), 6, model.RoleStudent, created.ID)
	requireHTTPStatus(t, err, http.StatusForbidden)
}

func TestAddReview_OwnInterestOnce(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	p := seedProject(t, db, model.ProjectStatusApproved)
	created, err := uc.Express(ctxTODO(), 10, model.RoleClient, usecase.ExpressInterestInput{ProjectID: p.ID, Message: "hi"})
	require.NoError(t, err)

	//他人の関心表明には書けない
	_, err = uc.AddReview(ctxTODO(), 11, created.ID, usecase.ReviewCreateInput{Rating: 5})
	requireHTTPStatus(t, err, http.StatusForbidden)

	//レーティングは1..5
	_, err = uc.AddReview(ctxTODO(), 10, created.ID, usecase.ReviewCreateInput{Rating: 0})
	requireHTTPStatus(t, err, http.StatusBadRequest)
	_, err = uc.AddReview(ctxTODO(), 10, created.ID, usecase.ReviewCreateInput{Rating: 6})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	out, err := uc.AddReview(ctxTODO(), 10, created.ID, usecase.ReviewCreateInput{Rating: 4, Comment: "良いプロジェクト"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Rating)

	//2件目は400
	_, err = uc.AddReview(ctxTODO(), 10, created.ID, usecase.ReviewCreateInput{Rating: 5})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestListReviews_PublicByProject(t *testing.T) {
	db := newTestDB(t)
	uc := newInterestUsecase(db)

	p := seedProject(t, db, model.ProjectStatusApproved)
	other := seedProject(t, db, model.ProjectStatusApproved)

	i1, err := uc.Express(ctxTODO(), 10, model.RoleClient, usecase.ExpressInterestInput{ProjectID: p.ID, Message: "a"})
	require.NoError(t, err)
	i2, err := uc.Express(ctxTODO(), 11, model.RoleClient, usecase.ExpressInterestInput{ProjectID: other.ID, Message: "b"})
	require.NoError(t, err)

	_, err = uc.AddReview(ctxTODO(), 10, i1.ID, usecase.ReviewCreateInput{Rating: 5, Comment: "最高"})
	require.NoError(t, err)
	_, err = uc.AddReview(ctxTODO(), 11, i2.ID, usecase.ReviewCreateInput{Rating: 2})
	require.NoError(t, err)

	//対象プロジェクトのレビューだけが返る
	out, err := uc.ListReviews(ctxTODO(), p.ID)
	require.NoError(t, err)
	require.Len(t, out.Reviews, 1)
	assert.Equal(t, 5, out.Reviews[0].Rating)
	assert.Equal(t, "最高", out.Reviews[0].Comment)
}
