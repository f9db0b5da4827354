package service

import (
	"context"
	"testing"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupBannerServiceTest(t *testing.T) (*mockBannerRepository, BannerService, *adminapi.Session) {
	repo := new(mockBannerRepository)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return repo, NewBannerService(repo, NewSubmitGuard()), adminapi.NewSession("s1", "tok")
}

func TestBuildBanner_Defaults(t *testing.T) {
	banner, err := BuildBanner(BannerInput{Title: "  Лето  ", Subtitle: "   "})
	require.NoError(t, err)

	assert.Equal(t, "Лето", banner.Title)
	assert.Nil(t, banner.Subtitle)
	assert.Equal(t, model.PlaceholderBannerImage, banner.Image)
	assert.Equal(t, model.NoLink{}, banner.Link)
	assert.True(t, banner.IsActive)
}

func TestBuildBanner_Validation(t *testing.T) {
	_, err := BuildBanner(BannerInput{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = BuildBanner(BannerInput{Title: "A", LinkType: model.LinkCategory})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "linkValue", verr.Field)

	banner, err := BuildBanner(BannerInput{Title: "A", LinkType: model.LinkNone, LinkValue: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, model.NoLink{}, banner.Link)
}

func TestCountBanners(t *testing.T) {
	c := CountBanners([]model.Banner{{IsActive: true}, {}, {IsActive: true}})
	assert.Equal(t, BannerCounters{Total: 3, Active: 2}, c)
}

func TestBannerService_SaveCreate(t *testing.T) {
	repo, svc, sess := setupBannerServiceTest(t)
	subtitle := "до 30%"
	want := &model.Banner{
		Title:    "Скидки",
		Subtitle: &subtitle,
		Image:    "https://cdn/b.png",
		Link:     model.URLLink{URL: "/sale"},
		IsActive: true,
	}
	repo.On("Create", mock.Anything, sess, want).Return(&model.Banner{ID: "b1", Title: "Скидки"}, nil).Once()
	repo.On("List", mock.Anything, sess).Return([]model.Banner{{ID: "b1"}}, nil).Once()

	saved, list, err := svc.Save(context.Background(), sess, "", BannerInput{
		Title:     "Скидки",
		Subtitle:  " до 30% ",
		Image:     "https://cdn/b.png",
		LinkType:  model.LinkURL,
		LinkValue: "/sale",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", saved.ID)
	assert.Len(t, list, 1)
}

func TestBannerService_DeleteRequiresConfirmation(t *testing.T) {
	repo, svc, sess := setupBannerServiceTest(t)

	_, err := svc.Delete(context.Background(), sess, "b1", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestBannerService_MoveDownSecondWriteFails(t *testing.T) {
	repo, svc, sess := setupBannerServiceTest(t)
	banners := []model.Banner{{ID: "a", Position: 1}, {ID: "b", Position: 2}}
	one, two := 1, 2
	repo.On("List", mock.Anything, sess).Return(banners, nil).Once()
	repo.On("Patch", mock.Anything, sess, "a", model.BannerPatch{Position: &two}).Return(nil).Once()
	repo.On("Patch", mock.Anything, sess, "b", model.BannerPatch{Position: &one}).Return(errBoom).Once()
	partial := []model.Banner{{ID: "a", Position: 2}, {ID: "b", Position: 2}}
	repo.On("List", mock.Anything, sess).Return(partial, nil).Once()

	list, err := svc.MoveDown(context.Background(), sess, "a", true)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, partial, list)
}

func TestBannerService_Toggle(t *testing.T) {
	repo, svc, sess := setupBannerServiceTest(t)
	active := true
	repo.On("List", mock.Anything, sess).Return([]model.Banner{{ID: "b1"}}, nil).Twice()
	repo.On("Patch", mock.Anything, sess, "b1", model.BannerPatch{IsActive: &active}).Return(nil).Once()

	_, err := svc.Toggle(context.Background(), sess, "b1")
	require.NoError(t, err)
}

func TestBannerService_GetUnknown(t *testing.T) {
	repo, svc, sess := setupBannerServiceTest(t)
	repo.On("List", mock.Anything, sess).Return([]model.Banner{}, nil).Once()

	_, err := svc.Get(context.Background(), sess, "zzz")
	assert.ErrorIs(t, err, ErrBannerNotFound)
}
