package service

import (
	"context"
	"strings"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

// BannerInput is the banner form as submitted
type BannerInput struct {
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle"`
	Image     string         `json:"image"`
	LinkType  model.LinkType `json:"linkType"`
	LinkValue string         `json:"linkValue"`
	Position  int            `json:"position"`
	IsActive  *bool          `json:"isActive"`
}

// BannerCounters are the figures shown above the banner list
type BannerCounters struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

func CountBanners(banners []model.Banner) BannerCounters {
	c := BannerCounters{Total: len(banners)}
	for _, b := range banners {
		if b.IsActive {
			c.Active++
		}
	}
	return c
}

type BannerService interface {
	List(ctx context.Context, sess *adminapi.Session) ([]model.Banner, error)
	Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Banner, error)
	// Save creates when id is empty, otherwise updates. Returns the saved banner and the refetched list.
	Save(ctx context.Context, sess *adminapi.Session, id string, input BannerInput) (*model.Banner, []model.Banner, error)
	Toggle(ctx context.Context, sess *adminapi.Session, id string) ([]model.Banner, error)
	Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error)
	MoveUp(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error)
	MoveDown(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error)
}

type bannerService struct {
	repo      repository.BannerRepository
	guard     *SubmitGuard
	reorderer *Reorderer[model.Banner]
}

func NewBannerService(repo repository.BannerRepository, guard *SubmitGuard) BannerService {
	return &bannerService{
		repo:      repo,
		guard:     guard,
		reorderer: NewReorderer[model.Banner]("banner", bannerPositions{repo: repo}),
	}
}

type bannerPositions struct {
	repo repository.BannerRepository
}

func (p bannerPositions) SetPosition(ctx context.Context, sess *adminapi.Session, id string, position int) error {
	return p.repo.Patch(ctx, sess, id, model.BannerPatch{Position: &position})
}

func (p bannerPositions) List(ctx context.Context, sess *adminapi.Session) ([]model.Banner, error) {
	return p.repo.List(ctx, sess)
}

// BuildBanner validates the form and applies the save time defaults
func BuildBanner(input BannerInput) (*model.Banner, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalid("title", "Введите заголовок")
	}

	link, err := model.ParseBannerLink(input.LinkType, input.LinkValue)
	if err != nil {
		return nil, invalid("linkValue", "Укажите корректную ссылку")
	}
	if input.Position < 0 {
		return nil, invalid("position", "Позиция не может быть отрицательной")
	}

	banner := &model.Banner{
		Title:    title,
		Image:    strings.TrimSpace(input.Image),
		Link:     link,
		Position: input.Position,
		IsActive: true,
	}
	if subtitle := strings.TrimSpace(input.Subtitle); subtitle != "" {
		banner.Subtitle = &subtitle
	}
	if banner.Image == "" {
		banner.Image = model.PlaceholderBannerImage
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	return banner, nil
}

func (s *bannerService) List(ctx context.Context, sess *adminapi.Session) ([]model.Banner, error) {
	return s.repo.List(ctx, sess)
}

func (s *bannerService) find(ctx context.Context, sess *adminapi.Session, id string) ([]model.Banner, int, error) {
	banners, err := s.repo.List(ctx, sess)
	if err != nil {
		return nil, -1, err
	}
	for i := range banners {
		if banners[i].ID == id {
			return banners, i, nil
		}
	}
	return banners, -1, ErrBannerNotFound
}

func (s *bannerService) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Banner, error) {
	banners, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return &banners[index], nil
}

func (s *bannerService) Save(ctx context.Context, sess *adminapi.Session, id string, input BannerInput) (*model.Banner, []model.Banner, error) {
	banner, err := BuildBanner(input)
	if err != nil {
		return nil, nil, err
	}

	release, err := s.guard.Acquire(submitKey(sess.ID(), "banner", id))
	if err != nil {
		return nil, nil, err
	}
	defer release()

	var saved *model.Banner
	if id == "" {
		saved, err = s.repo.Create(ctx, sess, banner)
	} else {
		saved, err = s.repo.Update(ctx, sess, id, banner)
	}
	if err != nil {
		return nil, nil, err
	}
	if saved.ID == "" {
		saved.ID = id
	}

	logger.Info("Banner saved", map[string]interface{}{
		"banner_id": saved.ID,
		"link_type": banner.LinkOrNone().Type(),
		"created":   id == "",
	})

	banners, err := s.repo.List(ctx, sess)
	if err != nil {
		return saved, nil, err
	}
	return saved, banners, nil
}

func (s *bannerService) Toggle(ctx context.Context, sess *adminapi.Session, id string) ([]model.Banner, error) {
	banners, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	active := !banners[index].IsActive
	if err := s.repo.Patch(ctx, sess, id, model.BannerPatch{IsActive: &active}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess)
}

func (s *bannerService) Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess)
}

func (s *bannerService) MoveUp(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error) {
	banners, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.reorderer.MoveUp(ctx, sess, banners, index, confirmed)
}

func (s *bannerService) MoveDown(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error) {
	banners, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.reorderer.MoveDown(ctx, sess, banners, index, confirmed)
}
