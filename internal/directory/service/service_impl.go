package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/smallbiznis/storefront/internal/directory/domain"
	"github.com/smallbiznis/storefront/pkg/pagination"
	"github.com/smallbiznis/storefront/pkg/timestamp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("directory.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	// An unrecognized role is just a filter nothing matches; lists do not fail.
	role := strings.TrimSpace(req.Role)

	items, total, err := s.repo.ListPage(ctx, s.db, role, req.Page.Limit, req.Page.Offset())
	if err != nil {
		return nil, err
	}

	data := make([]domain.Response, 0, len(items))
	for i := range items {
		data = append(data, s.toResponse(&items[i]))
	}

	return &domain.ListResponse{
		Data: data,
		Pagination: pagination.PageMeta{
			Page:  req.Page.Page,
			Limit: req.Page.Limit,
			Total: total,
		},
	}, nil
}

func (s *Service) toResponse(u *domain.User) domain.Response {
	features := []string{}
	if len(u.SubscriptionFeatures) > 0 {
		if err := json.Unmarshal(u.SubscriptionFeatures, &features); err != nil {
			s.log.Warn("malformed subscription features", zap.Int64("user_id", u.ID), zap.Error(err))
		}
	}

	return domain.Response{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Profile: domain.Profile{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Avatar:    u.Avatar,
		},
		Preferences: domain.Preferences{
			Notifications: domain.Notifications{
				Email: u.NotifyEmail,
				Push:  u.NotifyPush,
				SMS:   u.NotifySMS,
			},
			Theme:    u.Theme,
			Language: u.Language,
		},
		Subscription: domain.Subscription{
			Plan:      u.SubscriptionPlan,
			Status:    u.SubscriptionStatus,
			ExpiresAt: timestamp.Of(u.SubscriptionExpiresAt),
			Features:  features,
		},
		Metadata: domain.Metadata{
			CreatedAt:   timestamp.Of(u.CreatedAt),
			LastLoginAt: timestamp.Of(u.LastLoginAt),
			LoginCount:  u.LoginCount,
			IsVerified:  u.IsVerified,
		},
	}
}
