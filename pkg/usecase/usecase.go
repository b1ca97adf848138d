package usecase

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
	"github.com/arkade-store/stockroom/pkg/service/mail"
	"github.com/arkade-store/stockroom/pkg/service/notifier"
	"github.com/arkade-store/stockroom/pkg/service/push"
)

type UseCases struct {
	repo interfaces.Repository

	mail     mail.Service
	push     push.Service
	notifier *notifier.Notifier

	categories []string

	campaignInterval    time.Duration
	campaignMaxAttempts int
}

type Option func(*UseCases)

func WithMail(svc mail.Service) Option {
	return func(uc *UseCases) {
		uc.mail = svc
	}
}

func WithPush(svc push.Service) Option {
	return func(uc *UseCases) {
		uc.push = svc
	}
}

func WithNotifier(n *notifier.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithCategories restricts item categories to the given set. Without this
// option any category string is accepted.
func WithCategories(categories []string) Option {
	return func(uc *UseCases) {
		uc.categories = categories
	}
}

// WithCampaign overrides the retry cadence and attempt budget used for
// notification campaigns started by task operations.
func WithCampaign(interval time.Duration, maxAttempts int) Option {
	return func(uc *UseCases) {
		uc.campaignInterval = interval
		uc.campaignMaxAttempts = maxAttempts
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:                repo,
		campaignInterval:    notifier.DefaultInterval,
		campaignMaxAttempts: notifier.DefaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
