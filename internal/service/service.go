package service

import (
	"time"

	"github.com/bookclub/library-service/internal/repository"
	"github.com/bookclub/library-service/pkg/mailer"
	"go.uber.org/zap"
)

type Service struct {
	log                *zap.Logger
	repo               repository.Repository
	mailer             mailer.Mailer
	strictReaderDelete bool
	now                func() time.Time
}

func NewService(repo repository.Repository, m mailer.Mailer, strictReaderDelete bool, log *zap.Logger) *Service {
	return &Service{
		log:                log,
		repo:               repo,
		mailer:             m,
		strictReaderDelete: strictReaderDelete,
		now:                func() time.Time { return time.Now().UTC() },
	}
}
