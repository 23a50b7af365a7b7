package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
)

// OperatorService exposes the operator-only marketplace controls. Every
// setter takes effect immediately and rejects any caller other than the
// configured operator account.
type OperatorService interface {
	SetFee(ctx context.Context, caller string, bps uint64) error
	SetFeeReceiver(ctx context.Context, caller, receiver string) error
	SetAuctionExtensionInterval(ctx context.Context, caller string, blocks uint64) error
	SetRegistry(ctx context.Context, caller string, registry ports.Registry) error

	GetFee(ctx context.Context) (uint64, error)
	GetFeeReceiver(ctx context.Context) (string, error)
	GetAuctionExtensionInterval(ctx context.Context) (uint64, error)
}

type operatorService struct {
	operator           string
	settingsRepository domain.SettingsRepository
	registry           *RegistryGateway
}

// NewOperatorService returns an OperatorService bound to the given operator
// account.
func NewOperatorService(
	operator string,
	settingsRepository domain.SettingsRepository,
	registry *RegistryGateway,
) OperatorService {
	return &operatorService{
		operator:           operator,
		settingsRepository: settingsRepository,
		registry:           registry,
	}
}

func (o *operatorService) SetFee(ctx context.Context, caller string, bps uint64) error {
	if err := o.checkOperator(caller); err != nil {
		return err
	}
	if err := o.settingsRepository.UpdateSettings(
		ctx,
		func(s *domain.Settings) (*domain.Settings, error) {
			if err := s.SetFeeBps(bps); err != nil {
				return nil, err
			}
			return s, nil
		},
	); err != nil {
		return err
	}
	log.Infof("marketplace fee set to %d bps", bps)
	return nil
}

func (o *operatorService) SetFeeReceiver(ctx context.Context, caller, receiver string) error {
	if err := o.checkOperator(caller); err != nil {
		return err
	}
	if err := o.settingsRepository.UpdateSettings(
		ctx,
		func(s *domain.Settings) (*domain.Settings, error) {
			if err := s.SetFeeReceiver(receiver); err != nil {
				return nil, err
			}
			return s, nil
		},
	); err != nil {
		return err
	}
	log.Infof("marketplace fee receiver set to %s", receiver)
	return nil
}

func (o *operatorService) SetAuctionExtensionInterval(
	ctx context.Context, caller string, blocks uint64,
) error {
	if err := o.checkOperator(caller); err != nil {
		return err
	}
	if err := o.settingsRepository.UpdateSettings(
		ctx,
		func(s *domain.Settings) (*domain.Settings, error) {
			if err := s.SetAuctionExtensionInterval(blocks); err != nil {
				return nil, err
			}
			return s, nil
		},
	); err != nil {
		return err
	}
	log.Infof("auction extension interval set to %d blocks", blocks)
	return nil
}

func (o *operatorService) SetRegistry(
	ctx context.Context, caller string, registry ports.Registry,
) error {
	if err := o.checkOperator(caller); err != nil {
		return err
	}
	o.registry.Swap(registry)
	log.Info("collection registry repointed")
	return nil
}

func (o *operatorService) GetFee(ctx context.Context) (uint64, error) {
	settings, err := o.settingsRepository.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.FeeBps, nil
}

func (o *operatorService) GetFeeReceiver(ctx context.Context) (string, error) {
	settings, err := o.settingsRepository.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.FeeReceiver, nil
}

func (o *operatorService) GetAuctionExtensionInterval(ctx context.Context) (uint64, error) {
	settings, err := o.settingsRepository.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.AuctionExtensionInterval, nil
}

func (o *operatorService) checkOperator(caller string) error {
	if caller != o.operator {
		return ErrNotOperator
	}
	return nil
}
