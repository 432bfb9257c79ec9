package conversation_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripspark/internal/config"
	"tripspark/internal/services"
	mem "tripspark/pkg/memcache"
	"tripspark/pkg/metrics"
	"tripspark/pkg/utils"
)

var Module = fx.Provide(provideClarificationStore, provideConversationService)

// provideClarificationStore uses Redis when conversation.redis_url is set and process memory otherwise.
func provideClarificationStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.ClarificationStore, error) {
	if cfg.Conversation.RedisURL == "" {
		logger.Info("pending clarifications kept in memory")
		return mem.NewClarifications(), nil
	}

	store, err := mem.NewRedisClarifications(cfg.Conversation.RedisURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	logger.Info("pending clarifications kept in redis")
	return store, nil
}

func provideConversationService(
	landmarkService services.LandmarkServiceInterface,
	routeClient services.RouteClient,
	completion utils.TextCompletionClient,
	tripService services.TripServiceInterface,
	store mem.ClarificationStore,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg *config.Config,
) services.ConversationServiceInterface {
	return services.NewConversationService(
		landmarkService,
		routeClient,
		completion,
		tripService,
		store,
		m,
		logger,
		services.ConversationSettings{
			City:             cfg.Conversation.City,
			ConditionID:      cfg.Conversation.ConditionID,
			TripType:         cfg.Conversation.TripType,
			ClarificationTTL: cfg.Conversation.TTL,
		},
	)
}
