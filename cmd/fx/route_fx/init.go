package route_fx

import (
	"go.uber.org/fx"
	"tripspark/internal/config"
	"tripspark/internal/services"
)

var Module = fx.Provide(provideRouteClient)

func provideRouteClient(cfg *config.Config) services.RouteClient {
	return services.NewGenRouteClient(cfg.Route.BaseURL, cfg.Route.Timeout)
}
