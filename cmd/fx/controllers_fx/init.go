package controllers_fx

import (
	"go.uber.org/fx"
	"tripspark/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewLandmarkController))
