package workers

import (
	"context"

	"go.uber.org/fx"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("shop-workers",
	fx.Provide(NewAdminNotificationConsumer),
	fx.Invoke(registerAdminNotificationConsumerLifecycle),
)

// registerAdminNotificationConsumerLifecycle registers consumer lifecycle hooks
func registerAdminNotificationConsumerLifecycle(lc fx.Lifecycle, consumer *AdminNotificationConsumer) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			consumer.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return consumer.Stop()
		},
	})
}
