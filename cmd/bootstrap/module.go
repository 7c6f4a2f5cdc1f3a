package bootstrap

import (
	"stayflow/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	PaymentModule,
	MailModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
