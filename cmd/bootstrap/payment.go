package bootstrap

import (
	"stayflow/internal/infra/mail"
	"stayflow/internal/infra/payment"
	"stayflow/internal/pkg/config"
	"stayflow/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			NewStripeGateway,
			fx.As(new(commands.CheckoutGateway)),
		),
	),
)

var MailModule = fx.Module("mail",
	fx.Provide(
		fx.Annotate(
			NewMailer,
			fx.As(new(commands.Mailer)),
		),
	),
)

func NewStripeGateway(cfg config.Config) *payment.StripeGateway {
	return payment.NewStripeGateway(cfg.Stripe)
}

func NewMailer(cfg config.Config) *mail.SMTPMailer {
	return mail.NewSMTPMailer(cfg.SMTP)
}
