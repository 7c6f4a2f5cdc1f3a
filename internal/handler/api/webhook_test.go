//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"stayflow/internal/handler/api"
	"stayflow/internal/infra/payment"
	"stayflow/internal/usecase/commands"
	commonhttptest "stayflow/tests/common/httptest"
	commandsmock "stayflow/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	gateway         *commandsmock.MockCheckoutGateway
	paymentCommands *commandsmock.MockPaymentCommands
	router          *gin.Engine
}

func TestWebhookHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.gateway = commandsmock.NewMockCheckoutGateway(s.ctrl)
	s.paymentCommands = commandsmock.NewMockPaymentCommands(s.ctrl)

	handler := api.NewWebhookHandler(s.gateway, s.paymentCommands)
	s.router = gin.New()
	s.router.POST("/api/webhooks/stripe", handler.HandleStripeEvent)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *WebhookHandlerTestSuite) post(body []byte, signature string) map[string]any {
	w := commonhttptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/webhooks/stripe", body,
		map[string]string{"Stripe-Signature": signature})

	var resp map[string]any
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	}
	resp["_status"] = w.Code
	return resp
}

func (s *WebhookHandlerTestSuite) TestCheckoutCompleted() {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(&commands.PaymentEvent{Type: payment.EventCheckoutCompleted, SessionID: "cs_42"}, nil)
	s.paymentCommands.EXPECT().ConfirmCheckout(gomock.Any(), "cs_42").
		Return(commands.OutcomePaid, nil)

	resp := s.post(payload, "sig_valid")

	s.Equal(http.StatusOK, resp["_status"])
	s.Equal(true, resp["received"])
	s.Equal("paid", resp["outcome"])
}

func (s *WebhookHandlerTestSuite) TestRedelivery() {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(&commands.PaymentEvent{Type: payment.EventCheckoutCompleted, SessionID: "cs_42"}, nil)
	s.paymentCommands.EXPECT().ConfirmCheckout(gomock.Any(), "cs_42").
		Return(commands.OutcomeAlreadyPaid, nil)

	resp := s.post(payload, "sig_valid")

	s.Equal(http.StatusOK, resp["_status"])
	s.Equal("already_paid", resp["outcome"])
}

func (s *WebhookHandlerTestSuite) TestCanceledBookingStillAcknowledged() {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(&commands.PaymentEvent{Type: payment.EventCheckoutCompleted, SessionID: "cs_42"}, nil)
	s.paymentCommands.EXPECT().ConfirmCheckout(gomock.Any(), "cs_42").
		Return(commands.OutcomeCanceledBooking, nil)

	resp := s.post(payload, "sig_valid")

	s.Equal(http.StatusOK, resp["_status"])
	s.Equal("canceled_booking", resp["outcome"])
}

func (s *WebhookHandlerTestSuite) TestUnmatchedSessionStillAcknowledged() {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(&commands.PaymentEvent{Type: payment.EventCheckoutCompleted, SessionID: "cs_unknown"}, nil)
	s.paymentCommands.EXPECT().ConfirmCheckout(gomock.Any(), "cs_unknown").
		Return(commands.OutcomeUnmatched, nil)

	resp := s.post(payload, "sig_valid")

	s.Equal(http.StatusOK, resp["_status"])
	s.Equal("unmatched", resp["outcome"])
}

func (s *WebhookHandlerTestSuite) TestBadSignature() {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_bad").
		Return(nil, commands.ErrWebhookSignature)

	w := commonhttptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/webhooks/stripe", payload,
		map[string]string{"Stripe-Signature": "sig_bad"})

	commonhttptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid signature")
}

func (s *WebhookHandlerTestSuite) TestMalformedPayload() {
	payload := []byte(`not json`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(nil, commands.ErrWebhookPayload)

	w := commonhttptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/webhooks/stripe", payload,
		map[string]string{"Stripe-Signature": "sig_valid"})

	commonhttptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Malformed event payload")
}

func (s *WebhookHandlerTestSuite) TestUnsubscribedEventAcknowledged() {
	payload := []byte(`{"type":"invoice.paid"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(&commands.PaymentEvent{Type: "invoice.paid"}, nil)
	// ConfirmCheckout must not run for events the engine does not consume.

	resp := s.post(payload, "sig_valid")

	s.Equal(http.StatusOK, resp["_status"])
	s.Equal(true, resp["received"])
	s.NotContains(resp, "outcome")
}

func (s *WebhookHandlerTestSuite) TestTransientFailureTriggersRetry() {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.gateway.EXPECT().VerifyWebhook(payload, "sig_valid").
		Return(&commands.PaymentEvent{Type: payment.EventCheckoutCompleted, SessionID: "cs_42"}, nil)
	s.paymentCommands.EXPECT().ConfirmCheckout(gomock.Any(), "cs_42").
		Return(commands.ConfirmOutcome(0), commands.ErrDatabaseOperationFailed)

	w := commonhttptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/webhooks/stripe", payload,
		map[string]string{"Stripe-Signature": "sig_valid"})

	// Non-2xx makes the processor redeliver once the database is back.
	commonhttptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "")
}
