package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/payment"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

const (
	PaymentSuccessMessage = "Payment successful! Your order has been placed."
	// PaymentDoneRedirect is used when PaymentConfig leaves DoneRedirect empty.
	PaymentDoneRedirect   = "/"
)

var stageOrder = map[models.PaymentStage]int{
	models.StageLoadingDraft:  0,
	models.StageAwaitingInput: 1,
	models.StageValidating:    2,
	models.StageProcessing:    3,
	models.StageCompleted:     4,
}

// paymentFlow tracks the stage of one payment attempt. Stages only advance.
type paymentFlow struct {
	sessionID string
	stage     models.PaymentStage
}

func newPaymentFlow(sessionID string) *paymentFlow {
	return &paymentFlow{sessionID: sessionID, stage: models.StageLoadingDraft}
}

func (f *paymentFlow) advance(to models.PaymentStage) {
	if stageOrder[to] <= stageOrder[f.stage] {
		panic(fmt.Sprintf("payment stage cannot move from %s to %s", f.stage, to))
	}
	logx.Debug().Str("session", f.sessionID).Str("from", string(f.stage)).Str("to", string(to)).Msg("payment stage")
	f.stage = to
}

type PaymentConfig struct {
	Delay        time.Duration `envconfig:"PAYMENT_PROCESSING_DELAY" default:"2s"`
	DoneRedirect string        `envconfig:"PAYMENT_DONE_REDIRECT" default:"/"`
}

type PaymentService struct {
	checkout     *CheckoutService
	lookup       payment.BankLookup
	delay        time.Duration
	doneRedirect string
	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewPaymentService(checkout *CheckoutService, lookup payment.BankLookup, cfg PaymentConfig) *PaymentService {
	redirect := cfg.DoneRedirect
	if redirect == "" {
		redirect = PaymentDoneRedirect
	}
	return &PaymentService{
		checkout:     checkout,
		lookup:       lookup,
		delay:        cfg.Delay,
		doneRedirect: redirect,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Begin loads the draft for the payment screen.
func (s *PaymentService) Begin(ctx context.Context, userID, sessionID string) (models.PaymentState, error) {
	flow := newPaymentFlow(sessionID)
	draft, err := s.checkout.LoadDraft(ctx, userID, sessionID)
	if err != nil {
		return models.PaymentState{Stage: flow.stage}, err
	}
	flow.advance(models.StageAwaitingInput)
	return models.PaymentState{Stage: flow.stage, Draft: draft}, nil
}

// Submit validates the card form and runs the simulated payment. On success
// the draft is discarded, so a repeated submit fails with ErrNoDraft.
func (s *PaymentService) Submit(ctx context.Context, userID, sessionID string, form models.CardForm) (models.PaymentState, error) {
	flow := newPaymentFlow(sessionID)
	draft, err := s.checkout.LoadDraft(ctx, userID, sessionID)
	if err != nil {
		return models.PaymentState{Stage: flow.stage}, err
	}
	flow.advance(models.StageAwaitingInput)

	flow.advance(models.StageValidating)
	if err := ValidateCardForm(form, s.now()); err != nil {
		return models.PaymentState{Stage: models.StageAwaitingInput, Draft: draft}, err
	}

	flow.advance(models.StageProcessing)
	if err := s.sleep(ctx, s.delay); err != nil {
		return models.PaymentState{Stage: models.StageAwaitingInput, Draft: draft}, err
	}

	if err := s.checkout.DiscardDraft(ctx, userID, sessionID); err != nil {
		return models.PaymentState{Stage: models.StageAwaitingInput, Draft: draft}, err
	}
	flow.advance(models.StageCompleted)

	logx.Info().Str("session", sessionID).Str("total", draft.Total.String()).Msg("simulated payment completed")
	return models.PaymentState{
		Stage:    flow.stage,
		Draft:    draft,
		Message:  PaymentSuccessMessage,
		Redirect: s.doneRedirect,
	}, nil
}

// Inspect formats a partially typed card number for display.
func (s *PaymentService) Inspect(ctx context.Context, raw string) models.CardInspection {
	return payment.Inspect(ctx, s.lookup, raw)
}

// ValidateCardForm gates submission of the payment form.
func ValidateCardForm(form models.CardForm, now time.Time) error {
	number := strings.TrimSpace(form.Number)
	name := strings.TrimSpace(form.Name)
	expiry := strings.TrimSpace(form.Expiry)
	cvv := strings.TrimSpace(form.CVV)

	if number == "" || name == "" || expiry == "" || cvv == "" {
		return ErrPaymentFields
	}
	if !payment.ValidCardNumber(number) {
		return ErrCardNumber
	}
	if !payment.ValidExpiry(expiry, now) {
		return ErrCardExpiry
	}
	if !payment.ValidCVV(cvv) {
		return ErrCardCVV
	}
	return nil
}
