package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rnitealiii/EliteMart/internal/cart"
	"github.com/rnitealiii/EliteMart/pkg/config"
	"github.com/rnitealiii/EliteMart/pkg/enums"
	pkgerrors "github.com/rnitealiii/EliteMart/pkg/errors"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/metrics"
	"github.com/rnitealiii/EliteMart/pkg/storage"
)

type cartAccess interface {
	Snapshot() cart.Snapshot
	Clear(ctx context.Context)
}

type notifier interface {
	Notify(ctx context.Context, message string, severity enums.Severity)
	NotifyError(ctx context.Context, err error)
}

// StageObserver receives the new stage after every transition.
type StageObserver func(enums.CheckoutStage)

// Flow is the checkout stage machine:
//
//	Closed -> OptionSelect -> FormEntry <-> PaymentSelect -> Confirmed
//
// with an external-handoff side exit from OptionSelect that neither advances
// the machine nor clears the cart. The session (stage, order id) is transient
// and resets on every open; it is never persisted.
type Flow struct {
	mu      sync.Mutex
	stage   enums.CheckoutStage
	session uuid.UUID
	orderID string
	timer   *time.Timer

	cart      cartAccess
	kv        storage.KV
	notifier  notifier
	validate  *validator.Validate
	observers []StageObserver

	whatsappNumber string
	walletDelay    time.Duration
	qrDelay        time.Duration

	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewFlow builds the checkout flow.
func NewFlow(cfg config.CheckoutConfig, cartStore cartAccess, kv storage.KV, n notifier, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Flow, error) {
	if cartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if kv == nil {
		return nil, fmt.Errorf("storage required")
	}
	if n == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &Flow{
		stage:          enums.StageClosed,
		cart:           cartStore,
		kv:             kv,
		notifier:       n,
		validate:       newValidator(),
		whatsappNumber: cfg.WhatsAppNumber,
		walletDelay:    cfg.WalletDelay,
		qrDelay:        cfg.QRDelay,
		logg:           logg,
		metrics:        m,
	}, nil
}

// Subscribe registers an observer for stage transitions.
func (f *Flow) Subscribe(observer StageObserver) {
	if observer == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, observer)
}

// Stage returns the current stage.
func (f *Flow) Stage() enums.CheckoutStage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// OrderID returns the order identifier generated on confirmation, or empty.
func (f *Flow) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// Open transitions Closed -> OptionSelect. The empty-cart guard re-checks on
// every open: an empty cart refuses the transition with exactly one error
// toast and the machine stays Closed. A previous Confirmed session never
// resumes; each open starts a fresh session at OptionSelect.
func (f *Flow) Open(ctx context.Context) error {
	if f.cart.Snapshot().IsEmpty() {
		err := pkgerrors.New(pkgerrors.CodeEmptyCart, "checkout refused: cart is empty")
		f.notifier.NotifyError(ctx, err)
		return err
	}

	f.mu.Lock()
	f.stopTimerLocked()
	f.stage = enums.StageOptionSelect
	f.session = uuid.New()
	f.orderID = ""
	f.mu.Unlock()

	f.publish(enums.StageOptionSelect)
	return nil
}

// HandoffLink formats the cart into the delivery-chat message and returns the
// deep link for the rendering boundary to open in a new context. This is a
// side exit: the stage does not advance and the cart is not cleared, so the
// customer can still come back and order in-app.
func (f *Flow) HandoffLink(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.stage != enums.StageOptionSelect {
		f.mu.Unlock()
		return "", pkgerrors.New(pkgerrors.CodeValidation, "handoff only available from option select")
	}
	f.mu.Unlock()

	message := HandoffMessage(GenerateOrderID(), f.cart.Snapshot())
	f.metrics.IncCheckoutOutcome("handoff")
	f.logg.Info(ctx, "order handed off to delivery chat")
	return HandoffLink(f.whatsappNumber, message), nil
}

// ChooseWebsiteOrder transitions OptionSelect -> FormEntry.
func (f *Flow) ChooseWebsiteOrder(ctx context.Context) error {
	return f.transition(enums.StageOptionSelect, enums.StageFormEntry)
}

// BackToOptions transitions FormEntry -> OptionSelect.
func (f *Flow) BackToOptions(ctx context.Context) error {
	return f.transition(enums.StageFormEntry, enums.StageOptionSelect)
}

// BackToForm transitions PaymentSelect -> FormEntry.
func (f *Flow) BackToForm(ctx context.Context) error {
	return f.transition(enums.StagePaymentSelect, enums.StageFormEntry)
}

// PrefillCustomerInfo returns the contact stored by a previous order, if any,
// so the form can be prefilled.
func (f *Flow) PrefillCustomerInfo(ctx context.Context) (CustomerInfo, bool) {
	return loadCustomerInfo(ctx, f.kv)
}

// SubmitCustomerInfo validates the form and, on success, persists the contact
// and transitions FormEntry -> PaymentSelect. On failure the machine stays in
// FormEntry and the specific failure (missing fields vs invalid phone) is
// surfaced as one error toast.
func (f *Flow) SubmitCustomerInfo(ctx context.Context, info CustomerInfo) error {
	f.mu.Lock()
	if f.stage != enums.StageFormEntry {
		f.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "customer form not active")
	}
	f.mu.Unlock()

	trimmed := info.trimmed()
	if err := validateCustomerInfo(f.validate, trimmed); err != nil {
		f.notifier.NotifyError(ctx, err)
		return err
	}

	if err := persistCustomerInfo(ctx, f.kv, trimmed); err != nil {
		// Best-effort persistence: the flow still advances.
		f.logg.Error(ctx, "persisting customer info failed", err)
	}

	f.mu.Lock()
	f.stage = enums.StagePaymentSelect
	f.mu.Unlock()

	f.publish(enums.StagePaymentSelect)
	return nil
}

// ConfirmOrder completes checkout immediately via the generic confirm action.
func (f *Flow) ConfirmOrder(ctx context.Context) error {
	f.mu.Lock()
	if f.stage != enums.StagePaymentSelect {
		f.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "payment selection not active")
	}
	session := f.session
	f.mu.Unlock()

	f.complete(ctx, session, "generic", "Order placed successfully!")
	return nil
}

// PayWithWallet simulates a mobile-wallet payment: an informational toast,
// then a delayed confirmation.
func (f *Flow) PayWithWallet(ctx context.Context, method enums.PaymentMethod) error {
	if method != enums.PaymentEasyPaisa && method != enums.PaymentJazzCash {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported wallet %q", method))
	}
	f.notifier.Notify(ctx, fmt.Sprintf("Redirecting to %s...", method.DisplayName()), enums.SeverityInfo)
	return f.schedulePayment(ctx, string(method), f.walletDelay, "Payment successful! Order placed.")
}

// PayWithQR simulates a QR-code payment with a longer processing delay.
func (f *Flow) PayWithQR(ctx context.Context) error {
	f.notifier.Notify(ctx, "Please scan the QR code to complete your payment", enums.SeverityInfo)
	return f.schedulePayment(ctx, "qr", f.qrDelay, "Payment received! Order placed.")
}

// Close transitions any stage to Closed and cancels pending payment timers.
// The next open starts over at OptionSelect; a mid-flight session never
// resumes.
func (f *Flow) Close(ctx context.Context) {
	f.mu.Lock()
	if f.stage == enums.StageClosed {
		f.mu.Unlock()
		return
	}
	f.stopTimerLocked()
	f.stage = enums.StageClosed
	f.session = uuid.Nil
	f.mu.Unlock()

	f.publish(enums.StageClosed)
}

// schedulePayment arms the one-shot payment timer. The timer captures the
// session id and re-validates the machine before applying its effect, so a
// timer that outlives its session (closed or reopened checkout) does nothing.
func (f *Flow) schedulePayment(ctx context.Context, outcome string, delay time.Duration, successMessage string) error {
	f.mu.Lock()
	if f.stage != enums.StagePaymentSelect {
		f.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "payment selection not active")
	}
	f.stopTimerLocked()
	session := f.session
	f.timer = time.AfterFunc(delay, func() {
		f.complete(context.WithoutCancel(ctx), session, outcome, successMessage)
	})
	f.mu.Unlock()
	return nil
}

// complete applies the Confirmed transition for the given session: fresh
// order id, reveal Confirmed, clear the cart (including its persisted entry)
// and emit the path-specific success toast. A stale session is ignored.
func (f *Flow) complete(ctx context.Context, session uuid.UUID, outcome, successMessage string) {
	f.mu.Lock()
	if f.stage != enums.StagePaymentSelect || f.session != session {
		f.mu.Unlock()
		f.logg.Debug(ctx, "stale payment completion ignored")
		return
	}
	f.timer = nil
	f.orderID = GenerateOrderID()
	f.stage = enums.StageConfirmed
	orderID := f.orderID
	f.mu.Unlock()

	// The cart is cleared only once Confirmed is reached, never before.
	f.cart.Clear(ctx)
	f.metrics.IncCheckoutOutcome(outcome)
	f.logg.Info(f.logg.WithFields(ctx, map[string]any{
		"order_id": orderID,
		"outcome":  outcome,
	}), "order confirmed")
	f.notifier.Notify(ctx, successMessage, enums.SeveritySuccess)
	f.publish(enums.StageConfirmed)
}

func (f *Flow) transition(from, to enums.CheckoutStage) error {
	f.mu.Lock()
	if f.stage != from {
		f.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("transition requires stage %s", from))
	}
	f.stage = to
	f.mu.Unlock()

	f.publish(to)
	return nil
}

func (f *Flow) publish(stage enums.CheckoutStage) {
	f.mu.Lock()
	observers := append([]StageObserver(nil), f.observers...)
	f.mu.Unlock()

	for _, observer := range observers {
		observer(stage)
	}
}

func (f *Flow) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
