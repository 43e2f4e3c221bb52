package dispatcher

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"booktable/infras/mailer"
	"booktable/infras/otel"
	"booktable/internal/domains/notification/model"
	"booktable/shared/constant"
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
)

const confirmationSubject = "Booking Confirmation"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`<h3>Your Table is Booked!</h3>` +
		`<p>Your table at <strong>{{.RestaurantName}}</strong> on <strong>{{.Date}}</strong> @ <strong>{{.Time}}</strong> ` +
		`for <strong>{{.NumPeople}}</strong> has been confirmed.</p>`,
))

// Dispatcher turns a booking event into the customer's confirmation email.
type Dispatcher interface {
	Dispatch(ctx context.Context, event model.BookingConfirmed) error
}

type dispatcherImpl struct {
	mailer mailer.Mailer
	otel   otel.Otel
}

func New(mailer mailer.Mailer, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		mailer: mailer,
		otel:   otel,
	}
}

func Render(event model.BookingConfirmed) (string, error) {
	var buf bytes.Buffer

	if err := confirmationTemplate.Execute(&buf, event); err != nil {
		return "", fmt.Errorf("failed to render confirmation: %w", err)
	}

	return buf.String(), nil
}

func (d *dispatcherImpl) Dispatch(ctx context.Context, event model.BookingConfirmed) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Dispatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = event.Validate(); err != nil {
		return err
	}

	scope.SetAttribute("booking_id", event.BookingID)

	body, err := Render(event)
	if err != nil {
		return err
	}

	err = d.mailer.Send(ctx, mailer.Message{
		To:      event.Email,
		Subject: confirmationSubject,
		HTML:    body,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to send booking confirmation")

		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}

	return nil
}
