// Package consumerWorker drains the email-task queue: donation receipts and
// newsletter welcome mail are sent off the request path, so a slow SMTP
// server never delays an HTTP response.
package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/dto"
	"churchapi/internal/mailer"
	"churchapi/internal/model"
	"churchapi/internal/rabbit"
	"churchapi/internal/repo"
	"churchapi/pkg/validator"
)

type Reader struct {
	RMQ       *rabbit.Client
	donations *repo.Repository[model.Donation]
	mail      *mailer.Mailer
	done      chan struct{}
	cancel    context.CancelFunc
}

func NewReader(rmq *rabbit.Client, donations *repo.Repository[model.Donation], mail *mailer.Mailer) *Reader {
	return &Reader{
		RMQ:       rmq,
		donations: donations,
		mail:      mail,
		done:      make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("email worker started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var task dto.EmailTask
			if err := json.Unmarshal(body, &task); err != nil {
				zlog.Logger.Error().Err(err).Msgf("failed to unmarshal email task: %s", string(body))
				// Malformed tasks can never succeed; drop instead of requeue.
				return nil
			}
			if err := validator.Validate(cctx, task); err != nil {
				zlog.Logger.Error().Err(err).Str("kind", task.Kind).Msg("invalid email task")
				return nil
			}

			switch task.Kind {
			case dto.EmailTaskReceipt:
				return r.handleReceipt(cctx, task)
			case dto.EmailTaskWelcome:
				if err := r.mail.SendWelcome(task.Email, task.Name); err != nil {
					zlog.Logger.Warn().Err(err).Str("email", task.Email).Msg("failed to send welcome mail")
				}
				return nil
			default:
				zlog.Logger.Warn().Str("kind", task.Kind).Msg("unknown email task kind")
				return nil
			}
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("email worker stopped by context")
	}()
}

// handleReceipt loads the donation, mails the receipt once, and marks
// receiptSent so a redelivered task does not mail twice.
func (r *Reader) handleReceipt(ctx context.Context, task dto.EmailTask) error {
	id, err := primitive.ObjectIDFromHex(task.DonationID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("donation_id", task.DonationID).Msg("bad donation id in email task")
		return nil
	}

	donation, err := r.donations.FindOne(ctx, id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("donation_id", task.DonationID).Msg("failed to load donation for receipt")
		return err
	}
	if donation.ReceiptSent {
		zlog.Logger.Info().Str("donation_id", task.DonationID).Msg("receipt already sent, skipping")
		return nil
	}
	if donation.DonorEmail == "" {
		return nil
	}

	if err := r.mail.SendDonationReceipt(donation); err != nil {
		zlog.Logger.Warn().Err(err).Str("donation_id", task.DonationID).Msg("failed to send receipt mail")
		return nil
	}

	if _, err := r.donations.Update(ctx, donation.ID, bson.M{"receiptSent": true}); err != nil {
		zlog.Logger.Error().Err(err).Str("donation_id", task.DonationID).Msg("failed to mark receipt as sent")
	}
	return nil
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
