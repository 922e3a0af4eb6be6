package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/meetupaws/airport_boarding/flights/internal/model"
	"github.com/meetupaws/airport_boarding/internal"
	"github.com/rs/zerolog"
)

const emailSubject = "Flight boarding confirmation"

type Handler func(ctx context.Context, event events.SQSEvent) error

type Mailer interface {
	SendEmail(ctx context.Context, subject string, body string, from string, to []string, cc []string) error
}

var emailTemplate = `Hello %v!
You are on board of the %v flight with id %v.%v
`

func Adapter(mailer Mailer, senderEmail string, logger zerolog.Logger) Handler {
	return func(ctx context.Context, event events.SQSEvent) error {
		for _, record := range event.Records {
			msgBody := model.QueueMsgBoarding{}
			err := json.Unmarshal([]byte(record.Body), &msgBody)
			if err != nil {
				logger.Error().Err(err).Str("message_id", record.MessageId).Msg("unable to read boarding message")
				return err
			}

			err = mailer.SendEmail(
				ctx,
				emailSubject,
				EmailBody(msgBody),
				senderEmail,
				[]string{msgBody.Email},
				nil,
			)
			if err != nil {
				logger.Error().Err(err).Str("message_id", record.MessageId).Msg("unable to send boarding email")
				return err
			}
		}
		return nil
	}
}

func EmailBody(msg model.QueueMsgBoarding) string {
	vipNote := ""
	if msg.VIP {
		vipNote = " Enjoy the VIP lounge."
	}
	return fmt.Sprintf(emailTemplate, msg.PassengerName, msg.FlightClass, msg.FlightID, vipNote)
}

func main() {
	cfg := internal.MustLoadConfig("sender.email")
	logger := internal.NewLogger(cfg.Log.Level, cfg.Log.Pretty)
	session := session.New()
	mailer := internal.NewMailer(ses.New(session))
	lambda.Start(Adapter(mailer, cfg.Sender.Email, logger))
}
