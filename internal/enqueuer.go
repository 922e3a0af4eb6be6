package internal

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

const enqueueDelaySeconds = 10

type Enqueuer struct {
	client sqsiface.SQSAPI
}

func (e *Enqueuer) SendMsg(ctx context.Context, msg interface{}, queue string) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	queueURL, err := e.client.GetQueueUrlWithContext(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		return err
	}

	_, err = e.client.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		DelaySeconds: aws.Int64(enqueueDelaySeconds),
		MessageBody:  aws.String(string(msgBytes)),
		QueueUrl:     queueURL.QueueUrl,
	})
	if err != nil {
		return err
	}

	return nil
}

func NewEnqueuer(client sqsiface.SQSAPI) *Enqueuer {
	return &Enqueuer{
		client: client,
	}
}
