package iot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/config"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/metrics"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

// SQSConsumer long-polls the sensor event queue and feeds space status
// updates into the facility service. Failed messages are left on the queue
// and reappear after the visibility timeout.
type SQSConsumer struct {
	sqsClient       *sqs.Client
	queueURL        string
	facilityService *service.FacilityService
	log             *zap.Logger
}

func NewSQSConsumer(client *sqs.Client, cfg *config.Config, facilityService *service.FacilityService, log *zap.Logger) *SQSConsumer {
	return &SQSConsumer{
		sqsClient:       client,
		queueURL:        cfg.SQSEventQueueURL,
		facilityService: facilityService,
		log:             log,
	}
}

func (c *SQSConsumer) Start(ctx context.Context) {
	c.log.Info("sqs consumer listening", zap.String("queue_url", c.queueURL))
	for {
		select {
		case <-ctx.Done():
			c.log.Info("sqs consumer: context cancelled, stopping")
			return
		default:
			receiveInput := &sqs.ReceiveMessageInput{
				QueueUrl:            &c.queueURL,
				MaxNumberOfMessages: 10,
				WaitTimeSeconds:     20,
				VisibilityTimeout:   60,
			}

			result, err := c.sqsClient.ReceiveMessage(ctx, receiveInput)
			if err != nil {
				c.log.Error("sqs consumer: receive failed", zap.Error(err))
				select {
				case <-time.After(5 * time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, message := range result.Messages {
				if message.Body == nil {
					c.log.Warn("sqs consumer: empty message body, deleting")
					c.deleteMessage(ctx, message.ReceiptHandle)
					continue
				}

				if err := c.handleMessage(ctx, *message.Body); err != nil {
					metrics.SensorEventsTotal.WithLabelValues("error").Inc()
					c.log.Error("sqs consumer: message processing failed, will retry after visibility timeout",
						zap.Stringp("message_id", message.MessageId), zap.Error(err))
					continue
				}
				c.deleteMessage(ctx, message.ReceiptHandle)
			}
		}
	}
}

func (c *SQSConsumer) handleMessage(ctx context.Context, body string) error {
	var event domain.SpaceSensorEvent
	if err := json.Unmarshal([]byte(body), &event); err != nil {
		// malformed payloads are logged and dropped, redelivery cannot fix them
		metrics.SensorEventsTotal.WithLabelValues("malformed").Inc()
		c.log.Warn("sqs consumer: malformed sensor event", zap.Error(err))
		return nil
	}

	if err := c.facilityService.ApplySensorEvent(ctx, event); err != nil {
		return err
	}
	metrics.SensorEventsTotal.WithLabelValues("applied").Inc()
	return nil
}

func (c *SQSConsumer) deleteMessage(ctx context.Context, receiptHandle *string) {
	if receiptHandle == nil {
		return
	}
	_, err := c.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &c.queueURL,
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		c.log.Error("sqs consumer: delete failed", zap.Error(err))
	}
}
