package rabbitmq_client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"estatebackend/types"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var (
	Connection *amqp.Connection
	Channel    *amqp.Channel
	Queue      amqp.Queue
)

// GetEnv retrieves the environment variable with a default value if not set.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Connect dials RabbitMQ and declares the negotiation events queue. Call it
// once from main; the service runs without a broker if this fails.
func Connect() error {
	rabbitServer := GetEnv("RABBITMQ_SERVER", "localhost")
	rabbitPort := GetEnv("RABBITMQ_PORT", "5672")
	rabbitUser := GetEnv("RABBITMQ_USER", "guest")
	rabbitPass := GetEnv("RABBITMQ_PASS", "guest")

	newConn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s:%s/", rabbitUser, rabbitPass, rabbitServer, rabbitPort))
	if err != nil {
		return err
	}
	Connection = newConn

	ch, err := Connection.Channel()
	if err != nil {
		return err
	}
	Channel = ch

	queueName := GetEnv("RABBITMQ_QUEUE", "negotiation-events")
	q, err := ch.QueueDeclare(
		queueName, // Name of the queue
		true,      // Durable
		false,     // Delete when unused
		false,     // Exclusive
		false,     // No-wait
		nil,       // Arguments
	)
	if err != nil {
		return err
	}
	Queue = q

	zap.L().Info("Connected to RabbitMQ.")
	return nil
}

func Close() {
	if Channel != nil {
		Channel.Close()
	}
	if Connection != nil {
		Connection.Close()
	}
}

// SendMessage publishes a negotiation event onto the declared queue.
func SendMessage(event types.NegotiationEvent) error {
	if Channel == nil {
		return errors.New("rabbitmq channel is not connected")
	}

	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	zap.L().Sugar().Infof("Sending negotiation event to rabbitmq: %s", message)

	err = Channel.Publish(
		"",         // Exchange (empty means default)
		Queue.Name, // Routing key (queue name in this case)
		false,      // Mandatory
		false,      // Immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		})
	if err != nil {
		zap.L().Error("Error publishing negotiation event to rabbitmq: ", zap.Any("error", err.Error()))
		return err
	}
	return nil
}
