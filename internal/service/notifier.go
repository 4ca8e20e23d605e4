package service

import (
	"context"
	"time"

	"social-service/internal/adapters/kafka"
)

// EmailJob is handed to the downstream mailer worker over Kafka.
type EmailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	Link     string `json:"link"`
}

// Event is a fan-out notification (likes, profile views, friend requests).
type Event struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actorId"`
	SubjectID string    `json:"subjectId"`
	At        time.Time `json:"at"`
}

const (
	EventPostLiked       = "post.liked"
	EventProfileViewed   = "profile.viewed"
	EventFriendRequested = "friend.requested"
	EventFriendAccepted  = "friend.accepted"
)

// Notifier publishes outbound email jobs and notification events. Delivery
// is the consumer's problem; publishing failures on fire-and-forget paths
// are logged by callers, not surfaced.
type Notifier interface {
	SendEmail(ctx context.Context, job EmailJob) error
	PublishEvent(ctx context.Context, ev Event) error
}

type kafkaNotifier struct {
	producer   *kafka.Producer
	emailTopic string
	eventTopic string
}

func NewKafkaNotifier(producer *kafka.Producer, emailTopic, eventTopic string) Notifier {
	return &kafkaNotifier{
		producer:   producer,
		emailTopic: emailTopic,
		eventTopic: eventTopic,
	}
}

func (n *kafkaNotifier) SendEmail(_ context.Context, job EmailJob) error {
	return n.producer.PublishJSON(n.emailTopic, job.To, job)
}

func (n *kafkaNotifier) PublishEvent(_ context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	return n.producer.PublishJSON(n.eventTopic, ev.SubjectID, ev)
}
