package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeConnectionRequest  = "connection_request"
	TypeConnectionAccepted = "connection_accepted"
)

type CreateNotification struct {
	Recipient string    `json:"recipient" bson:"recipient"`
	Type      string    `json:"type" bson:"type"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Read      bool      `json:"read" bson:"read"`
}

type DBNotification struct {
	Id        primitive.ObjectID `json:"id" bson:"_id"`
	Recipient string             `json:"recipient" bson:"recipient"`
	Type      string             `json:"type" bson:"type"`
	Content   string             `json:"content" bson:"content"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Read      bool               `json:"read" bson:"read"`
}

type GetNotificationsRequest struct {
	UID   string `json:"uid"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type MarkReadRequest struct {
	UID string `json:"uid"`
	Id  string `json:"id"`
}

type ResponseNotifications struct {
	Notifications []*DBNotification `json:"notifications"`
}

type ResponseStatus struct {
	Status string `json:"status"`
}
