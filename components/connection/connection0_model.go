package connection

import (
	"time"

	"jalin/components/user"
)

type ConnectRequest struct {
	SenderUID   string `json:"senderId"`
	ReceiverUID string `json:"receiverId"`
}

type ActionRequest struct {
	ReceiverUID string `json:"receiverId"`
	SenderUID   string `json:"senderId"`
}

type GetListRequest struct {
	UID string `json:"uid"`
}

type ResponseMessage struct {
	Message string `json:"message"`
}

// PendingPeer is a pending request expanded to the sender's profile.
type PendingPeer struct {
	UID            string                `json:"uid" bson:"uid"`
	FirstName      string                `json:"firstName" bson:"firstName"`
	LastName       string                `json:"lastName" bson:"lastName"`
	Email          string                `json:"email" bson:"email"`
	ProfilePic     string                `json:"profilePic" bson:"profilePic"`
	Education      []user.Education      `json:"education" bson:"education"`
	WorkExperience []user.WorkExperience `json:"workExperience" bson:"workExperience"`
	Connections    int                   `json:"connections" bson:"connections"`
	DateAdded      time.Time             `json:"dateAdded" bson:"dateAdded"`
}

// ConnectionPeer is one established connection expanded to the peer's profile.
type ConnectionPeer struct {
	UID             string    `json:"userId" bson:"uid"`
	FullName        string    `json:"fullName" bson:"fullName"`
	ProfilePic      string    `json:"profilePic" bson:"profilePic"`
	DateAdded       time.Time `json:"dateAdded" bson:"dateAdded"`
	IsFavorite      bool      `json:"isFavorite" bson:"isFavorite"`
	LastInteraction time.Time `json:"lastInteraction,omitempty" bson:"lastInteraction,omitempty"`
}

type ResponsePendingList struct {
	Friends []*PendingPeer `json:"friends"`
}

type ResponseConnectionList struct {
	Connections []*ConnectionPeer `json:"connections"`
}
