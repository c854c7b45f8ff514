package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status = string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// FriendRequest is an incoming request entry. Requests are appended to the
// receiver's friends array only, never to the sender's.
type FriendRequest struct {
	UID       string    `json:"userId" bson:"uid"`
	DateAdded time.Time `json:"dateAdded" bson:"dateAdded"`
	Status    Status    `json:"status" bson:"status"`
}

// Connection is one side of an established, symmetric relation. The peer
// document carries the mirrored entry.
type Connection struct {
	UID             string    `json:"userId" bson:"uid"`
	DateAdded       time.Time `json:"dateAdded" bson:"dateAdded"`
	IsFavorite      bool      `json:"isFavorite" bson:"isFavorite"`
	LastInteraction time.Time `json:"lastInteraction,omitempty" bson:"lastInteraction,omitempty"`
}

type Education struct {
	Degree      string `json:"degree" bson:"degree"`
	Institution string `json:"institution" bson:"institution"`
	From        string `json:"from" bson:"from"`
	To          string `json:"to" bson:"to"`
}

type WorkExperience struct {
	JobTitle string `json:"jobTitle" bson:"jobTitle"`
	Company  string `json:"company" bson:"company"`
	From     string `json:"from" bson:"from"`
	To       string `json:"to" bson:"to"`
}

type CreateUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
	DateOfBirth  string `json:"dateOfBirth"`
	Address      string `json:"address"`
	Gender       string `json:"gender"`
	ProfilePic   string `json:"profilePic"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GetUserRequest struct {
	UID string `json:"uid"`
}

type GetAllUsersRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type UpdateBioRequest struct {
	UID string `json:"uid"`
	Bio string `json:"bio"`
}

type UpdateAddressRequest struct {
	UID     string `json:"uid"`
	Address string `json:"address"`
}

type AddEducationRequest struct {
	UID         string `json:"uid"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type AddWorkExperienceRequest struct {
	UID      string `json:"uid"`
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type SetPictureRequest struct {
	UID      string `json:"uid"`
	FileName string `json:"fileName"`
}

type ResponseStatus struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

type ResponseBio struct {
	Bio string `json:"bio"`
}

type ResponseAddress struct {
	Address string `json:"address"`
}

type ResponseUser struct {
	UID         string `json:"uid"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	ProfilePic  string `json:"profilePic"`
	Gender      string `json:"gender"`
	Connections int    `json:"connections"`
	JWT         string `json:"jwt"`
}

type ResponseUserList struct {
	Users []*ResponseProfile `json:"users"`
}

// ResponseProfile is the full document view minus password and relation arrays.
type ResponseProfile struct {
	UID            string           `json:"uid"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Email          string           `json:"email"`
	ProfilePic     string           `json:"profilePic"`
	CoverPic       string           `json:"coverPic"`
	Bio            string           `json:"bio"`
	Address        string           `json:"address"`
	Gender         string           `json:"gender"`
	MobileNumber   string           `json:"mobileNumber"`
	DateOfBirth    string           `json:"dateOfBirth"`
	Connections    int              `json:"connections"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"workExperience"`
	CreatedAt      time.Time        `json:"created_at,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at,omitempty"`
}

type CreateUser struct {
	UID            string           `json:"uid" bson:"uid"`
	FirstName      string           `json:"firstName" bson:"firstName"`
	LastName       string           `json:"lastName" bson:"lastName"`
	Email          string           `json:"email" bson:"email"`
	Password       string           `json:"password" bson:"password"`
	ProfilePic     string           `json:"profilePic" bson:"profilePic"`
	CoverPic       string           `json:"coverPic" bson:"coverPic"`
	Bio            string           `json:"bio" bson:"bio"`
	Address        string           `json:"address" bson:"address"`
	Gender         string           `json:"gender" bson:"gender"`
	MobileNumber   string           `json:"mobileNumber" bson:"mobileNumber"`
	DateOfBirth    string           `json:"dateOfBirth" bson:"dateOfBirth"`
	Connections    int              `json:"connections" bson:"connections"`
	Friends        []FriendRequest  `json:"friends" bson:"friends"`
	ConnectionList []Connection     `json:"connectionList" bson:"connectionList"`
	Education      []Education      `json:"education" bson:"education"`
	WorkExperience []WorkExperience `json:"workExperience" bson:"workExperience"`
	CreatedAt      time.Time        `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type DBUser struct {
	Id             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UID            string             `json:"uid" bson:"uid"`
	FirstName      string             `json:"firstName" bson:"firstName"`
	LastName       string             `json:"lastName" bson:"lastName"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"password" bson:"password"`
	ProfilePic     string             `json:"profilePic" bson:"profilePic"`
	CoverPic       string             `json:"coverPic" bson:"coverPic"`
	Bio            string             `json:"bio" bson:"bio"`
	Address        string             `json:"address" bson:"address"`
	Gender         string             `json:"gender" bson:"gender"`
	MobileNumber   string             `json:"mobileNumber" bson:"mobileNumber"`
	DateOfBirth    string             `json:"dateOfBirth" bson:"dateOfBirth"`
	Connections    int                `json:"connections" bson:"connections"`
	Friends        []FriendRequest    `json:"friends" bson:"friends"`
	ConnectionList []Connection       `json:"connectionList" bson:"connectionList"`
	Education      []Education        `json:"education" bson:"education"`
	WorkExperience []WorkExperience   `json:"workExperience" bson:"workExperience"`
	CreatedAt      time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
