package suggestion

import (
	"jalin/components/user"
)

// MaxCandidates bounds every suggestion result.
const MaxCandidates = 15

type FindCandidatesRequest struct {
	UID string `json:"uid"`
}

// CandidateProfile is the public projection of a suggested user. No contact
// or security fields leave the store.
type CandidateProfile struct {
	FirstName      string                `json:"firstName" bson:"firstName"`
	LastName       string                `json:"lastName" bson:"lastName"`
	ProfilePic     string                `json:"profilePic" bson:"profilePic"`
	Connections    int                   `json:"connections" bson:"connections"`
	Education      []user.Education      `json:"education" bson:"education"`
	WorkExperience []user.WorkExperience `json:"workExperience" bson:"workExperience"`
}
