package suggestion

import (
	"context"
	"regexp"

	"jalin/components/user"
	"jalin/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type I_SuggestionRepo interface {
	user.I_UserRepo
	FindCandidates(subject *user.DBUser) ([]*CandidateProfile, error)
}

type SuggestionService struct {
	user.I_UserRepo
	ctx context.Context
}

func NewSuggestionService(userService user.I_UserRepo, ctx context.Context) I_SuggestionRepo {
	return &SuggestionService{userService, ctx}
}

// excludedUids is everyone the subject already relates to: requests of any
// status, established connections, and the subject itself.
func excludedUids(subject *user.DBUser) []string {
	exclude := make([]string, 0, len(subject.Friends)+len(subject.ConnectionList)+1)
	exclude = append(exclude, subject.UID)
	for _, entry := range subject.Friends {
		exclude = append(exclude, entry.UID)
	}
	for _, entry := range subject.ConnectionList {
		exclude = append(exclude, entry.UID)
	}
	return exclude
}

// signalClauses builds one clause per non-degenerate similarity signal. An
// absent bio or address yields an empty token, which would substring-match
// every candidate, so empty tokens contribute no clause at all.
func signalClauses(subject *user.DBUser) []bson.M {
	clauses := make([]bson.M, 0, 3)

	if token := utils.FirstToken(subject.Bio); token != "" {
		clauses = append(clauses, bson.M{"bio": bson.M{"$regex": regexp.QuoteMeta(token), "$options": "i"}})
	}

	if token := utils.FirstToken(subject.Address); token != "" {
		clauses = append(clauses, bson.M{"address": bson.M{"$regex": regexp.QuoteMeta(token), "$options": "i"}})
	}

	institutions := make([]string, 0, len(subject.Education))
	for _, edu := range subject.Education {
		institutions = append(institutions, edu.Institution)
	}
	if len(institutions) > 0 {
		clauses = append(clauses, bson.M{"education.institution": bson.M{"$in": institutions}})
	}

	return clauses
}

func candidateQuery(subject *user.DBUser, clauses []bson.M) bson.M {
	return bson.M{
		"uid":              bson.M{"$nin": excludedUids(subject)},
		"bio":              bson.M{"$nin": []interface{}{nil, ""}},
		"education.0":      bson.M{"$exists": true},
		"workExperience.0": bson.M{"$exists": true},
		"$or":              clauses,
	}
}

func (me *SuggestionService) FindCandidates(subject *user.DBUser) ([]*CandidateProfile, error) {
	clauses := signalClauses(subject)
	if len(clauses) == 0 {
		// Subject carries no similarity signal at all.
		return []*CandidateProfile{}, nil
	}

	opt := options.Find()
	opt.SetLimit(int64(MaxCandidates))
	opt.SetProjection(bson.M{
		"_id":            0,
		"firstName":      1,
		"lastName":       1,
		"profilePic":     1,
		"connections":    1,
		"education":      1,
		"workExperience": 1,
	})

	cursor, err := me.GetCollection().Find(me.ctx, candidateQuery(subject, clauses), opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var candidates []*CandidateProfile
	for cursor.Next(me.ctx) {
		candidate := &CandidateProfile{}
		err := cursor.Decode(candidate)

		if err != nil {
			return nil, err
		}

		candidates = append(candidates, candidate)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return []*CandidateProfile{}, nil
	}

	return candidates, nil
}
