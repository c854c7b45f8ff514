package suggestion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"jalin/components/user"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'suggestion'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'suggestion'")
}

const uidSubject = "44444444-4444-4444-8444-444444444444"

type fakeUserRepo struct {
	users map[string]*user.DBUser
}

func (me *fakeUserRepo) GetCollection() *mongo.Collection { return nil }

func (me *fakeUserRepo) CreateUser(u *user.CreateUser) (*user.DBUser, error) {
	return nil, errors.New("not implemented")
}

func (me *fakeUserRepo) UpdateUser(obId primitive.ObjectID, u *user.DBUser) (*user.DBUser, error) {
	return u, nil
}

func (me *fakeUserRepo) FindUserById(uid string) (*user.DBUser, error) {
	usr, ok := me.users[uid]
	if !ok {
		return nil, errors.New("no document with that UID exists")
	}
	return usr, nil
}

func (me *fakeUserRepo) FindUserByEmail(email string) (*user.DBUser, error) {
	return nil, errors.New("user email unavailable")
}

func (me *fakeUserRepo) FindUsers(query primitive.M, page int, limit int) ([]*user.DBUser, error) {
	return []*user.DBUser{}, nil
}

func (me *fakeUserRepo) DeleteUser(obId primitive.ObjectID) error { return nil }

func Test_ExcludedUids(t *testing.T) {
	asserts := assert.New(t)

	subject := &user.DBUser{
		UID: uidSubject,
		Friends: []user.FriendRequest{
			{UID: "friend-pending", Status: user.StatusPending},
			{UID: "friend-rejected", Status: user.StatusRejected},
		},
		ConnectionList: []user.Connection{
			{UID: "peer-1"},
		},
	}

	exclude := excludedUids(subject)
	asserts.Len(exclude, 4)
	asserts.Contains(exclude, uidSubject)
	asserts.Contains(exclude, "friend-pending")
	asserts.Contains(exclude, "friend-rejected")
	asserts.Contains(exclude, "peer-1")
}

func Test_SignalClauses(t *testing.T) {
	asserts := assert.New(t)

	subject := &user.DBUser{
		UID:     uidSubject,
		Bio:     "Hiking enthusiast and coffee lover",
		Address: "Jakarta Selatan",
		Education: []user.Education{
			{Degree: "BSc", Institution: "ITB"},
			{Degree: "MSc", Institution: "UGM"},
		},
	}

	clauses := signalClauses(subject)
	asserts.Len(clauses, 3)

	bio := clauses[0]["bio"].(bson.M)
	asserts.Equal("hiking", bio["$regex"])
	asserts.Equal("i", bio["$options"])

	address := clauses[1]["address"].(bson.M)
	asserts.Equal("jakarta", address["$regex"])

	institutions := clauses[2]["education.institution"].(bson.M)
	asserts.Equal([]string{"ITB", "UGM"}, institutions["$in"])
}

func Test_SignalClausesSkipEmpty(t *testing.T) {
	asserts := assert.New(t)

	// blank bio and no education leave only the address clause
	subject := &user.DBUser{
		UID:     uidSubject,
		Bio:     "   ",
		Address: "Bandung",
	}

	clauses := signalClauses(subject)
	asserts.Len(clauses, 1)
	asserts.Contains(clauses[0], "address")

	// regex metacharacters in the token are escaped
	subject.Address = "C++ street"
	clauses = signalClauses(subject)
	address := clauses[0]["address"].(bson.M)
	asserts.Equal(`c\+\+`, address["$regex"])
}

func Test_CandidateQuery(t *testing.T) {
	asserts := assert.New(t)

	subject := &user.DBUser{
		UID: uidSubject,
		Bio: "Hiking enthusiast",
		ConnectionList: []user.Connection{
			{UID: "peer-1"},
		},
	}

	clauses := signalClauses(subject)
	query := candidateQuery(subject, clauses)

	nin := query["uid"].(bson.M)["$nin"].([]string)
	asserts.Contains(nin, uidSubject)
	asserts.Contains(nin, "peer-1")

	asserts.Contains(query, "bio")
	asserts.Equal(bson.M{"$exists": true}, query["education.0"])
	asserts.Equal(bson.M{"$exists": true}, query["workExperience.0"])
	asserts.Equal(clauses, query["$or"])
}

func Test_FindCandidatesNoSignals(t *testing.T) {
	asserts := assert.New(t)

	repo := &fakeUserRepo{users: map[string]*user.DBUser{}}
	service := NewSuggestionService(repo, context.TODO())

	// no bio, no address, no education: the store is never queried
	candidates, err := service.FindCandidates(&user.DBUser{UID: uidSubject})
	asserts.Nil(err)
	asserts.NotNil(candidates)
	asserts.Len(candidates, 0)
}

func Test_ControllerFindCandidates(t *testing.T) {
	asserts := assert.New(t)

	subject := &user.DBUser{UID: uidSubject}
	repo := &fakeUserRepo{users: map[string]*user.DBUser{uidSubject: subject}}
	service := NewSuggestionService(repo, context.TODO())
	ctr := NewSuggestionController(service, nil)

	_, rpcErr, _ := ctr.FindCandidates("not-a-uuid")
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)

	_, rpcErr, _ = ctr.FindCandidates("99999999-9999-4999-8999-999999999999")
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusNotFound, rpcErr.Code)

	// subject without signals gets an empty result, not an error
	candidates, rpcErr, code := ctr.FindCandidates(uidSubject)
	asserts.Nil(rpcErr)
	asserts.Equal(http.StatusOK, code)
	asserts.Len(candidates, 0)
}
