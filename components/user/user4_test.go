package user

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'user'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'user'")
}

type fakeUserRepo struct {
	users map[string]*DBUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*DBUser)}
}

func (me *fakeUserRepo) GetCollection() *mongo.Collection {
	return nil
}

func (me *fakeUserRepo) CreateUser(user *CreateUser) (*DBUser, error) {
	for _, usr := range me.users {
		if usr.Email == user.Email {
			return nil, errors.New("email already exists")
		}
	}

	newUser := &DBUser{
		Id:             primitive.NewObjectID(),
		UID:            user.UID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Password:       user.Password,
		ProfilePic:     user.ProfilePic,
		Address:        user.Address,
		Gender:         user.Gender,
		MobileNumber:   user.MobileNumber,
		DateOfBirth:    user.DateOfBirth,
		Friends:        user.Friends,
		ConnectionList: user.ConnectionList,
		Education:      user.Education,
		WorkExperience: user.WorkExperience,
	}
	me.users[newUser.UID] = newUser
	return newUser, nil
}

func (me *fakeUserRepo) UpdateUser(obId primitive.ObjectID, user *DBUser) (*DBUser, error) {
	if _, ok := me.users[user.UID]; !ok {
		return nil, errors.New("no user with that Id exists")
	}
	me.users[user.UID] = user
	return user, nil
}

func (me *fakeUserRepo) FindUserById(uid string) (*DBUser, error) {
	usr, ok := me.users[uid]
	if !ok {
		return nil, errors.New("no document with that UID exists")
	}
	return usr, nil
}

func (me *fakeUserRepo) FindUserByEmail(email string) (*DBUser, error) {
	for _, usr := range me.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return nil, errors.New("user email unavailable")
}

func (me *fakeUserRepo) FindUsers(query primitive.M, page int, limit int) ([]*DBUser, error) {
	users := make([]*DBUser, 0, len(me.users))
	for _, usr := range me.users {
		users = append(users, usr)
	}
	return users, nil
}

func (me *fakeUserRepo) DeleteUser(obId primitive.ObjectID) error {
	for uid, usr := range me.users {
		if usr.Id == obId {
			delete(me.users, uid)
			return nil
		}
	}
	return errors.New("no user with that Id exists")
}

func Test_SortEducation(t *testing.T) {
	asserts := assert.New(t)

	education := []Education{
		{Degree: "BSc", Institution: "ITB", From: "2010", To: "2014"},
		{Degree: "PhD", Institution: "UI", From: "2020", To: "Present"},
		{Degree: "MSc", Institution: "UGM", From: "2016", To: "2018"},
	}

	sorted := sortEducation(education)
	asserts.Equal("PhD", sorted[0].Degree)
	asserts.Equal("MSc", sorted[1].Degree)
	asserts.Equal("BSc", sorted[2].Degree)
}

func Test_SortWorkExperience(t *testing.T) {
	asserts := assert.New(t)

	work := []WorkExperience{
		{JobTitle: "Junior Dev", Company: "A", From: "2014", To: "2016"},
		{JobTitle: "Senior Dev", Company: "C", From: "2019", To: "Present"},
		{JobTitle: "Dev", Company: "B", From: "2016", To: "2019"},
	}

	sorted := sortWorkExperience(work)
	asserts.Equal("Senior Dev", sorted[0].JobTitle)
	asserts.Equal("Dev", sorted[1].JobTitle)
	asserts.Equal("Junior Dev", sorted[2].JobTitle)
}

func Test_RegisterValidation(t *testing.T) {
	asserts := assert.New(t)
	ctr := NewUserController(newFakeUserRepo())

	res, rpcErr, _ := ctr.Register(&CreateUserRequest{
		FirstName: "",
		LastName:  "Wibisono",
		Email:     "not-an-email",
		Password:  "pass",
	})

	asserts.Nil(res)
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)
	asserts.Equal("invalid input", rpcErr.Message)

	fields := make([]string, 0, len(rpcErr.Params))
	for _, p := range rpcErr.Params {
		fields = append(fields, p.Field)
	}
	asserts.Contains(fields, "firstName")
	asserts.Contains(fields, "password")
	asserts.Contains(fields, "email")
}

func Test_RegisterAndLogin(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeUserRepo()
	ctr := NewUserController(repo)

	res, rpcErr, code := ctr.Register(&CreateUserRequest{
		FirstName: "Royyan",
		LastName:  "Wibisono",
		Email:     "Royyan@Mail.com",
		Password:  "secret123",
	})

	asserts.Nil(rpcErr)
	asserts.Equal(http.StatusCreated, code)
	asserts.NotNil(res)
	asserts.NotEmpty(res.UID)
	asserts.NotEmpty(res.JWT)
	// emails are stored lower-cased
	asserts.Equal("royyan@mail.com", res.Email)

	stored := repo.users[res.UID]
	asserts.NotNil(stored)
	asserts.NotEqual("secret123", stored.Password)
	asserts.NotNil(stored.Friends)
	asserts.NotNil(stored.ConnectionList)

	// duplicate email is rejected up front
	_, rpcErr, _ = ctr.Register(&CreateUserRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "royyan@mail.com",
		Password:  "secret123",
	})
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)

	login, rpcErr, _ := ctr.Login(&Login{Email: "royyan@mail.com", Password: "secret123"})
	asserts.Nil(rpcErr)
	asserts.NotEmpty(login.JWT)

	_, rpcErr, _ = ctr.Login(&Login{Email: "royyan@mail.com", Password: "wrongpass"})
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)
	asserts.Equal("invalid credentials", rpcErr.Message)
}

func Test_GetUserNotFound(t *testing.T) {
	asserts := assert.New(t)
	ctr := NewUserController(newFakeUserRepo())

	_, rpcErr, _ := ctr.GetUser("not-a-uuid")
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)

	_, rpcErr, _ = ctr.GetUser("267f591c-3de1-4dec-819a-00fe801de8ed")
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusNotFound, rpcErr.Code)
}

func Test_GetAllUsers(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeUserRepo()
	ctr := NewUserController(repo)

	_, _, _ = ctr.Register(&CreateUserRequest{
		FirstName: "Alice", LastName: "A", Email: "alice@mail.com", Password: "secret123",
	})
	_, _, _ = ctr.Register(&CreateUserRequest{
		FirstName: "Bob", LastName: "B", Email: "bob@mail.com", Password: "secret123",
	})

	res, rpcErr, code := ctr.GetAllUsers(&GetAllUsersRequest{Page: 1, Limit: 10})
	asserts.Nil(rpcErr)
	asserts.Equal(http.StatusOK, code)
	asserts.Len(res.Users, 2)

	// the projection carries no password field at all
	for _, profile := range res.Users {
		asserts.NotEmpty(profile.UID)
		asserts.NotEmpty(profile.Email)
	}
}

func Test_DeleteAccount(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeUserRepo()
	ctr := NewUserController(repo)

	res, _, _ := ctr.Register(&CreateUserRequest{
		FirstName: "Ephemeral", LastName: "User", Email: "gone@mail.com", Password: "secret123",
	})

	status, rpcErr, _ := ctr.DeleteAccount(res.UID)
	asserts.Nil(rpcErr)
	asserts.Equal("account deleted", status.Status)
	asserts.NotContains(repo.users, res.UID)

	// deleting again reports not found
	_, rpcErr, _ = ctr.DeleteAccount(res.UID)
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusNotFound, rpcErr.Code)
}

func Test_UpdateBioAndAddress(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeUserRepo()
	ctr := NewUserController(repo)

	res, _, _ := ctr.Register(&CreateUserRequest{
		FirstName: "Ujang",
		LastName:  "Geboy",
		Email:     "ujang@mail.com",
		Password:  "secret123",
	})

	status, rpcErr, _ := ctr.UpdateBio(&UpdateBioRequest{UID: res.UID, Bio: "Hiking enthusiast"})
	asserts.Nil(rpcErr)
	asserts.Equal("bio updated", status.Status)

	bio, rpcErr, _ := ctr.GetBio(res.UID)
	asserts.Nil(rpcErr)
	asserts.Equal("Hiking enthusiast", bio.Bio)

	_, rpcErr, _ = ctr.UpdateAddress(&UpdateAddressRequest{UID: res.UID, Address: ""})
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)

	_, rpcErr, _ = ctr.UpdateAddress(&UpdateAddressRequest{UID: res.UID, Address: "Jakarta Selatan"})
	asserts.Nil(rpcErr)

	address, rpcErr, _ := ctr.GetAddress(res.UID)
	asserts.Nil(rpcErr)
	asserts.Equal("Jakarta Selatan", address.Address)
}

func Test_AddEducationAndWork(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeUserRepo()
	ctr := NewUserController(repo)

	res, _, _ := ctr.Register(&CreateUserRequest{
		FirstName: "Ojan",
		LastName:  "Delman",
		Email:     "ojan@mail.com",
		Password:  "secret123",
	})

	_, rpcErr, _ := ctr.AddEducation(&AddEducationRequest{UID: res.UID, Degree: "BSc", Institution: "", From: "2010", To: "2014"})
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)

	_, rpcErr, _ = ctr.AddEducation(&AddEducationRequest{UID: res.UID, Degree: "BSc", Institution: "ITB", From: "2010", To: "2014"})
	asserts.Nil(rpcErr)

	_, rpcErr, _ = ctr.AddWorkExperience(&AddWorkExperienceRequest{UID: res.UID, JobTitle: "Dev", Company: "Acme", From: "2014", To: "Present"})
	asserts.Nil(rpcErr)

	profile, rpcErr, _ := ctr.GetUser(res.UID)
	asserts.Nil(rpcErr)
	asserts.Len(profile.Education, 1)
	asserts.Len(profile.WorkExperience, 1)
	asserts.Equal("ITB", profile.Education[0].Institution)
}
