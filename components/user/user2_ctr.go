package user

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"jalin/auth"
	"jalin/jsonrpc2"
	"jalin/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type UserController struct {
	userService I_UserRepo
}

func NewUserController(userService I_UserRepo) UserController {
	return UserController{userService}
}

// sortEducation puts ongoing entries ("Present") first, then past entries
// newest first. Date strings compare lexicographically (ISO-like input).
func sortEducation(education []Education) []Education {
	current := make([]Education, 0, len(education))
	past := make([]Education, 0, len(education))
	for _, edu := range education {
		if edu.To == "Present" {
			current = append(current, edu)
		} else {
			past = append(past, edu)
		}
	}

	sort.SliceStable(past, func(i, j int) bool {
		return past[i].From > past[j].From
	})

	return append(current, past...)
}

func sortWorkExperience(work []WorkExperience) []WorkExperience {
	current := make([]WorkExperience, 0, len(work))
	past := make([]WorkExperience, 0, len(work))
	for _, w := range work {
		if w.To == "Present" {
			current = append(current, w)
		} else {
			past = append(past, w)
		}
	}

	sort.SliceStable(past, func(i, j int) bool {
		return past[i].From > past[j].From
	})

	return append(current, past...)
}

func (me *UserController) Register(regUser *CreateUserRequest) (*ResponseUser, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("register %s", regUser.Email))

	errres := make([]*jsonrpc2.InputFieldError, 0, 4)

	_, err := utils.IsValidName(regUser.FirstName)
	if err != nil {
		errres = append(errres, &jsonrpc2.InputFieldError{Error: err.Error(), Field: "firstName"})
	}

	_, err = utils.IsValidName(regUser.LastName)
	if err != nil {
		errres = append(errres, &jsonrpc2.InputFieldError{Error: err.Error(), Field: "lastName"})
	}

	_, err = utils.IsValidPassword(regUser.Password)
	if err != nil {
		errres = append(errres, &jsonrpc2.InputFieldError{Error: err.Error(), Field: "password"})
	}

	regUser.Email = strings.ToLower(regUser.Email)
	ok := utils.IsValidEmail(regUser.Email)
	if !ok {
		errres = append(errres, &jsonrpc2.InputFieldError{Error: "email invalid", Field: "email"})
	} else {
		exist, _ := me.userService.FindUserByEmail(regUser.Email)
		if exist != nil {
			errres = append(errres, &jsonrpc2.InputFieldError{Error: "email unavailable", Field: "email"})
		}
	}

	if len(errres) > 0 {
		return nil, &jsonrpc2.RPCError{
			Code:    http.StatusBadRequest,
			Message: "invalid input",
			Params:  errres,
		}, http.StatusOK
	}

	password, _ := auth.GeneratePassword(regUser.Password)
	nu := &CreateUser{
		UID:            utils.GetRandomUUID(),
		FirstName:      regUser.FirstName,
		LastName:       regUser.LastName,
		Email:          regUser.Email,
		Password:       password,
		ProfilePic:     regUser.ProfilePic,
		Address:        regUser.Address,
		Gender:         regUser.Gender,
		MobileNumber:   regUser.MobileNumber,
		DateOfBirth:    regUser.DateOfBirth,
		Friends:        []FriendRequest{},
		ConnectionList: []Connection{},
		Education:      []Education{},
		WorkExperience: []WorkExperience{},
	}

	newUser, err := me.userService.CreateUser(nu)

	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusConflict, Message: err.Error()}, http.StatusOK
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	token, err := auth.CreateJWTToken(newUser.UID, newUser.Email)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	var resUser ResponseUser
	utils.CopyStruct(newUser, &resUser)
	resUser.JWT = token

	Logger.V(2).Info("register success")
	return &resUser, nil, http.StatusCreated
}

func (me *UserController) Login(login *Login) (*ResponseUser, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("login %s", login.Email))

	login.Email = strings.ToLower(login.Email)
	usr, err := me.userService.FindUserByEmail(login.Email)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "invalid credentials"}, http.StatusOK
	}

	if err := auth.ComparePassword(usr.Password, login.Password); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "invalid credentials"}, http.StatusOK
	}

	token, err := auth.CreateJWTToken(usr.UID, usr.Email)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	var resUser ResponseUser
	utils.CopyStruct(usr, &resUser)
	resUser.JWT = token

	Logger.V(2).Info("login success")
	return &resUser, nil, http.StatusOK
}

func (me *UserController) findUser(uid string) (*DBUser, *jsonrpc2.RPCError) {
	if ok := utils.IsValidUid(uid); !ok {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "uid invalid"}
	}

	usr, err := me.userService.FindUserById(uid)
	if err != nil {
		if strings.Contains(err.Error(), "exists") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}
	}

	return usr, nil
}

func (me *UserController) GetUser(uid string) (*ResponseProfile, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("get user %s", uid))

	usr, rpcErr := me.findUser(uid)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	var res ResponseProfile
	utils.CopyStruct(usr, &res)
	res.Education = sortEducation(usr.Education)
	res.WorkExperience = sortWorkExperience(usr.WorkExperience)

	return &res, nil, http.StatusOK
}

// GetAllUsers pages through every profile. Password and relation arrays never
// leave through the projection struct.
func (me *UserController) GetAllUsers(req *GetAllUsersRequest) (*ResponseUserList, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("get all users page %d limit %d", req.Page, req.Limit))

	users, err := me.userService.FindUsers(bson.M{}, req.Page, req.Limit)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	profiles := make([]*ResponseProfile, 0, len(users))
	for _, usr := range users {
		profile := &ResponseProfile{}
		utils.CopyStruct(usr, profile)
		profiles = append(profiles, profile)
	}

	return &ResponseUserList{Users: profiles}, nil, http.StatusOK
}

func (me *UserController) DeleteAccount(uid string) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("delete account %s", uid))

	usr, rpcErr := me.findUser(uid)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	if err := me.userService.DeleteUser(usr.Id); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &ResponseStatus{UID: usr.UID, Status: "account deleted"}, nil, http.StatusOK
}

func (me *UserController) GetBio(uid string) (*ResponseBio, *jsonrpc2.RPCError, int) {
	usr, rpcErr := me.findUser(uid)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	return &ResponseBio{Bio: usr.Bio}, nil, http.StatusOK
}

func (me *UserController) UpdateBio(req *UpdateBioRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	usr, rpcErr := me.findUser(req.UID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	usr.Bio = req.Bio
	if _, err := me.userService.UpdateUser(usr.Id, usr); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{UID: usr.UID, Status: "bio updated"}, nil, http.StatusOK
}

func (me *UserController) GetAddress(uid string) (*ResponseAddress, *jsonrpc2.RPCError, int) {
	usr, rpcErr := me.findUser(uid)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	return &ResponseAddress{Address: usr.Address}, nil, http.StatusOK
}

func (me *UserController) UpdateAddress(req *UpdateAddressRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	if req.Address == "" {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "address is required"}, http.StatusOK
	}

	usr, rpcErr := me.findUser(req.UID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	usr.Address = req.Address
	if _, err := me.userService.UpdateUser(usr.Id, usr); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{UID: usr.UID, Status: "address updated"}, nil, http.StatusOK
}

func (me *UserController) AddEducation(req *AddEducationRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	if req.Degree == "" || req.Institution == "" || req.From == "" || req.To == "" {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "all fields are required"}, http.StatusOK
	}

	usr, rpcErr := me.findUser(req.UID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	usr.Education = append(usr.Education, Education{
		Degree:      req.Degree,
		Institution: req.Institution,
		From:        req.From,
		To:          req.To,
	})

	if _, err := me.userService.UpdateUser(usr.Id, usr); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{UID: usr.UID, Status: "education added"}, nil, http.StatusOK
}

func (me *UserController) AddWorkExperience(req *AddWorkExperienceRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	if req.JobTitle == "" || req.Company == "" || req.From == "" || req.To == "" {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "all fields are required"}, http.StatusOK
	}

	usr, rpcErr := me.findUser(req.UID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	usr.WorkExperience = append(usr.WorkExperience, WorkExperience{
		JobTitle: req.JobTitle,
		Company:  req.Company,
		From:     req.From,
		To:       req.To,
	})

	if _, err := me.userService.UpdateUser(usr.Id, usr); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{UID: usr.UID, Status: "work experience added"}, nil, http.StatusOK
}

func (me *UserController) SetProfilePic(req *SetPictureRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	if req.FileName == "" {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "no image uploaded"}, http.StatusOK
	}

	usr, rpcErr := me.findUser(req.UID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	usr.ProfilePic = req.FileName
	if _, err := me.userService.UpdateUser(usr.Id, usr); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{UID: usr.UID, Status: "profile picture updated"}, nil, http.StatusOK
}

func (me *UserController) SetCoverPic(req *SetPictureRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	if req.FileName == "" {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "no image uploaded"}, http.StatusOK
	}

	usr, rpcErr := me.findUser(req.UID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	usr.CoverPic = req.FileName
	if _, err := me.userService.UpdateUser(usr.Id, usr); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{UID: usr.UID, Status: "cover picture updated"}, nil, http.StatusOK
}
