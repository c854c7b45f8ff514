package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jalin/auth"
	"jalin/jsonrpc2"
	"jalin/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

var Logger logr.Logger = logr.Discard()

type UserRoute struct {
	userController UserController
	limiter        *ratelimit.Bucket
}

func NewUserRoute(mongoclient *mongo.Client, database string, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket) UserRoute {
	Logger = l
	Logger.V(2).Info("NewUserRoute created")
	userCollection := mongoclient.Database(database).Collection("users")
	userService := NewUserService(userCollection, ctx)
	userController := NewUserController(userService)
	return UserRoute{userController, limiter}
}

func (me *UserRoute) GetUserService() I_UserRepo {
	return me.userController.userService
}

func (me *UserRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/usr").Use(auth.AuthMiddleware())
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *UserRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *UserRoute) RPCHandle(ctx *gin.Context) {
	var jreq jsonrpc2.RPCRequest
	if err := ctx.ShouldBindJSON(&jreq); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "jsonrpc fail", "message": err.Error()})
		return
	}

	Logger.V(2).Info(fmt.Sprintf("RPCHandle %s", jreq.Method))

	jres := &jsonrpc2.RPCResponse{
		JSONRPC: "2.0",
		ID:      jreq.ID,
	}

	statuscode := http.StatusBadRequest
	switch jreq.Method {
	case "Register":
		statuscode = me.method_Register(ctx, &jreq, jres)
	case "Login":
		statuscode = me.method_Login(ctx, &jreq, jres)
	case "GetUser":
		statuscode = me.method_GetUser(ctx, &jreq, jres)
	case "GetAllUsers":
		statuscode = me.method_GetAllUsers(ctx, &jreq, jres)
	case "DeleteAccount":
		statuscode = me.method_DeleteAccount(ctx, &jreq, jres)
	case "GetBio":
		statuscode = me.method_GetBio(ctx, &jreq, jres)
	case "UpdateBio":
		statuscode = me.method_UpdateBio(ctx, &jreq, jres)
	case "GetAddress":
		statuscode = me.method_GetAddress(ctx, &jreq, jres)
	case "UpdateAddress":
		statuscode = me.method_UpdateAddress(ctx, &jreq, jres)
	case "AddEducation":
		statuscode = me.method_AddEducation(ctx, &jreq, jres)
	case "AddWorkExperience":
		statuscode = me.method_AddWorkExperience(ctx, &jreq, jres)
	case "SetProfilePic":
		statuscode = me.method_SetProfilePic(ctx, &jreq, jres)
	case "SetCoverPic":
		statuscode = me.method_SetCoverPic(ctx, &jreq, jres)
	default:
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}

	if jres.Error != nil {
		Logger.Error(fmt.Errorf(jres.Error.Message), "response with error")
	}
	ctx.JSON(statuscode, jres)
}

// requireOwner rejects calls where the token owner differs from the target uid.
func requireOwner(ctx *gin.Context, uid string, jres *jsonrpc2.RPCResponse) (*auth.Claims, int) {
	vuser, ok := ctx.Get("validuser")
	if !ok {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "unauthorized"}
		return nil, http.StatusUnauthorized
	}

	validuser := vuser.(*auth.Claims)
	if validuser.IsExpired() {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "session expired"}
		return nil, http.StatusUnauthorized
	}

	if validuser.GetUID() != uid {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "ilegal jwt"}
		return nil, http.StatusBadRequest
	}

	return validuser, http.StatusOK
}

func (me *UserRoute) method_Register(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *CreateUserRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.userController.Register(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_Login(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var login *Login
	err := json.Unmarshal(jreq.Params, &login)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.userController.Login(login)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_GetUser(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	if _, ok := ctx.Get("validuser"); !ok {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "unauthorized"}
		return http.StatusUnauthorized
	}

	var reg *GetUserRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.userController.GetUser(reg.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_GetAllUsers(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	if _, ok := ctx.Get("validuser"); !ok {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "unauthorized"}
		return http.StatusUnauthorized
	}

	var reg *GetAllUsersRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.userController.GetAllUsers(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_DeleteAccount(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *GetUserRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.DeleteAccount(reg.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_GetBio(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *GetUserRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.userController.GetBio(reg.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_UpdateBio(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *UpdateBioRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.UpdateBio(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_GetAddress(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *GetUserRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.userController.GetAddress(reg.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_UpdateAddress(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *UpdateAddressRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.UpdateAddress(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_AddEducation(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *AddEducationRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.AddEducation(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_AddWorkExperience(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *AddWorkExperienceRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.AddWorkExperience(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_SetProfilePic(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *SetPictureRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.SetProfilePic(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *UserRoute) method_SetCoverPic(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var reg *SetPictureRequest
	err := json.Unmarshal(jreq.Params, &reg)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if _, code := requireOwner(ctx, reg.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.userController.SetCoverPic(reg)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}
