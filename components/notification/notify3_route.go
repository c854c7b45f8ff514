package notification

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

type NotifRoute struct {
	notifController NotifController
	limiter         *ratelimit.Bucket
}

func NewNotifRoute(mongoclient *mongo.Client, database string, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket) NotifRoute {
	Logger = l
	Logger.V(2).Info("NewNotifRoute created")
	notifCollection := mongoclient.Database(database).Collection("notifications")
	notifService := NewNotifService(notifCollection, ctx)
	notifController := NewNotifController(notifService)
	return NotifRoute{notifController, limiter}
}

func (me *NotifRoute) GetNotifService() I_NotifRepo {
	return me.notifController.notifService
}

func (me *NotifRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/notification").Use(auth.AuthMiddleware())
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *NotifRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *NotifRoute) RPCHandle(ctx *gin.Context) {
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
	case "GetNotifications":
		statuscode = me.method_GetNotifications(ctx, &jreq, jres)
	case "MarkRead":
		statuscode = me.method_MarkRead(ctx, &jreq, jres)
	default:
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}

	if jres.Error != nil {
		Logger.Error(fmt.Errorf(jres.Error.Message), "response with error")
	}
	ctx.JSON(statuscode, jres)
}

func requireUser(ctx *gin.Context, uid string, jres *jsonrpc2.RPCResponse) int {
	vuser, ok := ctx.Get("validuser")
	if !ok {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "unauthorized"}
		return http.StatusUnauthorized
	}

	validuser := vuser.(*auth.Claims)
	if validuser.IsExpired() {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "session expired"}
		return http.StatusUnauthorized
	}

	if validuser.GetUID() != uid {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "ilegal jwt"}
		return http.StatusBadRequest
	}

	return http.StatusOK
}

func (me *NotifRoute) method_GetNotifications(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *GetNotificationsRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.notifController.GetNotifications(req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *NotifRoute) method_MarkRead(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *MarkReadRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.notifController.MarkRead(req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}
