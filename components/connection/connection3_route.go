package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jalin/auth"
	"jalin/components/notification"
	"jalin/components/user"
	"jalin/jsonrpc2"
	"jalin/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"github.com/redis/go-redis/v9"
)

var Logger logr.Logger = logr.Discard()

type ConnectionRoute struct {
	connectionController ConnectionController
	limiter              *ratelimit.Bucket
}

func NewConnectionRoute(userService user.I_UserRepo, notifService notification.I_NotifRepo, rdb *redis.Client, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket) ConnectionRoute {
	Logger = l
	Logger.V(2).Info("NewConnectionRoute created")
	connectionService := NewConnectionService(userService, ctx)
	connectionController := NewConnectionController(connectionService, notifService, rdb)
	return ConnectionRoute{connectionController, limiter}
}

func (me *ConnectionRoute) GetConnectionService() I_ConnectionRepo {
	return me.connectionController.connectionService
}

func (me *ConnectionRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/connection").Use(auth.AuthMiddleware())
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *ConnectionRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *ConnectionRoute) RPCHandle(ctx *gin.Context) {
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
	case "SendRequest":
		statuscode = me.method_SendRequest(ctx, &jreq, jres)
	case "AcceptRequest":
		statuscode = me.method_AcceptRequest(ctx, &jreq, jres)
	case "DeclineRequest":
		statuscode = me.method_DeclineRequest(ctx, &jreq, jres)
	case "PendingList":
		statuscode = me.method_PendingList(ctx, &jreq, jres)
	case "ConnectionList":
		statuscode = me.method_ConnectionList(ctx, &jreq, jres)
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

func (me *ConnectionRoute) method_SendRequest(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *ConnectRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.SenderUID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.connectionController.SendRequest(req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *ConnectionRoute) method_AcceptRequest(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *ActionRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.ReceiverUID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.connectionController.AcceptRequest(req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *ConnectionRoute) method_DeclineRequest(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *ActionRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.ReceiverUID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.connectionController.DeclineRequest(req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *ConnectionRoute) method_PendingList(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *GetListRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.connectionController.PendingList(req.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *ConnectionRoute) method_ConnectionList(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *GetListRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	if code := requireUser(ctx, req.UID, jres); code != http.StatusOK {
		return code
	}

	res, e, code := me.connectionController.ConnectionList(req.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}
