package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jalin/auth"
	"jalin/components/user"
	"jalin/jsonrpc2"
	"jalin/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"github.com/redis/go-redis/v9"
)

var Logger logr.Logger = logr.Discard()

type SuggestionRoute struct {
	suggestionController SuggestionController
	limiter              *ratelimit.Bucket
}

func NewSuggestionRoute(userService user.I_UserRepo, rdb *redis.Client, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket) SuggestionRoute {
	Logger = l
	Logger.V(2).Info("NewSuggestionRoute created")
	suggestionService := NewSuggestionService(userService, ctx)
	suggestionController := NewSuggestionController(suggestionService, rdb)
	return SuggestionRoute{suggestionController, limiter}
}

func (me *SuggestionRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/suggestion").Use(auth.AuthMiddleware())
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *SuggestionRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *SuggestionRoute) RPCHandle(ctx *gin.Context) {
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
	case "FindCandidates":
		statuscode = me.method_FindCandidates(ctx, &jreq, jres)
	default:
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}

	if jres.Error != nil {
		Logger.Error(fmt.Errorf(jres.Error.Message), "response with error")
	}
	ctx.JSON(statuscode, jres)
}

func (me *SuggestionRoute) method_FindCandidates(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	var req *FindCandidatesRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

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

	if validuser.GetUID() != req.UID {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "ilegal jwt"}
		return http.StatusBadRequest
	}

	res, e, code := me.suggestionController.FindCandidates(req.UID)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}
