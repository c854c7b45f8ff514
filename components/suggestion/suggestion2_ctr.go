package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jalin/jsonrpc2"
	"jalin/utils"

	"github.com/redis/go-redis/v9"
)

// cacheTTL keeps suggestion results warm briefly. Mutations that change the
// exclusion set call InvalidateCache, so staleness never outlives a change.
const cacheTTL = 5 * time.Minute

func cacheKey(uid string) string {
	return "suggest:" + uid
}

// InvalidateCache drops cached suggestion results for the given users. A nil
// client means caching is off and this is a no-op.
func InvalidateCache(rdb *redis.Client, uids ...string) {
	if rdb == nil {
		return
	}

	keys := make([]string, 0, len(uids))
	for _, uid := range uids {
		keys = append(keys, cacheKey(uid))
	}

	if err := rdb.Del(context.Background(), keys...).Err(); err != nil {
		Logger.Error(err, "failed to invalidate suggestion cache")
	}
}

type SuggestionController struct {
	suggestionService I_SuggestionRepo
	rdb               *redis.Client
}

func NewSuggestionController(suggestionService I_SuggestionRepo, rdb *redis.Client) SuggestionController {
	return SuggestionController{suggestionService, rdb}
}

func (me *SuggestionController) fromCache(uid string) ([]*CandidateProfile, bool) {
	if me.rdb == nil {
		return nil, false
	}

	raw, err := me.rdb.Get(context.Background(), cacheKey(uid)).Result()
	if err != nil {
		if err != redis.Nil {
			Logger.Error(err, "failed to read suggestion cache")
		}
		return nil, false
	}

	var candidates []*CandidateProfile
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		Logger.Error(err, "failed to decode cached suggestions")
		return nil, false
	}

	return candidates, true
}

func (me *SuggestionController) toCache(uid string, candidates []*CandidateProfile) {
	if me.rdb == nil {
		return
	}

	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}

	if err := me.rdb.Set(context.Background(), cacheKey(uid), raw, cacheTTL).Err(); err != nil {
		Logger.Error(err, "failed to write suggestion cache")
	}
}

func (me *SuggestionController) FindCandidates(uid string) ([]*CandidateProfile, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("find candidates for %s", uid))

	if !utils.IsValidUid(uid) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "uid invalid"}, http.StatusOK
	}

	subject, err := me.suggestionService.FindUserById(uid)
	if err != nil {
		if strings.Contains(err.Error(), "exists") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	if cached, ok := me.fromCache(subject.UID); ok {
		return cached, nil, http.StatusOK
	}

	candidates, err := me.suggestionService.FindCandidates(subject)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	me.toCache(subject.UID, candidates)

	return candidates, nil, http.StatusOK
}
