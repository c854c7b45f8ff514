package connection

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"jalin/components/notification"
	"jalin/components/suggestion"
	"jalin/components/user"
	"jalin/jsonrpc2"
	"jalin/utils"

	"github.com/redis/go-redis/v9"
)

type ConnectionController struct {
	connectionService I_ConnectionRepo
	notifService      notification.I_NotifRepo
	rdb               *redis.Client
}

func NewConnectionController(connectionService I_ConnectionRepo, notifService notification.I_NotifRepo, rdb *redis.Client) ConnectionController {
	return ConnectionController{connectionService, notifService, rdb}
}

func (me *ConnectionController) loadUser(uid string) (*user.DBUser, *jsonrpc2.RPCError) {
	usr, err := me.connectionService.FindUserById(uid)
	if err != nil {
		if strings.Contains(err.Error(), "exists") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}
	}
	return usr, nil
}

func (me *ConnectionController) notify(recipient, notifType, content string) {
	if me.notifService == nil {
		return
	}

	_, err := me.notifService.AddNotif(&notification.CreateNotification{
		Recipient: recipient,
		Type:      notifType,
		Content:   content,
		Timestamp: time.Now(),
	})
	if err != nil {
		Logger.Error(err, "failed to store notification")
	}
}

func (me *ConnectionController) SendRequest(req *ConnectRequest) (*ResponseMessage, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("connection request %s -> %s", req.SenderUID, req.ReceiverUID))

	if !utils.IsValidUid(req.SenderUID) || !utils.IsValidUid(req.ReceiverUID) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "sender and receiver ids are required"}, http.StatusOK
	}

	if req.SenderUID == req.ReceiverUID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "can not send a request to yourself"}, http.StatusOK
	}

	sender, rpcErr := me.loadUser(req.SenderUID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	receiver, rpcErr := me.loadUser(req.ReceiverUID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	// Any prior entry blocks, whatever its status. A declined request
	// therefore stays declined, the sender can not ask again.
	for _, entry := range receiver.Friends {
		if entry.UID == sender.UID {
			return nil, &jsonrpc2.RPCError{Code: http.StatusConflict, Message: "request already sent or exists"}, http.StatusOK
		}
	}

	entry := &user.FriendRequest{
		UID:       sender.UID,
		Status:    user.StatusPending,
		DateAdded: time.Now(),
	}

	if err := me.connectionService.AppendFriendRequest(receiver.UID, entry); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	me.notify(receiver.UID, notification.TypeConnectionRequest,
		fmt.Sprintf("%s %s sent you a connection request", sender.FirstName, sender.LastName))
	suggestion.InvalidateCache(me.rdb, receiver.UID)

	Logger.V(2).Info("connection request sent")
	return &ResponseMessage{Message: "connection request sent"}, nil, http.StatusOK
}

func (me *ConnectionController) AcceptRequest(req *ActionRequest) (*ResponseMessage, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("accept request %s <- %s", req.ReceiverUID, req.SenderUID))

	if !utils.IsValidUid(req.ReceiverUID) || !utils.IsValidUid(req.SenderUID) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "sender and receiver ids are required"}, http.StatusOK
	}

	receiver, rpcErr := me.loadUser(req.ReceiverUID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	sender, rpcErr := me.loadUser(req.SenderUID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	if err := me.connectionService.AcceptRequest(receiver.UID, sender.UID, time.Now()); err != nil {
		if strings.Contains(err.Error(), "no pending request") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: "no pending request"}, http.StatusOK
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	me.notify(sender.UID, notification.TypeConnectionAccepted,
		fmt.Sprintf("%s %s accepted your connection request", receiver.FirstName, receiver.LastName))
	suggestion.InvalidateCache(me.rdb, receiver.UID, sender.UID)

	Logger.V(2).Info("connection request accepted")
	return &ResponseMessage{Message: "connection request accepted"}, nil, http.StatusOK
}

func (me *ConnectionController) DeclineRequest(req *ActionRequest) (*ResponseMessage, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("decline request %s <- %s", req.ReceiverUID, req.SenderUID))

	if !utils.IsValidUid(req.ReceiverUID) || !utils.IsValidUid(req.SenderUID) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "sender and receiver ids are required"}, http.StatusOK
	}

	receiver, rpcErr := me.loadUser(req.ReceiverUID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	sender, rpcErr := me.loadUser(req.SenderUID)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	if err := me.connectionService.MarkRequestRejected(receiver.UID, sender.UID); err != nil {
		if strings.Contains(err.Error(), "no pending request") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: "no pending request"}, http.StatusOK
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	Logger.V(2).Info("connection request declined")
	return &ResponseMessage{Message: "connection request declined"}, nil, http.StatusOK
}

func (me *ConnectionController) PendingList(uid string) (*ResponsePendingList, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("pending list %s", uid))

	if !utils.IsValidUid(uid) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "uid invalid"}, http.StatusOK
	}

	usr, rpcErr := me.loadUser(uid)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	peers, err := me.connectionService.FindPendingPeers(usr.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &ResponsePendingList{Friends: peers}, nil, http.StatusOK
}

func (me *ConnectionController) ConnectionList(uid string) (*ResponseConnectionList, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("connection list %s", uid))

	if !utils.IsValidUid(uid) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "uid invalid"}, http.StatusOK
	}

	usr, rpcErr := me.loadUser(uid)
	if rpcErr != nil {
		return nil, rpcErr, http.StatusOK
	}

	peers, err := me.connectionService.FindConnectionPeers(usr.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &ResponseConnectionList{Connections: peers}, nil, http.StatusOK
}
