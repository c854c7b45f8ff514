package notification

import (
	"fmt"
	"net/http"
	"strings"

	"jalin/jsonrpc2"
	"jalin/utils"
)

type NotifController struct {
	notifService I_NotifRepo
}

func NewNotifController(notifService I_NotifRepo) NotifController {
	return NotifController{notifService}
}

func (me *NotifController) GetNotifications(req *GetNotificationsRequest) (*ResponseNotifications, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("get notifications for %s", req.UID))

	if !utils.IsValidUid(req.UID) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "uid invalid"}, http.StatusOK
	}

	notifs, err := me.notifService.FindNotifsByRecipient(req.UID, req.Page, req.Limit)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &ResponseNotifications{Notifications: notifs}, nil, http.StatusOK
}

func (me *NotifController) MarkRead(req *MarkReadRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("mark notification %s read", req.Id))

	if !utils.IsValidUid(req.UID) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "uid invalid"}, http.StatusOK
	}

	if err := me.notifService.MarkRead(req.UID, req.Id); err != nil {
		if strings.Contains(err.Error(), "exists") {
			return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
		}
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}, http.StatusOK
	}

	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}
