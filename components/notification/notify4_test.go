package notification

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'notification'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'notification'")
}

type fakeNotifRepo struct {
	notifs []*DBNotification
}

func (me *fakeNotifRepo) GetNotifCollection() *mongo.Collection { return nil }

func (me *fakeNotifRepo) AddNotif(notif *CreateNotification) (*DBNotification, error) {
	stored := &DBNotification{
		Id:        primitive.NewObjectID(),
		Recipient: notif.Recipient,
		Type:      notif.Type,
		Content:   notif.Content,
		Timestamp: notif.Timestamp,
	}
	me.notifs = append(me.notifs, stored)
	return stored, nil
}

func (me *fakeNotifRepo) FindNotifsByRecipient(recipient string, page, limit int) ([]*DBNotification, error) {
	result := []*DBNotification{}
	for _, n := range me.notifs {
		if n.Recipient == recipient {
			result = append(result, n)
		}
	}
	return result, nil
}

func (me *fakeNotifRepo) MarkRead(recipient, id string) error {
	for _, n := range me.notifs {
		if n.Recipient == recipient && n.Id.Hex() == id {
			n.Read = true
			return nil
		}
	}
	return fmt.Errorf("no notification with that id exists")
}

func Test_GetNotifications(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeNotifRepo{}
	ctr := NewNotifController(repo)

	recipient := "267f591c-3de1-4dec-819a-00fe801de8ed"
	stored, err := repo.AddNotif(&CreateNotification{
		Recipient: recipient,
		Type:      TypeConnectionRequest,
		Content:   "Alice A sent you a connection request",
		Timestamp: time.Now(),
	})
	asserts.Nil(err)

	_, rpcErr, _ := ctr.GetNotifications(&GetNotificationsRequest{UID: "not-a-uuid"})
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusBadRequest, rpcErr.Code)

	res, rpcErr, _ := ctr.GetNotifications(&GetNotificationsRequest{UID: recipient})
	asserts.Nil(rpcErr)
	asserts.Len(res.Notifications, 1)
	asserts.Equal(TypeConnectionRequest, res.Notifications[0].Type)
	asserts.False(res.Notifications[0].Read)

	status, rpcErr, _ := ctr.MarkRead(&MarkReadRequest{UID: recipient, Id: stored.Id.Hex()})
	asserts.Nil(rpcErr)
	asserts.Equal("success", status.Status)
	asserts.True(repo.notifs[0].Read)

	_, rpcErr, _ = ctr.MarkRead(&MarkReadRequest{UID: recipient, Id: primitive.NewObjectID().Hex()})
	asserts.NotNil(rpcErr)
	asserts.Equal(http.StatusNotFound, rpcErr.Code)
}
