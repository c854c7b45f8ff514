package notification

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jalin/utils"
)

type I_NotifRepo interface {
	GetNotifCollection() *mongo.Collection
	AddNotif(notif *CreateNotification) (*DBNotification, error)
	FindNotifsByRecipient(recipient string, page, limit int) ([]*DBNotification, error)
	MarkRead(recipient, id string) error
}

type NotifService struct {
	notifCollection *mongo.Collection
	ctx             context.Context
}

func NewNotifService(notifCollection *mongo.Collection, ctx context.Context) I_NotifRepo {
	return &NotifService{notifCollection, ctx}
}

func (me *NotifService) GetNotifCollection() *mongo.Collection {
	return me.notifCollection
}

func (me *NotifService) AddNotif(notif *CreateNotification) (*DBNotification, error) {
	doc, err := utils.ToDoc(notif)
	if err != nil {
		return nil, err
	}

	res, err := me.notifCollection.InsertOne(me.ctx, doc)
	if err != nil {
		return nil, err
	}

	var newNotif *DBNotification
	query := bson.M{"_id": res.InsertedID}
	if err = me.notifCollection.FindOne(me.ctx, query).Decode(&newNotif); err != nil {
		return nil, err
	}

	return newNotif, nil
}

func (me *NotifService) FindNotifsByRecipient(recipient string, page, limit int) ([]*DBNotification, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	opt := options.Find()
	opt.SetSort(bson.M{"timestamp": -1})
	opt.SetSkip(int64(skip))
	opt.SetLimit(int64(limit))

	query := bson.M{"recipient": recipient}
	cursor, err := me.notifCollection.Find(me.ctx, query, opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var notifs []*DBNotification
	for cursor.Next(me.ctx) {
		notif := &DBNotification{}
		err := cursor.Decode(notif)

		if err != nil {
			return nil, err
		}

		notifs = append(notifs, notif)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(notifs) == 0 {
		return []*DBNotification{}, nil
	}

	return notifs, nil
}

func (me *NotifService) MarkRead(recipient, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	query := bson.M{"_id": oid, "recipient": recipient}
	update := bson.M{"$set": bson.M{"read": true}}

	res, err := me.notifCollection.UpdateOne(me.ctx, query, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return errors.New("no notification with that id exists")
	}

	return nil
}
