package connection

import (
	"context"
	"errors"
	"time"

	"jalin/components/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type I_ConnectionRepo interface {
	user.I_UserRepo
	AppendFriendRequest(receiverUid string, entry *user.FriendRequest) error
	AcceptRequest(receiverUid, senderUid string, now time.Time) error
	MarkRequestRejected(receiverUid, senderUid string) error
	FindPendingPeers(receiverUid string) ([]*PendingPeer, error)
	FindConnectionPeers(uid string) ([]*ConnectionPeer, error)
}

type ConnectionService struct {
	user.I_UserRepo
	ctx context.Context
}

func NewConnectionService(userService user.I_UserRepo, ctx context.Context) I_ConnectionRepo {
	return &ConnectionService{userService, ctx}
}

func (me *ConnectionService) AppendFriendRequest(receiverUid string, entry *user.FriendRequest) error {
	query := bson.M{"uid": receiverUid}
	update := bson.M{"$push": bson.M{"friends": entry}}

	res, err := me.GetCollection().UpdateOne(me.ctx, query, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return errors.New("no document with that UID exists")
	}

	return nil
}

// AcceptRequest removes the pending entry and writes the mirrored connection
// entries plus both counters inside one transaction. The $pull doubles as the
// guard: of two concurrent accepts only one observes a modified document, the
// other gets "no pending request".
func (me *ConnectionService) AcceptRequest(receiverUid, senderUid string, now time.Time) error {
	col := me.GetCollection()

	session, err := col.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(me.ctx)

	_, err = session.WithTransaction(me.ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := col.UpdateOne(sc,
			bson.M{"uid": receiverUid},
			bson.M{"$pull": bson.M{"friends": bson.M{"uid": senderUid, "status": user.StatusPending}}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errors.New("no document with that UID exists")
		}
		if res.ModifiedCount == 0 {
			return nil, errors.New("no pending request")
		}

		_, err = col.UpdateOne(sc, bson.M{"uid": receiverUid}, bson.M{
			"$push": bson.M{"connectionList": &user.Connection{UID: senderUid, DateAdded: now}},
			"$inc":  bson.M{"connections": 1},
		})
		if err != nil {
			return nil, err
		}

		res, err = col.UpdateOne(sc, bson.M{"uid": senderUid}, bson.M{
			"$push": bson.M{"connectionList": &user.Connection{UID: receiverUid, DateAdded: now}},
			"$inc":  bson.M{"connections": 1},
		})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errors.New("no document with that UID exists")
		}

		return nil, nil
	})

	return err
}

func (me *ConnectionService) MarkRequestRejected(receiverUid, senderUid string) error {
	query := bson.M{
		"uid":     receiverUid,
		"friends": bson.M{"$elemMatch": bson.M{"uid": senderUid, "status": user.StatusPending}},
	}
	update := bson.M{"$set": bson.M{"friends.$.status": user.StatusRejected}}

	res, err := me.GetCollection().UpdateOne(me.ctx, query, update)
	if err != nil {
		return err
	}

	if res.ModifiedCount == 0 {
		return errors.New("no pending request")
	}

	return nil
}

func (me *ConnectionService) FindPendingPeers(receiverUid string) ([]*PendingPeer, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"uid": receiverUid}},
		{"$unwind": "$friends"},
		{"$match": bson.M{"friends.status": user.StatusPending}},
		{"$lookup": bson.M{
			"from":         me.GetCollection().Name(),
			"localField":   "friends.uid",
			"foreignField": "uid",
			"as":           "peer",
		}},
		{"$unwind": "$peer"},
		{"$project": bson.M{
			"_id":            0,
			"uid":            "$peer.uid",
			"firstName":      "$peer.firstName",
			"lastName":       "$peer.lastName",
			"email":          "$peer.email",
			"profilePic":     "$peer.profilePic",
			"education":      "$peer.education",
			"workExperience": "$peer.workExperience",
			"connections":    "$peer.connections",
			"dateAdded":      "$friends.dateAdded",
		}},
	}

	cursor, err := me.GetCollection().Aggregate(me.ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var peers []*PendingPeer
	for cursor.Next(me.ctx) {
		peer := &PendingPeer{}
		err := cursor.Decode(peer)

		if err != nil {
			return nil, err
		}

		peers = append(peers, peer)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(peers) == 0 {
		return []*PendingPeer{}, nil
	}

	return peers, nil
}

func (me *ConnectionService) FindConnectionPeers(uid string) ([]*ConnectionPeer, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"uid": uid}},
		{"$unwind": "$connectionList"},
		{"$lookup": bson.M{
			"from":         me.GetCollection().Name(),
			"localField":   "connectionList.uid",
			"foreignField": "uid",
			"as":           "peer",
		}},
		{"$unwind": "$peer"},
		{"$project": bson.M{
			"_id":             0,
			"uid":             "$peer.uid",
			"fullName":        bson.M{"$concat": []interface{}{"$peer.firstName", " ", "$peer.lastName"}},
			"profilePic":      "$peer.profilePic",
			"dateAdded":       "$connectionList.dateAdded",
			"isFavorite":      "$connectionList.isFavorite",
			"lastInteraction": "$connectionList.lastInteraction",
		}},
	}

	cursor, err := me.GetCollection().Aggregate(me.ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var peers []*ConnectionPeer
	for cursor.Next(me.ctx) {
		peer := &ConnectionPeer{}
		err := cursor.Decode(peer)

		if err != nil {
			return nil, err
		}

		peers = append(peers, peer)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(peers) == 0 {
		return []*ConnectionPeer{}, nil
	}

	return peers, nil
}
