package store

import (
	"context"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/model"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/ids"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists chat rooms and messages. The websocket layer calls
// IsMember before registering a connection and SaveMessage before each
// new_message broadcast.
type Store struct {
	rooms    *mongo.Collection
	messages *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		rooms:    db.Collection(model.RoomTableName),
		messages: db.Collection(model.MessageTableName),
	}
}

func (s *Store) CreateRoom(ctx context.Context, name, description, coverURL, ownerID string) (*model.ChatRoom, error) {
	now := time.Now().UnixMilli()
	room := &model.ChatRoom{
		ID:           ids.GenerateString(),
		Name:         name,
		Description:  description,
		CoverURL:     coverURL,
		OwnerID:      ownerID,
		Members:      []string{ownerID},
		CreateTimeMS: now,
		UpdateTimeMS: now,
	}
	if _, err := s.rooms.InsertOne(ctx, room); err != nil {
		return nil, errs.WrapMsg(err, "insert room", "name", name)
	}
	return room, nil
}

func (s *Store) GetRoom(ctx context.Context, roomID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := s.rooms.FindOne(ctx, bson.M{"_id": roomID}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrRoomNotFound.WrapMsg("", "roomId", roomID)
	}
	if err != nil {
		return nil, errs.WrapMsg(err, "find room", "roomId", roomID)
	}
	return &room, nil
}

func (s *Store) ListRooms(ctx context.Context, limit int64) ([]*model.ChatRoom, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.M{"update_time": -1}).SetLimit(limit)
	cur, err := s.rooms.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.WrapMsg(err, "list rooms")
	}
	defer cur.Close(ctx)

	var out []*model.ChatRoom
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode rooms")
	}
	return out, nil
}

func (s *Store) JoinRoom(ctx context.Context, roomID, userID string) error {
	res, err := s.rooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$addToSet": bson.M{"members": userID},
			"$set":      bson.M{"update_time": time.Now().UnixMilli()},
		})
	if err != nil {
		return errs.WrapMsg(err, "join room", "roomId", roomID, "userId", userID)
	}
	if res.MatchedCount == 0 {
		return errs.ErrRoomNotFound.WrapMsg("", "roomId", roomID)
	}
	return nil
}

func (s *Store) LeaveRoom(ctx context.Context, roomID, userID string) error {
	_, err := s.rooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$set":  bson.M{"update_time": time.Now().UnixMilli()},
		})
	if err != nil {
		return errs.WrapMsg(err, "leave room", "roomId", roomID, "userId", userID)
	}
	return nil
}

// IsMember reports whether userID is in roomID's member list.
func (s *Store) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	err := s.rooms.FindOne(ctx, bson.M{"_id": roomID, "members": userID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, errs.WrapMsg(err, "check membership", "roomId", roomID, "userId", userID)
	}
	return true, nil
}

func (s *Store) SaveMessage(ctx context.Context, msg *model.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = ids.GenerateString()
	}
	if msg.CreateTimeMS == 0 {
		msg.CreateTimeMS = time.Now().UnixMilli()
	}
	if _, err := s.messages.InsertOne(ctx, msg); err != nil {
		return errs.WrapMsg(err, "insert message", "roomId", msg.RoomID)
	}
	return nil
}

// ListMessages returns roomID's history newest-first. A non-zero before
// timestamp (Unix ms) pages backwards from that point.
func (s *Store) ListMessages(ctx context.Context, roomID string, before int64, limit int64) ([]*model.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	filter := bson.M{"room_id": roomID}
	if before > 0 {
		filter["create_time"] = bson.M{"$lt": before}
	}
	opts := options.Find().SetSort(bson.M{"create_time": -1}).SetLimit(limit)
	cur, err := s.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.WrapMsg(err, "list messages", "roomId", roomID)
	}
	defer cur.Close(ctx)

	var out []*model.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode messages", "roomId", roomID)
	}
	return out, nil
}
