package service

import (
	"context"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/module/stream/model"
	"github.com/BlackYHawk/react-food-AI-sub000/service/storage"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/ids"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Service struct {
	streams  *mongo.Collection
	presence *storage.Presence
}

func NewService(db *mongo.Database, presence *storage.Presence) *Service {
	return &Service{
		streams:  db.Collection(model.StreamTableName),
		presence: presence,
	}
}

func (s *Service) Start(ctx context.Context, hostID, hostName, title, coverURL, playbackURL string) (*model.LiveStream, error) {
	if title == "" {
		return nil, errs.ErrArgs.WrapMsg("title required")
	}
	now := time.Now().UnixMilli()
	st := &model.LiveStream{
		ID:           ids.GenerateString(),
		HostID:       hostID,
		HostName:     hostName,
		Title:        title,
		CoverURL:     coverURL,
		PlaybackURL:  playbackURL,
		Status:       model.StatusLive,
		StartTimeMS:  now,
		CreateTimeMS: now,
	}
	if _, err := s.streams.InsertOne(ctx, st); err != nil {
		return nil, errs.WrapMsg(err, "insert stream", "hostId", hostID)
	}
	return st, nil
}

// End marks the host's stream ended and clears its viewer counter.
func (s *Service) End(ctx context.Context, streamID, hostID string) error {
	res, err := s.streams.UpdateOne(ctx,
		bson.M{"_id": streamID, "host_id": hostID, "status": model.StatusLive},
		bson.M{"$set": bson.M{"status": model.StatusEnded, "end_time": time.Now().UnixMilli()}})
	if err != nil {
		return errs.WrapMsg(err, "end stream", "streamId", streamID)
	}
	if res.MatchedCount == 0 {
		return errs.ErrStreamNotLive.WrapMsg("", "streamId", streamID)
	}
	return s.presence.ClearViewers(ctx, streamID)
}

func (s *Service) ListLive(ctx context.Context, limit int64) ([]*model.LiveStream, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.M{"start_time": -1}).SetLimit(limit)
	cur, err := s.streams.Find(ctx, bson.M{"status": model.StatusLive}, opts)
	if err != nil {
		return nil, errs.WrapMsg(err, "list live streams")
	}
	defer cur.Close(ctx)

	var out []*model.LiveStream
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode streams")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, streamID string) (*model.LiveStream, error) {
	var st model.LiveStream
	err := s.streams.FindOne(ctx, bson.M{"_id": streamID}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrRecordNotFound.WrapMsg("", "streamId", streamID)
	}
	if err != nil {
		return nil, errs.WrapMsg(err, "find stream", "streamId", streamID)
	}
	return &st, nil
}

// ViewerJoin bumps the Redis counter; the stream must be live.
func (s *Service) ViewerJoin(ctx context.Context, streamID string) (int64, error) {
	st, err := s.Get(ctx, streamID)
	if err != nil {
		return 0, err
	}
	if st.Status != model.StatusLive {
		return 0, errs.ErrStreamNotLive.WrapMsg("", "streamId", streamID)
	}
	return s.presence.ViewerJoin(ctx, streamID)
}

func (s *Service) ViewerLeave(ctx context.Context, streamID string) (int64, error) {
	return s.presence.ViewerLeave(ctx, streamID)
}

func (s *Service) ViewerCount(ctx context.Context, streamID string) (int64, error) {
	return s.presence.ViewerCount(ctx, streamID)
}
