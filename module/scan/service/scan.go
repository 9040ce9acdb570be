package service

import (
	"context"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/module/scan/model"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/ids"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Service struct {
	scans *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{scans: db.Collection(model.ScanTableName)}
}

func (s *Service) Record(ctx context.Context, scan *model.FoodScan) (*model.FoodScan, error) {
	if scan.UserID == "" || scan.ImageURL == "" {
		return nil, errs.ErrArgs.WrapMsg("user and image required")
	}
	scan.ID = ids.GenerateString()
	scan.CreateTimeMS = time.Now().UnixMilli()
	if _, err := s.scans.InsertOne(ctx, scan); err != nil {
		return nil, errs.WrapMsg(err, "insert scan", "userId", scan.UserID)
	}
	return scan, nil
}

// History returns the user's scans newest-first.
func (s *Service) History(ctx context.Context, userID string, page, size int64) ([]*model.FoodScan, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	opts := options.Find().
		SetSort(bson.M{"create_time": -1}).
		SetSkip((page - 1) * size).
		SetLimit(size)
	cur, err := s.scans.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, errs.WrapMsg(err, "list scans", "userId", userID)
	}
	defer cur.Close(ctx)

	var out []*model.FoodScan
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode scans", "userId", userID)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	res, err := s.scans.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return errs.WrapMsg(err, "delete scan", "scanId", id)
	}
	if res.DeletedCount == 0 {
		return errs.ErrRecordNotFound.WrapMsg("", "scanId", id)
	}
	return nil
}
