package service

import (
	"context"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/module/recipe/model"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/ids"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Service struct {
	recipes *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{recipes: db.Collection(model.RecipeTableName)}
}

func (s *Service) Create(ctx context.Context, r *model.Recipe) (*model.Recipe, error) {
	if r.Title == "" || r.AuthorID == "" {
		return nil, errs.ErrArgs.WrapMsg("title and author required")
	}
	now := time.Now().UnixMilli()
	r.ID = ids.GenerateString()
	r.Likes = 0
	r.CreateTimeMS = now
	r.UpdateTimeMS = now
	if _, err := s.recipes.InsertOne(ctx, r); err != nil {
		return nil, errs.WrapMsg(err, "insert recipe", "title", r.Title)
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var r model.Recipe
	err := s.recipes.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrRecordNotFound.WrapMsg("", "recipeId", id)
	}
	if err != nil {
		return nil, errs.WrapMsg(err, "find recipe", "recipeId", id)
	}
	return &r, nil
}

// List returns recipes newest-first; authorID filters when non-empty.
func (s *Service) List(ctx context.Context, authorID string, page, size int64) ([]*model.Recipe, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	filter := bson.M{}
	if authorID != "" {
		filter["author_id"] = authorID
	}
	opts := options.Find().
		SetSort(bson.M{"create_time": -1}).
		SetSkip((page - 1) * size).
		SetLimit(size)
	cur, err := s.recipes.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.WrapMsg(err, "list recipes")
	}
	defer cur.Close(ctx)

	var out []*model.Recipe
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode recipes")
	}
	return out, nil
}

// Update applies the caller's changes; only the author may update.
func (s *Service) Update(ctx context.Context, id, authorID string, set bson.M) (*model.Recipe, error) {
	if len(set) == 0 {
		return s.Get(ctx, id)
	}
	set["update_time"] = time.Now().UnixMilli()
	res, err := s.recipes.UpdateOne(ctx,
		bson.M{"_id": id, "author_id": authorID},
		bson.M{"$set": set})
	if err != nil {
		return nil, errs.WrapMsg(err, "update recipe", "recipeId", id)
	}
	if res.MatchedCount == 0 {
		return nil, errs.ErrRecordNotFound.WrapMsg("", "recipeId", id)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, authorID string) error {
	res, err := s.recipes.DeleteOne(ctx, bson.M{"_id": id, "author_id": authorID})
	if err != nil {
		return errs.WrapMsg(err, "delete recipe", "recipeId", id)
	}
	if res.DeletedCount == 0 {
		return errs.ErrRecordNotFound.WrapMsg("", "recipeId", id)
	}
	return nil
}

func (s *Service) Like(ctx context.Context, id string) (int64, error) {
	var r model.Recipe
	err := s.recipes.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return 0, errs.ErrRecordNotFound.WrapMsg("", "recipeId", id)
	}
	if err != nil {
		return 0, errs.WrapMsg(err, "like recipe", "recipeId", id)
	}
	return r.Likes, nil
}
