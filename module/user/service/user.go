package service

import (
	"context"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/global"
	"github.com/BlackYHawk/react-food-AI-sub000/module/user/model"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/ids"
	toolsec "github.com/BlackYHawk/react-food-AI-sub000/tools/security"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{users: db.Collection(model.UserTableName)}
}

func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || len(password) < 6 {
		return nil, errs.ErrArgs.WrapMsg("username required, password min 6 chars")
	}

	err := s.users.FindOne(ctx, bson.M{"username": username}).Err()
	if err == nil {
		return nil, errs.ErrDuplicateUser.WrapMsg("", "username", username)
	}
	if err != mongo.ErrNoDocuments {
		return nil, errs.WrapMsg(err, "check username", "username", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.WrapMsg(err, "hash password")
	}

	now := time.Now().UnixMilli()
	u := &model.User{
		ID:           ids.GenerateString(),
		Username:     username,
		PasswordHash: string(hash),
		CreateTimeMS: now,
		UpdateTimeMS: now,
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return nil, errs.WrapMsg(err, "insert user", "username", username)
	}
	return u, nil
}

// Login checks credentials and issues a signed token. The same generic error
// covers both unknown user and bad password.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	var u model.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, "", errs.ErrPasswordWrong.WrapMsg("")
	}
	if err != nil {
		return nil, "", errs.WrapMsg(err, "find user", "username", username)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", errs.ErrPasswordWrong.WrapMsg("")
	}

	token, _, err := toolsec.Generate(s.tokenOptions(), u.ID, u.Username)
	if err != nil {
		return nil, "", errs.WrapMsg(err, "sign token", "userId", u.ID)
	}
	return &u, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrRecordNotFound.WrapMsg("", "userId", userID)
	}
	if err != nil {
		return nil, errs.WrapMsg(err, "find user", "userId", userID)
	}
	return &u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, avatar, bio *string) (*model.User, error) {
	set := bson.M{"update_time": time.Now().UnixMilli()}
	if avatar != nil {
		set["avatar"] = *avatar
	}
	if bio != nil {
		set["bio"] = *bio
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return nil, errs.WrapMsg(err, "update profile", "userId", userID)
	}
	if res.MatchedCount == 0 {
		return nil, errs.ErrRecordNotFound.WrapMsg("", "userId", userID)
	}
	return s.GetByID(ctx, userID)
}

func (s *Service) tokenOptions() toolsec.Options {
	return toolsec.Options{
		Secret: global.JwtSecret(),
		TTL:    global.Config.Jwt.TokenTTL.D(),
	}
}
