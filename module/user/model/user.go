package model

const UserTableName = "users"

type User struct {
	ID           string `bson:"_id" json:"id"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Avatar       string `bson:"avatar" json:"avatar"`
	Bio          string `bson:"bio" json:"bio"`
	CreateTimeMS int64  `bson:"create_time" json:"createTime"`
	UpdateTimeMS int64  `bson:"update_time" json:"updateTime"`
}

func (*User) TableName() string { return UserTableName }
