package model

const RoomTableName = "chat_rooms"

// ChatRoom groups the users that receive the same broadcasts. Membership is
// checked against the Members list before a connection is ever handed to the
// in-memory registry.
type ChatRoom struct {
	ID           string   `bson:"_id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	Description  string   `bson:"description" json:"description"`
	CoverURL     string   `bson:"cover_url" json:"coverUrl"`
	OwnerID      string   `bson:"owner_id" json:"ownerId"`
	Members      []string `bson:"members" json:"members"`
	CreateTimeMS int64    `bson:"create_time" json:"createTime"`
	UpdateTimeMS int64    `bson:"update_time" json:"updateTime"`
}

func (*ChatRoom) TableName() string { return RoomTableName }

func (r *ChatRoom) HasMember(userID string) bool {
	for _, m := range r.Members {
		if m == userID {
			return true
		}
	}
	return false
}
