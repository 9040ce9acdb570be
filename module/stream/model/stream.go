package model

const StreamTableName = "live_streams"

const (
	StatusLive  = "live"
	StatusEnded = "ended"
)

// LiveStream is the stream metadata record; the media itself is handled by
// an external CDN, this service only tracks who is live and what to show in
// the discovery list.
type LiveStream struct {
	ID           string `bson:"_id" json:"id"`
	HostID       string `bson:"host_id" json:"hostId"`
	HostName     string `bson:"host_name" json:"hostName"`
	Title        string `bson:"title" json:"title"`
	CoverURL     string `bson:"cover_url" json:"coverUrl"`
	PlaybackURL  string `bson:"playback_url" json:"playbackUrl"`
	Status       string `bson:"status" json:"status"`
	StartTimeMS  int64  `bson:"start_time" json:"startTime"`
	EndTimeMS    int64  `bson:"end_time,omitempty" json:"endTime,omitempty"`
	CreateTimeMS int64  `bson:"create_time" json:"createTime"`
}

func (*LiveStream) TableName() string { return StreamTableName }
