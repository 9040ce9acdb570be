package model

const RecipeTableName = "recipes"

type Ingredient struct {
	Name   string `bson:"name" json:"name"`
	Amount string `bson:"amount" json:"amount"`
}

type Recipe struct {
	ID           string       `bson:"_id" json:"id"`
	AuthorID     string       `bson:"author_id" json:"authorId"`
	Title        string       `bson:"title" json:"title"`
	Description  string       `bson:"description" json:"description"`
	CoverURL     string       `bson:"cover_url" json:"coverUrl"`
	Ingredients  []Ingredient `bson:"ingredients" json:"ingredients"`
	Steps        []string     `bson:"steps" json:"steps"`
	CookTimeMin  int          `bson:"cook_time_min" json:"cookTimeMin"`
	Likes        int64        `bson:"likes" json:"likes"`
	CreateTimeMS int64        `bson:"create_time" json:"createTime"`
	UpdateTimeMS int64        `bson:"update_time" json:"updateTime"`
}

func (*Recipe) TableName() string { return RecipeTableName }
