package model

const ScanTableName = "food_scans"

// Nutrition is the recognized nutrition breakdown for one scanned serving.
type Nutrition struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Fat      float64 `bson:"fat" json:"fat"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
}

// FoodScan is one recognition result from the mobile client's camera flow.
type FoodScan struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"user_id" json:"userId"`
	ImageURL     string    `bson:"image_url" json:"imageUrl"`
	FoodName     string    `bson:"food_name" json:"foodName"`
	Confidence   float64   `bson:"confidence" json:"confidence"`
	Nutrition    Nutrition `bson:"nutrition" json:"nutrition"`
	CreateTimeMS int64     `bson:"create_time" json:"createTime"`
}

func (*FoodScan) TableName() string { return ScanTableName }
