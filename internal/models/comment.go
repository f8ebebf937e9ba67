package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is embedded in a Post and never edited once appended.
type Comment struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Text   string             `json:"text" bson:"text"`
	UserID uint               `json:"user" bson:"user"`
}

type CommentView struct {
	ID   primitive.ObjectID `json:"_id"`
	Text string             `json:"text"`
	User *User              `json:"user"`
}

// CreateCommentRequest defines the request body for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text"`
}
