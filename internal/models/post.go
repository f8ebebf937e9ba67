package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB. Likes is a set of user ids and is
// only ever mutated with $addToSet/$pull.
type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    uint               `json:"user" bson:"user"`
	Text      string             `json:"text,omitempty" bson:"text,omitempty"`
	Img       string             `json:"img,omitempty" bson:"img,omitempty"`
	Likes     []uint             `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PostView is a post with its author and comment authors resolved.
type PostView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      *User              `json:"user"`
	Text      string             `json:"text,omitempty"`
	Img       string             `json:"img,omitempty"`
	Likes     []uint             `json:"likes"`
	Comments  []CommentView      `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CreatePostRequest defines the request body for creating a new post.
// Img is a data URI; at least one of the two fields must be set.
type CreatePostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}
