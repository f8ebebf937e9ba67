package models

import "time"

// User is the credential record stored in PostgreSQL. Followers, following
// and liked posts live in their own tables and are merged into UserProfile.
type User struct {
	ID         uint      `json:"_id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	FullName   string    `json:"fullName" gorm:"size:100;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	ProfileImg string    `json:"profileImg"`
	CoverImg   string    `json:"coverImg"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserProfile is the public view of a user with its social-graph edges.
type UserProfile struct {
	ID         uint      `json:"_id"`
	FullName   string    `json:"fullName"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Followers  []uint    `json:"followers"`
	Following  []uint    `json:"following"`
	ProfileImg string    `json:"profileImg"`
	CoverImg   string    `json:"coverImg"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	LikedPosts []string  `json:"likedPosts"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserCompact is the slice of a user embedded into notifications.
type UserCompact struct {
	ID         uint   `json:"_id"`
	Username   string `json:"username"`
	ProfileImg string `json:"profileImg"`
}

// ToProfile merges the stored user with its edges. Nil slices are
// normalized so the JSON always carries arrays.
func (u *User) ToProfile(followers, following []uint, likedPosts []string) UserProfile {
	if followers == nil {
		followers = []uint{}
	}
	if following == nil {
		following = []uint{}
	}
	if likedPosts == nil {
		likedPosts = []string{}
	}
	return UserProfile{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Followers:  followers,
		Following:  following,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
		Bio:        u.Bio,
		Link:       u.Link,
		LikedPosts: likedPosts,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		ProfileImg: u.ProfileImg,
	}
}

// SignupRequest is the body of POST /auth/signup. Fields are checked by the
// auth service in a fixed order, so there are no struct validation tags here.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FirebaseLoginRequest exchanges a Firebase ID token for a session cookie.
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateUserRequest is the body of POST /users/update. Empty fields keep the
// stored value; images are data URIs uploaded to the image host.
type UpdateUserRequest struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}
