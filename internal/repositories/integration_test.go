//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/anonto42/nano-social/backend/internal/models"
	repo "github.com/anonto42/nano-social/backend/internal/repositories"
)

var (
	pgDSN    string
	mongoURI string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pg, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "social_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := pg.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	pgDSN = fmt.Sprintf("postgres://postgres:password@%s:%s/social_test?sslmode=disable", host, port.Port())

	mg, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	mhost, err := mg.Host(ctx)
	if err != nil {
		panic(err)
	}
	mport, err := mg.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	mongoURI = fmt.Sprintf("mongodb://%s:%s", mhost, mport.Port())

	code := m.Run()
	_ = pg.Terminate(ctx)
	_ = mg.Terminate(ctx)
	os.Exit(code)
}

func TestPostgresRepositories(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(postgres.Open(pgDSN), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	users := repo.NewPostgresUserRepository(db)
	follows := repo.NewPostgresFollowRepository(db)
	likes := repo.NewPostgresLikeRepository(db)
	notifications := repo.NewPostgresNotificationRepository(db)

	alice := &models.User{Username: "alice", FullName: "Alice", Email: "alice@example.com", Password: "hash"}
	bob := &models.User{Username: "bob", FullName: "Bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, users.CreateUser(ctx, alice))
	require.NoError(t, users.CreateUser(ctx, bob))

	t.Run("unique username", func(t *testing.T) {
		err := users.CreateUser(ctx, &models.User{Username: "alice", FullName: "A", Email: "other@example.com", Password: "hash"})
		assert.ErrorIs(t, err, repo.ErrDuplicate)
	})

	t.Run("follow edge", func(t *testing.T) {
		require.NoError(t, follows.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))
		err := follows.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
		assert.ErrorIs(t, err, repo.ErrDuplicate)

		ids, err := follows.GetFollowerIDs(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{alice.ID}, ids)

		require.NoError(t, follows.DeleteFollow(ctx, alice.ID, bob.ID))
		assert.ErrorIs(t, follows.DeleteFollow(ctx, alice.ID, bob.ID), repo.ErrNotFound)
	})

	t.Run("liked posts set", func(t *testing.T) {
		postID := "65f000000000000000000001"
		inserted, err := likes.CreateLike(ctx, alice.ID, postID)
		require.NoError(t, err)
		assert.True(t, inserted)
		inserted, err = likes.CreateLike(ctx, alice.ID, postID)
		require.NoError(t, err)
		assert.False(t, inserted)

		ids, err := likes.GetLikedPostIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{postID}, ids)

		require.NoError(t, likes.DeleteLikesByPostID(ctx, postID))
		ids, err = likes.GetLikedPostIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("notifications", func(t *testing.T) {
		require.NoError(t, notifications.CreateNotification(ctx, &models.Notification{FromID: alice.ID, ToID: bob.ID, Type: models.NotificationFollow}))
		require.NoError(t, notifications.CreateNotification(ctx, &models.Notification{FromID: alice.ID, ToID: bob.ID, Type: models.NotificationLike}))

		list, err := notifications.GetByRecipientID(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, models.NotificationLike, list[0].Type)

		count, err := notifications.GetUnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		require.NoError(t, notifications.MarkAsRead(ctx, bob.ID, []uint{list[0].ID}))
		count, err = notifications.GetUnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		require.NoError(t, notifications.MarkAsRead(ctx, bob.ID, []uint{list[0].ID, list[1].ID}))
		count, err = notifications.GetUnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		require.NoError(t, notifications.DeleteAllByRecipientID(ctx, bob.ID))
		list, err = notifications.GetByRecipientID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestMongoPostRepository(t *testing.T) {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	posts := repo.NewMongoPostRepository(client.Database("social_test"))
	require.NoError(t, posts.EnsureIndexes(ctx))

	first := &models.Post{UserID: 1, Text: "first"}
	require.NoError(t, posts.CreatePost(ctx, first))
	second := &models.Post{UserID: 2, Text: "second"}
	require.NoError(t, posts.CreatePost(ctx, second))

	t.Run("likes behave as a set", func(t *testing.T) {
		likes, err := posts.AddLike(ctx, first.ID.Hex(), 2)
		require.NoError(t, err)
		assert.Equal(t, []uint{2}, likes)

		likes, err = posts.AddLike(ctx, first.ID.Hex(), 2)
		require.NoError(t, err)
		assert.Equal(t, []uint{2}, likes)

		likes, err = posts.RemoveLike(ctx, first.ID.Hex(), 2)
		require.NoError(t, err)
		assert.Empty(t, likes)
	})

	t.Run("comments append", func(t *testing.T) {
		post, err := posts.AddComment(ctx, second.ID.Hex(), models.Comment{Text: "hi", UserID: 1})
		require.NoError(t, err)
		require.Len(t, post.Comments, 1)
		assert.Equal(t, "hi", post.Comments[0].Text)
		assert.False(t, post.Comments[0].ID.IsZero())
	})

	t.Run("listings newest first", func(t *testing.T) {
		all, err := posts.GetAllPosts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID)

		byUser, err := posts.GetPostsByUserIDs(ctx, []uint{1})
		require.NoError(t, err)
		require.Len(t, byUser, 1)
		assert.Equal(t, first.ID, byUser[0].ID)

		byIDs, err := posts.GetPostsByIDs(ctx, []string{first.ID.Hex(), "not-an-id"})
		require.NoError(t, err)
		assert.Len(t, byIDs, 1)
	})

	t.Run("missing and malformed ids", func(t *testing.T) {
		_, err := posts.GetPostByID(ctx, "zzz")
		assert.ErrorIs(t, err, repo.ErrNotFound)

		require.NoError(t, posts.DeletePost(ctx, first.ID.Hex()))
		_, err = posts.GetPostByID(ctx, first.ID.Hex())
		assert.ErrorIs(t, err, repo.ErrNotFound)
		assert.ErrorIs(t, posts.DeletePost(ctx, first.ID.Hex()), repo.ErrNotFound)
	})
}
