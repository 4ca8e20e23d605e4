package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"social-service/internal/models"
	"social-service/pkg/apperrors"
)

func newPostServiceFixture() (*PostService, *fakeUserRepo, *fakePostRepo, *fakeCommentRepo, *fakeNotifier) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	notifier := newFakeNotifier()
	svc := NewPostService(posts, users, comments, newFakeFriendCache(), notifier)
	return svc, users, posts, comments, notifier
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresDescription", func(t *testing.T) {
		svc, _, posts, _, _ := newPostServiceFixture()
		_, err := svc.CreatePost(ctx, primitive.NewObjectID().Hex(), models.CreatePostRequest{Image: "x.png"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		assert.Empty(t, posts.posts)
	})

	t.Run("Creates", func(t *testing.T) {
		svc, _, _, _, _ := newPostServiceFixture()
		uid := primitive.NewObjectID()
		post, err := svc.CreatePost(ctx, uid.Hex(), models.CreatePostRequest{Description: "hello", Image: "x.png"})
		require.NoError(t, err)
		assert.False(t, post.ID.IsZero())
		assert.Equal(t, uid, post.UserID)
		assert.Equal(t, []string{}, post.Likes)
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("ToggleTwiceIsIdentity", func(t *testing.T) {
		svc, users, posts, _, _ := newPostServiceFixture()
		author := models.User{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
		require.NoError(t, users.Create(ctx, &author))
		post := models.Post{UserID: author.ID, Description: "p"}
		require.NoError(t, posts.Create(ctx, &post))
		liker := primitive.NewObjectID().Hex()

		updated, err := svc.ToggleLike(ctx, post.ID.Hex(), liker)
		require.NoError(t, err)
		assert.Equal(t, []string{liker}, updated.Likes)

		updated, err = svc.ToggleLike(ctx, post.ID.Hex(), liker)
		require.NoError(t, err)
		assert.Empty(t, updated.Likes)
	})

	t.Run("AtomicPathMatchesDefault", func(t *testing.T) {
		svc, users, posts, _, _ := newPostServiceFixture()
		svc.UseAtomicLikes()
		author := models.User{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
		require.NoError(t, users.Create(ctx, &author))
		post := models.Post{UserID: author.ID, Description: "p"}
		require.NoError(t, posts.Create(ctx, &post))
		liker := primitive.NewObjectID().Hex()

		updated, err := svc.ToggleLike(ctx, post.ID.Hex(), liker)
		require.NoError(t, err)
		assert.Equal(t, []string{liker}, updated.Likes)

		updated, err = svc.ToggleLike(ctx, post.ID.Hex(), liker)
		require.NoError(t, err)
		assert.Empty(t, updated.Likes)
	})

	t.Run("LikeNotifiesAuthor", func(t *testing.T) {
		svc, users, posts, _, notifier := newPostServiceFixture()
		author := models.User{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
		require.NoError(t, users.Create(ctx, &author))
		post := models.Post{UserID: author.ID, Description: "p"}
		require.NoError(t, posts.Create(ctx, &post))
		liker := primitive.NewObjectID().Hex()

		_, err := svc.ToggleLike(ctx, post.ID.Hex(), liker)
		require.NoError(t, err)
		require.Len(t, notifier.events, 1)
		assert.Equal(t, EventPostLiked, notifier.events[0].Type)
		assert.Equal(t, liker, notifier.events[0].ActorID)
		assert.Equal(t, author.ID.Hex(), notifier.events[0].SubjectID)

		// Unliking stays silent.
		_, err = svc.ToggleLike(ctx, post.ID.Hex(), liker)
		require.NoError(t, err)
		assert.Len(t, notifier.events, 1)
	})

	t.Run("SelfLikeStaysSilent", func(t *testing.T) {
		svc, users, posts, _, notifier := newPostServiceFixture()
		author := models.User{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
		require.NoError(t, users.Create(ctx, &author))
		post := models.Post{UserID: author.ID, Description: "p"}
		require.NoError(t, posts.Create(ctx, &post))

		_, err := svc.ToggleLike(ctx, post.ID.Hex(), author.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, notifier.events)
	})

	t.Run("UnknownPost", func(t *testing.T) {
		svc, _, _, _, _ := newPostServiceFixture()
		_, err := svc.ToggleLike(ctx, primitive.NewObjectID().Hex(), "someone")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestGetUserPosts(t *testing.T) {
	ctx := context.Background()
	svc, users, posts, _, _ := newPostServiceFixture()
	author := models.User{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
	require.NoError(t, users.Create(ctx, &author))
	other := models.User{FirstName: "Cara", LastName: "C", Email: "cara@example.com"}
	require.NoError(t, users.Create(ctx, &other))
	require.NoError(t, posts.Create(ctx, &models.Post{UserID: author.ID, Description: "mine"}))
	require.NoError(t, posts.Create(ctx, &models.Post{UserID: other.ID, Description: "theirs"}))

	got, err := svc.GetUserPosts(ctx, author.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Description)
	require.NotNil(t, got[0].User)
	assert.Equal(t, author.ID, got[0].User.ID)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	svc, users, posts, comments, _ := newPostServiceFixture()
	author := models.User{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
	require.NoError(t, users.Create(ctx, &author))
	post := models.Post{UserID: author.ID, Description: "p"}
	require.NoError(t, posts.Create(ctx, &post))
	require.NoError(t, comments.Create(ctx, &models.Comment{UserID: author.ID, PostID: post.ID, Comment: "c"}))

	require.NoError(t, svc.DeletePost(ctx, post.ID.Hex()))

	_, err := svc.GetPost(ctx, post.ID.Hex())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	left, err := comments.FindByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
