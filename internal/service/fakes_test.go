package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"social-service/internal/models"
	"social-service/pkg/apperrors"
)

// In-memory repository fakes. Find ordering mirrors the store: newest
// ObjectID first.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	if user.Views == nil {
		user.Views = []string{}
	}
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id.Hex()]
	if !ok {
		return nil, apperrors.NotFoundf("User Not Found")
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("User Not Found")
}

func (r *fakeUserRepo) FindManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if user, ok := r.users[id.Hex()]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindSuggested(_ context.Context, userID primitive.ObjectID, limit int64) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, user := range r.users {
		if user.ID == userID {
			continue
		}
		friendsWith := false
		for _, fid := range user.Friends {
			if fid == userID {
				friendsWith = true
				break
			}
		}
		if !friendsWith && int64(len(out)) < limit {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id.Hex()]
	if !ok {
		return nil, apperrors.NotFoundf("User Not Found")
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.ProfileURL != "" {
		user.ProfileURL = req.ProfileURL
	}
	if req.Profession != "" {
		user.Profession = req.Profession
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id.Hex()]
	if !ok {
		return apperrors.NotFoundf("User Not Found")
	}
	user.Password = hashed
	return nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id.Hex()]
	if !ok {
		return apperrors.NotFoundf("User Not Found")
	}
	user.Verified = true
	return nil
}

func (r *fakeUserRepo) AddFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID.Hex()]
	if !ok {
		return apperrors.NotFoundf("User Not Found")
	}
	user.Friends = append(user.Friends, friendID)
	return nil
}

func (r *fakeUserRepo) AddProfileView(_ context.Context, id primitive.ObjectID, viewerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id.Hex()]
	if !ok {
		return apperrors.NotFoundf("User Not Found")
	}
	user.Views = append(user.Views, viewerID)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id.Hex())
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts []models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []primitive.ObjectID{}
	}
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			cp := r.posts[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("Post not found")
}

func (r *fakePostRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for i := range r.posts {
		if r.posts[i].UserID == userID {
			out = append(out, r.posts[i])
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePostRepo) Find(_ context.Context, search string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for i := range r.posts {
		if search == "" || strings.Contains(strings.ToLower(r.posts[i].Description), strings.ToLower(search)) {
			out = append(out, r.posts[i])
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePostRepo) ReplaceLikes(_ context.Context, id primitive.ObjectID, likes []string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts[i].Likes = likes
			cp := r.posts[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("Post not found")
}

func (r *fakePostRepo) ToggleLikeAtomic(ctx context.Context, id primitive.ObjectID, userID string, add bool) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			likes := r.posts[i].Likes[:0:0]
			for _, l := range r.posts[i].Likes {
				if l != userID {
					likes = append(likes, l)
				}
			}
			if add {
				likes = append(likes, userID)
			}
			r.posts[i].Likes = likes
			cp := r.posts[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("Post not found")
}

func (r *fakePostRepo) AppendComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == postID {
			r.posts[i].Comments = append(r.posts[i].Comments, commentID)
			return nil
		}
	}
	return apperrors.NotFoundf("Post not found")
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment
	writes   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	r.comments = append(r.comments, *comment)
	r.writes++
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			cp := r.comments[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("Comment not found")
}

func (r *fakeCommentRepo) FindByPost(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for i := range r.comments {
		if r.comments[i].PostID == postID {
			out = append(out, r.comments[i])
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ReplaceLikes(_ context.Context, id primitive.ObjectID, likes []string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Likes = likes
			r.writes++
			cp := r.comments[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("Comment not found")
}

func (r *fakeCommentRepo) ReplaceReplyLikes(_ context.Context, commentID, replyID primitive.ObjectID, likes []string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID != commentID {
			continue
		}
		for j := range r.comments[i].Replies {
			if r.comments[i].Replies[j].RID == replyID {
				r.comments[i].Replies[j].Likes = likes
				r.writes++
				cp := r.comments[i]
				return &cp, nil
			}
		}
	}
	return nil, apperrors.NotFoundf("Reply not found")
}

func (r *fakeCommentRepo) PushReply(_ context.Context, commentID primitive.ObjectID, reply models.Reply) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == commentID {
			r.comments[i].Replies = append(r.comments[i].Replies, reply)
			r.writes++
			cp := r.comments[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("Comment not found")
}

func (r *fakeCommentRepo) DeleteByPost(_ context.Context, postID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.comments[:0]
	for i := range r.comments {
		if r.comments[i].PostID != postID {
			kept = append(kept, r.comments[i])
		}
	}
	r.comments = kept
	return nil
}

func (r *fakeCommentRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type fakeFriendRequestRepo struct {
	mu       sync.Mutex
	requests []models.FriendRequest
}

func newFakeFriendRequestRepo() *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{}
}

func (r *fakeFriendRequestRepo) Create(_ context.Context, fr *models.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fr.ID.IsZero() {
		fr.ID = primitive.NewObjectID()
	}
	if fr.RequestStatus == "" {
		fr.RequestStatus = models.RequestPending
	}
	r.requests = append(r.requests, *fr)
	return nil
}

func (r *fakeFriendRequestRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			cp := r.requests[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("No Friend Request Found.")
}

func (r *fakeFriendRequestRepo) FindBetween(_ context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].RequestFrom == from && r.requests[i].RequestTo == to {
			cp := r.requests[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("No Friend Request Found.")
}

func (r *fakeFriendRequestRepo) FindPendingFor(_ context.Context, userID primitive.ObjectID, limit int64) ([]models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FriendRequest
	for i := range r.requests {
		if r.requests[i].RequestTo == userID && r.requests[i].RequestStatus == models.RequestPending {
			out = append(out, r.requests[i])
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeFriendRequestRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].RequestStatus = status
			cp := r.requests[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("No Friend Request Found.")
}

type fakeTokenRepo struct {
	mu            sync.Mutex
	verifications map[string]*models.Verification
	resets        map[string]*models.PasswordReset
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		verifications: map[string]*models.Verification{},
		resets:        map[string]*models.PasswordReset{},
	}
}

func (r *fakeTokenRepo) CreateVerification(_ context.Context, v *models.Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = primitive.NewObjectID()
	cp := *v
	r.verifications[v.UserID.Hex()] = &cp
	return nil
}

func (r *fakeTokenRepo) FindVerification(_ context.Context, userID primitive.ObjectID) (*models.Verification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.verifications[userID.Hex()]
	if !ok {
		return nil, apperrors.NotFoundf("token not found")
	}
	cp := *v
	return &cp, nil
}

func (r *fakeTokenRepo) DeleteVerification(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.verifications, userID.Hex())
	return nil
}

func (r *fakeTokenRepo) CreatePasswordReset(_ context.Context, pr *models.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr.ID = primitive.NewObjectID()
	cp := *pr
	r.resets[pr.UserID.Hex()] = &cp
	return nil
}

func (r *fakeTokenRepo) FindPasswordReset(_ context.Context, userID primitive.ObjectID) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr, ok := r.resets[userID.Hex()]
	if !ok {
		return nil, apperrors.NotFoundf("token not found")
	}
	cp := *pr
	return &cp, nil
}

func (r *fakeTokenRepo) FindPasswordResetByEmail(_ context.Context, email string) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pr := range r.resets {
		if pr.Email == email {
			cp := *pr
			return &cp, nil
		}
	}
	return nil, apperrors.NotFoundf("token not found")
}

func (r *fakeTokenRepo) DeletePasswordReset(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resets, userID.Hex())
	return nil
}

// fakeFriendCache is a plain map cache without TTLs.
type fakeFriendCache struct {
	mu          sync.Mutex
	circles     map[string][]string
	invalidated []string
}

func newFakeFriendCache() *fakeFriendCache {
	return &fakeFriendCache{circles: map[string][]string{}}
}

func (c *fakeFriendCache) Get(_ context.Context, userID string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids, ok := c.circles[userID]
	return ids, ok
}

func (c *fakeFriendCache) Set(_ context.Context, userID string, friendIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.circles[userID] = friendIDs
}

func (c *fakeFriendCache) Invalidate(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.circles, userID)
	c.invalidated = append(c.invalidated, userID)
}

// fakeNotifier records published jobs and events.
type fakeNotifier struct {
	mu     sync.Mutex
	emails []EmailJob
	events []Event
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (n *fakeNotifier) SendEmail(_ context.Context, job EmailJob) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, job)
	return nil
}

func (n *fakeNotifier) PublishEvent(_ context.Context, ev Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	n.events = append(n.events, ev)
	return nil
}
