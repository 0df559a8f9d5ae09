package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"hanabi_backend/internal/models"
	"hanabi_backend/internal/queue"
	"hanabi_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory doubles over the repository interfaces. They reproduce the
// guard semantics of the real repositories so service behavior under
// races and resubmissions can be exercised without a database.

// ---------------- users ----------------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for key, value := range fields {
		switch key {
		case "nationality":
			user.Nationality = value.(models.Nationality)
		case "nickname":
			user.Nickname = value.(string)
		case "gender":
			user.Gender = value.(models.Gender)
		case "birthdate":
			bd := value.(time.Time)
			user.Birthdate = &bd
		case "city":
			user.City = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "onboarding_completed":
			user.OnboardingCompleted = value.(bool)
		case "onboarding_step":
			user.OnboardingStep = value.(int)
		}
	}
	return nil
}

// setVerified is a test-only shortcut; the real decision path flips the
// flag through UpdateFields inside the review transaction.
func (f *fakeUserRepo) setVerified(userID string, verified bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.IsVerified = verified
	return nil
}

func (f *fakeUserRepo) SetOnboardingStep(userID string, step int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.OnboardingStep = step
	return nil
}

func (f *fakeUserRepo) Delete(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) FindByNationality(nationality models.Nationality, excludeIDs []string, limit, offset int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	excluded := map[string]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var result []models.User
	for _, user := range f.users {
		if user.Nationality == nationality && !excluded[user.ID] && user.Role == models.UserRoleUser {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeUserRepo) CountAll() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

// ---------------- verification ----------------

type fakeVerificationRepo struct {
	mu         sync.Mutex
	users      *fakeUserRepo
	identities map[string]*models.IdentityVerification
	requests   map[string]*models.VerificationRequest
}

func newFakeVerificationRepo(users *fakeUserRepo) *fakeVerificationRepo {
	return &fakeVerificationRepo{
		users:      users,
		identities: map[string]*models.IdentityVerification{},
		requests:   map[string]*models.VerificationRequest{},
	}
}

func (f *fakeVerificationRepo) CreateIdentity(iv *models.IdentityVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	iv.CreatedAt = time.Now()
	f.identities[iv.ID] = iv
	return nil
}

func (f *fakeVerificationRepo) FindIdentityByID(id string) (*models.IdentityVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.identities[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	clone := *iv
	return &clone, nil
}

func (f *fakeVerificationRepo) FindLatestIdentityByUserID(userID string) (*models.IdentityVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.IdentityVerification
	for _, iv := range f.identities {
		if iv.UserID != userID {
			continue
		}
		if latest == nil || iv.CreatedAt.After(latest.CreatedAt) {
			latest = iv
		}
	}
	if latest == nil {
		return nil, repositories.ErrVerificationNotFound
	}
	clone := *latest
	return &clone, nil
}

func (f *fakeVerificationRepo) HasOutstandingIdentity(userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.identities {
		if iv.UserID == userID && iv.Status == models.VerificationStatusSubmitted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVerificationRepo) ListPendingIdentity(limit, offset int) ([]models.IdentityVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.IdentityVerification
	for _, iv := range f.identities {
		if iv.Status == models.VerificationStatusSubmitted {
			clone := *iv
			if user, ok := f.users.users[iv.UserID]; ok {
				uc := *user
				clone.User = &uc
			}
			result = append(result, clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeVerificationRepo) DecideIdentity(id, adminID string, status models.VerificationStatus, reason string) (*models.IdentityVerification, error) {
	f.mu.Lock()
	iv, ok := f.identities[id]
	if !ok {
		f.mu.Unlock()
		return nil, repositories.ErrVerificationNotFound
	}
	if iv.Status != models.VerificationStatusSubmitted {
		f.mu.Unlock()
		return nil, repositories.ErrAlreadyDecided
	}
	now := time.Now()
	iv.Status = status
	iv.RejectionReason = reason
	iv.ReviewedBy = &adminID
	iv.ReviewedAt = &now
	clone := *iv
	f.mu.Unlock()

	if err := f.users.setVerified(iv.UserID, status == models.VerificationStatusApproved); err != nil {
		return nil, err
	}
	return &clone, nil
}

func (f *fakeVerificationRepo) CreateRequest(vr *models.VerificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if vr.ID == "" {
		vr.ID = uuid.NewString()
	}
	vr.CreatedAt = time.Now()
	f.requests[vr.ID] = vr
	return nil
}

func (f *fakeVerificationRepo) FindRequestByID(id string) (*models.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vr, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	clone := *vr
	return &clone, nil
}

func (f *fakeVerificationRepo) FindPendingRequestByUser(userID string, reqType models.RequestType) (*models.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, vr := range f.requests {
		if vr.UserID == userID && vr.Type == reqType && vr.Status == models.RequestStatusPending {
			clone := *vr
			return &clone, nil
		}
	}
	return nil, repositories.ErrVerificationNotFound
}

func (f *fakeVerificationRepo) ListPendingRequests(reqType models.RequestType, limit, offset int) ([]models.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.VerificationRequest
	for _, vr := range f.requests {
		if vr.Type == reqType && vr.Status == models.RequestStatusPending {
			clone := *vr
			if user, ok := f.users.users[vr.UserID]; ok {
				uc := *user
				clone.User = &uc
			}
			result = append(result, clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeVerificationRepo) DecideRequest(id, adminID string, status models.RequestStatus, reason string) (*models.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vr, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	if vr.Status != models.RequestStatusPending {
		return nil, repositories.ErrAlreadyDecided
	}
	now := time.Now()
	vr.Status = status
	vr.RejectionReason = reason
	vr.ReviewedBy = &adminID
	vr.ReviewedAt = &now
	clone := *vr
	return &clone, nil
}

// ---------------- notifications ----------------

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return io.ErrClosedPipe
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if criteria.Unread != nil && *criteria.Unread && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == notificationID {
			now := time.Now()
			n.IsRead = true
			n.ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) DeleteUserNotifications(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var remaining []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			remaining = append(remaining, n)
		}
	}
	f.notifications = remaining
	return nil
}

func (f *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) byUser(userID string) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

// ---------------- profiles ----------------

type fakeProfileRepo struct {
	mu        sync.Mutex
	photos    map[string][]models.ProfilePhoto
	interests map[string][]string
	skills    map[string][]models.LanguageSkill
	profiles  map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		photos:    map[string][]models.ProfilePhoto{},
		interests: map[string][]string{},
		skills:    map[string][]models.LanguageSkill{},
		profiles:  map[string]*models.Profile{},
	}
}

func (f *fakeProfileRepo) AddPhoto(photo *models.ProfilePhoto) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	f.photos[photo.UserID] = append(f.photos[photo.UserID], *photo)
	return nil
}

func (f *fakeProfileRepo) AddPhotos(photos []models.ProfilePhoto) error {
	for i := range photos {
		if err := f.AddPhoto(&photos[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProfileRepo) FindPhotosByUser(userID string) ([]models.ProfilePhoto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProfilePhoto(nil), f.photos[userID]...), nil
}

func (f *fakeProfileRepo) SetPrimaryPhoto(userID, photoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	photos := f.photos[userID]
	for i := range photos {
		photos[i].IsPrimary = photos[i].ID == photoID
	}
	return nil
}

func (f *fakeProfileRepo) DeletePhoto(userID, photoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	photos := f.photos[userID]
	for i := range photos {
		if photos[i].ID == photoID {
			f.photos[userID] = append(photos[:i], photos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeProfileRepo) CountPhotos(userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.photos[userID])), nil
}

func (f *fakeProfileRepo) ReplaceInterests(userID string, names []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interests[userID] = append([]string(nil), names...)
	return nil
}

func (f *fakeProfileRepo) ReplaceLanguageSkills(userID string, skills []models.LanguageSkill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skills[userID] = append([]models.LanguageSkill(nil), skills...)
	return nil
}

func (f *fakeProfileRepo) UpsertProfile(profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) FindProfileByUser(userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *profile
	return &clone, nil
}

// ---------------- matches ----------------

type fakeMatchRepo struct {
	mu      sync.Mutex
	likes   map[string]*models.Like
	matches map[string]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		likes:   map[string]*models.Like{},
		matches: map[string]*models.Match{},
	}
}

func (f *fakeMatchRepo) CreateLike(like *models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.likes {
		if existing.FromUserID == like.FromUserID && existing.ToUserID == like.ToUserID {
			return repositories.ErrLikeAlreadyExists
		}
	}
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	like.CreatedAt = time.Now()
	f.likes[like.ID] = like
	return nil
}

func (f *fakeMatchRepo) FindLikeByID(id string) (*models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	like, ok := f.likes[id]
	if !ok {
		return nil, repositories.ErrLikeNotFound
	}
	clone := *like
	return &clone, nil
}

func (f *fakeMatchRepo) FindPendingLikesTo(userID string) ([]models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Like
	for _, like := range f.likes {
		if like.ToUserID == userID && like.Status == models.LikeStatusPending {
			result = append(result, *like)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) FindLikedUserIDs(fromUserID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, like := range f.likes {
		if like.FromUserID == fromUserID {
			ids = append(ids, like.ToUserID)
		}
	}
	return ids, nil
}

func (f *fakeMatchRepo) DecideLike(id string, status models.LikeStatus) (*models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	like, ok := f.likes[id]
	if !ok {
		return nil, repositories.ErrLikeNotFound
	}
	if like.Status != models.LikeStatusPending {
		return nil, repositories.ErrLikeAlreadyDecided
	}
	now := time.Now()
	like.Status = status
	like.DecidedAt = &now
	clone := *like
	return &clone, nil
}

func (f *fakeMatchRepo) CreateMatch(match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	match.CreatedAt = time.Now()
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) FindMatchByID(id string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *match
	return &clone, nil
}

func (f *fakeMatchRepo) FindMatchesByUser(userID string) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Match
	for _, match := range f.matches {
		if match.HasParticipant(userID) {
			result = append(result, *match)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) FindMatchBetween(userA, userB string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, match := range f.matches {
		if match.HasParticipant(userA) && match.HasParticipant(userB) {
			clone := *match
			return &clone, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

// ---------------- chat ----------------

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []*models.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{}
}

func (f *fakeChatRepo) CreateMessage(message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatRepo) FindMessages(matchID string, limit, offset int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Message
	for _, m := range f.messages {
		if m.MatchID == matchID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeChatRepo) MarkMessagesRead(matchID, readerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, m := range f.messages {
		if m.MatchID == matchID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeChatRepo) GetUnreadCount(matchID, readerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.messages {
		if m.MatchID == matchID && m.SenderID != readerID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeChatRepo) FindLastMessage(matchID string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].MatchID == matchID {
			clone := *f.messages[i]
			return &clone, nil
		}
	}
	return nil, repositories.ErrMessageNotFound
}

// ---------------- storage ----------------

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (f *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = data
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/api/v1/files/" + path, nil
}

func (f *fakeStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://signed.example/" + path, nil
}

// ---------------- producer / broadcaster ----------------

type fakeProducer struct {
	mu     sync.Mutex
	events []queue.DecisionEvent
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{}
}

func (f *fakeProducer) PublishDecision(event queue.DecisionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeProducer) Close() error { return nil }

type fakeBroadcaster struct {
	mu     sync.Mutex
	pushes []string
}

func (f *fakeBroadcaster) PushToUser(userID string, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, userID+":"+event)
}
