package service

import (
	"Atmosphere/internal/api/config"
	"Atmosphere/internal/model"
	appmongo "Atmosphere/internal/pkg/mongo"
	appredis "Atmosphere/internal/pkg/redis"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.UserFollow{},
		&model.Engagement{},
		&model.Startup{},
		&model.Post{},
		&model.Reel{},
		&model.Comment{},
	))
	return db
}

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	appredis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	if config.Cfg == nil {
		config.Cfg = &config.Config{}
	}
	return mr
}

func seedUser(t *testing.T, db *gorm.DB, username string, roleCodes ...string) *model.User {
	t.Helper()

	email := username + "@test.dev"
	password := "hashed"
	user := &model.User{Email: &email, Username: &username, Password: &password}
	require.NoError(t, db.Create(user).Error)

	for _, code := range roleCodes {
		var role model.Role
		err := db.Where("code = ?", code).First(&role).Error
		if err != nil {
			role = model.Role{Code: code, Name: code}
			require.NoError(t, db.Create(&role).Error)
		}
		require.NoError(t, db.Create(&model.UserRole{UserID: user.ID, RoleID: role.ID}).Error)
	}
	return user
}

func seedStartup(t *testing.T, db *gorm.DB, ownerID uint64, name string) *model.Startup {
	t.Helper()

	startup := &model.Startup{OwnerID: ownerID, Name: name, Pitch: "pitch"}
	require.NoError(t, db.Create(startup).Error)
	return startup
}

// fakeNotificationRepo 内存实现，替代 Mongo
type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []*appmongo.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (s *fakeNotificationRepo) CreateNotification(_ context.Context, msg *appmongo.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	s.items = append(s.items, msg)
	return nil
}

func (s *fakeNotificationRepo) GetNotificationList(_ context.Context, userID uint64, unreadOnly bool, limit, offset int64) ([]*appmongo.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []*appmongo.Notification
	for i := len(s.items) - 1; i >= 0; i-- {
		msg := s.items[i]
		if msg.ReceiverID != userID {
			continue
		}
		if unreadOnly && msg.IsRead {
			continue
		}
		list = append(list, msg)
	}
	if offset >= int64(len(list)) {
		return nil, nil
	}
	list = list[offset:]
	if int64(len(list)) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *fakeNotificationRepo) MarkAsRead(_ context.Context, userID uint64, msgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongo.ErrInvalidIndexValue
	}
	for _, msg := range s.items {
		if msg.ID == objectID && msg.ReceiverID == userID {
			msg.IsRead = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range s.items {
		if msg.ReceiverID == userID {
			msg.IsRead = true
		}
	}
	return nil
}

func (s *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, msg := range s.items {
		if msg.ReceiverID == userID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*appmongo.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range s.items {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}
