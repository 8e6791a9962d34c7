package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFollowService(t *testing.T, db *gorm.DB) UserFollowService {
	t.Helper()
	newTestRedis(t)

	userRepo := repository.NewUserRepo(db)
	userService := NewUserService(
		userRepo,
		repository.NewRoleRepo(db),
		repository.NewUserRolesRepo(db),
		NewOtpServiceWithSender(func(string, string) error { return nil }),
	)
	return NewUserFollowService(repository.NewUserFollowRepo(db), userRepo, userService)
}

func TestFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	counts, err := svc.GetFollowCounts(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Followers)
	assert.Equal(t, int64(0), counts.Following)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	assert.ErrorIs(t, svc.Unfollow(ctx, alice.ID, bob.ID), ErrFollowNotFound)
}

func TestFollowRejectsSelfAndDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	assert.ErrorIs(t, svc.Follow(ctx, alice.ID, alice.ID), ErrSelfFollow)

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, svc.Follow(ctx, alice.ID, bob.ID), ErrFollowDuplicate)
}

func TestFollowUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)

	alice := seedUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(context.Background(), alice.ID, 999), ErrUserNotFound)
}

func TestGetFollowingListFallsBackToDB(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, alice.ID, carol.ID))

	resp, err := svc.GetFollowingList(ctx, alice.ID, &dto.PageQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.List, 2)

	names := []string{resp.List[0].Username, resp.List[1].Username}
	assert.Contains(t, names, "bob")
	assert.Contains(t, names, "carol")
}

func TestIsFollowing(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	ok, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	ok, err = svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListFollowingAmong(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	ids, err := svc.ListFollowingAmong(ctx, alice.ID, []uint64{bob.ID, carol.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint64{bob.ID}, ids)
}
