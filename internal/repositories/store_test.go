package repositories_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdb/internal/models"
	"socialdb/internal/query"
	"socialdb/internal/repositories"
)

func newTestDB(t *testing.T) *repositories.DB {
	t.Helper()
	n := 0
	db, err := repositories.NewDB(repositories.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	require.NoError(t, err)
	require.NoError(t, db.SeedMemberTypes(models.DefaultMemberTypes()))
	return db
}

func strPtr(s string) *string { return &s }

func TestStore_CreateThenFindOne(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	created, err := users.Create(models.CreateUserDTO{FirstName: "A", LastName: "B", Email: "a@b.com"}.ToUser())
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, []string{}, created.SubscribedToUserIDs)

	found, err := users.FindOne(query.Equals("id", created.ID))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created, *found)

	byEmail, err := users.FindOne(query.Equals("email", "a@b.com"))
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	none, err := users.FindOne(query.Equals("email", "nobody@b.com"))
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestStore_FindManyKeepsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	posts := db.Posts()

	for i := 0; i < 300; i++ {
		_, err := posts.Create(models.Post{Title: fmt.Sprintf("t%d", i), Content: "c", UserID: "u1"})
		require.NoError(t, err)
	}
	_, err := posts.Create(models.Post{Title: "other", Content: "c", UserID: "u2"})
	require.NoError(t, err)

	all, err := posts.FindMany(nil)
	require.NoError(t, err)
	require.Len(t, all, 301)
	for i := 0; i < 300; i++ {
		assert.Equal(t, fmt.Sprintf("t%d", i), all[i].Title)
	}

	mine, err := posts.FindMany(query.Equals("userId", "u2"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "other", mine[0].Title)
}

func TestStore_ChangeKeepsOrderAndMergesShallow(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	first, err := users.Create(models.User{FirstName: "A", LastName: "A", Email: "a@x.com", SubscribedToUserIDs: []string{"x"}})
	require.NoError(t, err)
	_, err = users.Create(models.User{FirstName: "B", LastName: "B", Email: "b@x.com"})
	require.NoError(t, err)

	changed, err := users.Change(first.ID, models.ChangeUserDTO{
		LastName:            strPtr("Z"),
		SubscribedToUserIDs: []string{"y", "z"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, changed.ID)
	assert.Equal(t, "A", changed.FirstName)
	assert.Equal(t, "Z", changed.LastName)
	assert.Equal(t, []string{"y", "z"}, changed.SubscribedToUserIDs)

	all, err := users.FindMany(nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, *changed, all[0])
}

func TestStore_ChangeMissingLeavesStoreUnchanged(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	_, err := users.Create(models.User{FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)
	before, err := users.FindMany(nil)
	require.NoError(t, err)

	_, err = users.Change("missing", models.ChangeUserDTO{FirstName: strPtr("X")})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "user with ID missing not found")

	after, err := users.FindMany(nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_Delete(t *testing.T) {
	db := newTestDB(t)
	posts := db.Posts()

	p, err := posts.Create(models.Post{Title: "T", Content: "C", UserID: "u"})
	require.NoError(t, err)

	removed, err := posts.Delete(p.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *removed)

	_, err = posts.Delete(p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = posts.FindByID(p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	n, err := posts.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_DeleteHookCanRefuse(t *testing.T) {
	refused := errors.New("refused")
	var seen []string
	db, err := repositories.NewDB(repositories.WithDeleteHook(func(table, id string) error {
		seen = append(seen, table+"/"+id)
		if table == "posts" {
			return refused
		}
		return nil
	}))
	require.NoError(t, err)

	p, err := db.Posts().Create(models.Post{Title: "T", Content: "C", UserID: "u"})
	require.NoError(t, err)
	_, err = db.Posts().Delete(p.ID)
	assert.ErrorIs(t, err, refused)
	_, err = db.Posts().FindByID(p.ID)
	assert.NoError(t, err)

	u, err := db.Users().Create(models.User{FirstName: "a", LastName: "b", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = db.Users().Delete(u.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"posts/" + p.ID, "users/" + u.ID}, seen)
}

func TestStore_SnapshotsDoNotAlias(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	input := models.User{FirstName: "A", LastName: "B", Email: "a@b.com", SubscribedToUserIDs: []string{"s1"}}
	created, err := users.Create(input)
	require.NoError(t, err)

	input.SubscribedToUserIDs[0] = "mutated-input"
	created.SubscribedToUserIDs[0] = "mutated-result"
	created.SubscribedToUserIDs = append(created.SubscribedToUserIDs, "pushed")

	found, err := users.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, found.SubscribedToUserIDs)

	listed, err := users.FindMany(nil)
	require.NoError(t, err)
	listed[0].SubscribedToUserIDs[0] = "mutated-listing"

	again, err := users.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, again.SubscribedToUserIDs)

	profile, err := db.Profiles().Create(models.Profile{City: strPtr("Riga"), MemberTypeID: "basic", UserID: created.ID})
	require.NoError(t, err)
	*profile.City = "Oslo"
	stored, err := db.Profiles().FindByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riga", *stored.City)
}

func TestStore_InsertKeepsIDAndRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)

	basic, err := db.MemberTypes().FindByID(models.MemberTypeBasic)
	require.NoError(t, err)
	assert.Equal(t, 20, basic.MonthPostsLimit)

	_, err = db.MemberTypes().Insert(models.MemberType{ID: models.MemberTypeBasic})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = db.MemberTypes().Insert(models.MemberType{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestStore_UnknownFieldFails(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Users().FindMany(query.Equals("nickname", "x"))
	assert.ErrorIs(t, err, query.ErrUnknownField)
}

func TestDB_UpdateRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	user, err := db.Users().Create(models.User{FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)
	post, err := db.Posts().Create(models.Post{Title: "T", Content: "C", UserID: user.ID})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.Update(func(tx *repositories.Tx) error {
		if _, err := tx.Posts().Delete(post.ID); err != nil {
			return err
		}
		if _, err := tx.Users().Delete(user.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = db.Posts().FindByID(post.ID)
	assert.NoError(t, err)
	_, err = db.Users().FindByID(user.ID)
	assert.NoError(t, err)
}

func TestDB_ViewRejectsWrites(t *testing.T) {
	db := newTestDB(t)
	err := db.View(func(tx *repositories.Tx) error {
		_, err := tx.Users().Create(models.User{FirstName: "A"})
		return err
	})
	assert.Error(t, err)

	n, err := db.Users().Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDB_SnapshotIsStable(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Users().Create(models.User{FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)

	snap := db.Snapshot()
	_, err = db.Users().Create(models.User{FirstName: "C", LastName: "D", Email: "c@d.com"})
	require.NoError(t, err)

	n, err := snap.Users().Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = db.Users().Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_ConcurrentReadModifyWriteLosesNoUpdates(t *testing.T) {
	db, err := repositories.NewDB()
	require.NoError(t, err)
	target, err := db.Users().Create(models.User{FirstName: "T", LastName: "T", Email: "t@t.com"})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := db.Update(func(tx *repositories.Tx) error {
				u, err := tx.Users().FindByID(target.ID)
				if err != nil {
					return err
				}
				ids := append(u.SubscribedToUserIDs, fmt.Sprintf("follower-%d", i))
				_, err = tx.Users().Change(target.ID, models.ChangeUserDTO{SubscribedToUserIDs: ids})
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	final, err := db.Users().FindByID(target.ID)
	require.NoError(t, err)
	assert.Len(t, final.SubscribedToUserIDs, workers)
}
