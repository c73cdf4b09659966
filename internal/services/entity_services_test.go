package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdb/internal/models"
)

func TestProfileService_Create(t *testing.T) {
	f := newFixture(t, nil)
	u := f.user(t, "a")

	p := f.profile(t, u.ID, models.MemberTypeBusiness)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, "City of "+u.ID, *p.City)
	assert.Nil(t, p.Avatar)

	_, err := f.profiles.Create(models.CreateProfileDTO{MemberTypeID: models.MemberTypeBasic, UserID: u.ID})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = f.profiles.Create(models.CreateProfileDTO{MemberTypeID: models.MemberTypeBasic, UserID: "ghost"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	other := f.user(t, "b")
	_, err = f.profiles.Create(models.CreateProfileDTO{MemberTypeID: "platinum", UserID: other.ID})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestProfileService_ChangeAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	u := f.user(t, "a")
	p := f.profile(t, u.ID, models.MemberTypeBasic)

	changed, err := f.profiles.Change(p.ID, models.ChangeProfileDTO{
		Avatar:       strPtr("https://example.com/a.png"),
		MemberTypeID: strPtr(models.MemberTypeBusiness),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", *changed.Avatar)
	assert.Equal(t, models.MemberTypeBusiness, changed.MemberTypeID)
	assert.Equal(t, *p.City, *changed.City)
	assert.Equal(t, u.ID, changed.UserID)

	_, err = f.profiles.Change(p.ID, models.ChangeProfileDTO{MemberTypeID: strPtr("platinum")})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.profiles.Change("missing", models.ChangeProfileDTO{City: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	removed, err := f.profiles.Delete(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, removed.ID)

	_, err = f.profiles.GetByID(p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostService(t *testing.T) {
	f := newFixture(t, nil)
	u := f.user(t, "a")
	p1 := f.post(t, u.ID, "first")
	p2 := f.post(t, u.ID, "second")

	_, err := f.posts.Create(models.CreatePostDTO{Title: "x", Content: "y", UserID: "ghost"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	mine, err := f.posts.GetByUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Post{*p1, *p2}, mine)

	changed, err := f.posts.Change(p1.ID, models.ChangePostDTO{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", changed.Title)
	assert.Equal(t, p1.Content, changed.Content)

	_, err = f.posts.Change("missing", models.ChangePostDTO{Title: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.posts.Delete(p2.ID)
	require.NoError(t, err)
	all, err := f.posts.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemberTypeService(t *testing.T) {
	f := newFixture(t, nil)

	all, err := f.memberTypes.GetAll()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMemberTypes(), all)

	limit := 40
	changed, err := f.memberTypes.Change(models.MemberTypeBasic, models.ChangeMemberTypeDTO{MonthPostsLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 40, changed.MonthPostsLimit)
	assert.Equal(t, 0, changed.Discount)

	_, err = f.memberTypes.Change("platinum", models.ChangeMemberTypeDTO{MonthPostsLimit: &limit})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.memberTypes.GetByID("platinum")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
