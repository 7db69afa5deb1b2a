package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/internal/model"
	"devconnector/internal/testkit"
)

func strPtr(s string) *string { return &s }

func newProfileService(t *testing.T) (*ProfileService, *testkit.Store, uint) {
	t.Helper()
	store := testkit.NewStore()
	user := &model.User{Name: "Ada", Email: "ada@example.com", Avatar: "//avatar"}
	require.NoError(t, store.Users().Create(context.Background(), user))

	svc := NewProfileService(store.Profiles())
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, store, user.ID
}

func createProfile(t *testing.T, svc *ProfileService, userID uint) *model.Profile {
	t.Helper()
	p, err := svc.Upsert(context.Background(), userID, ProfileUpdate{
		Status: strPtr("Developer"),
		Skills: strPtr("go, sql ,, docker"),
	})
	require.NoError(t, err)
	return p
}

func TestProfileService_UpsertCreateRequiresStatusAndSkills(t *testing.T) {
	svc, _, userID := newProfileService(t)

	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{Company: strPtr("X")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "status", verr.Fields[0].Param)
	assert.Equal(t, "skills", verr.Fields[1].Param)

	_, err = svc.GetMine(context.Background(), userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_UpsertCreateThenPartialUpdate(t *testing.T) {
	svc, _, userID := newProfileService(t)
	ctx := context.Background()

	created := createProfile(t, svc, userID)
	assert.Equal(t, []string{"go", "sql", "docker"}, created.Skills)
	require.NotNil(t, created.User)
	assert.Equal(t, userID, created.User.ID)
	assert.Equal(t, "Ada", created.User.Name)

	_, err := svc.Upsert(ctx, userID, ProfileUpdate{
		Company: strPtr("Acme"),
		Twitter: strPtr("@ada"),
	})
	require.NoError(t, err)

	got, err := svc.GetMine(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Developer", got.Status)
	assert.Equal(t, []string{"go", "sql", "docker"}, got.Skills)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "@ada", got.Social.Twitter)
	require.NotNil(t, got.User)
	assert.Equal(t, "Ada", got.User.Name)

	_, err = svc.Upsert(ctx, userID, ProfileUpdate{Youtube: strPtr("yt")})
	require.NoError(t, err)
	got, err = svc.GetMine(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "@ada", got.Social.Twitter)
	assert.Equal(t, "yt", got.Social.Youtube)
}

func TestProfileService_UpsertIsIdempotent(t *testing.T) {
	svc, _, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	update := ProfileUpdate{Bio: strPtr("hi"), Skills: strPtr("rust,go")}
	first, err := svc.Upsert(ctx, userID, update)
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, userID, update)
	require.NoError(t, err)

	first.User, second.User = nil, nil
	assert.Equal(t, first, second)
}

func TestProfileService_UpsertRejectsEmptySkillsOnUpdate(t *testing.T) {
	svc, _, userID := newProfileService(t)
	createProfile(t, svc, userID)

	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{Skills: strPtr(" , ")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestProfileService_AddExperienceRequiresProfile(t *testing.T) {
	svc, _, userID := newProfileService(t)

	_, err := svc.AddExperience(context.Background(), userID, ExperienceInput{Title: "Eng", Company: "X", From: "2020"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_AddExperienceValidates(t *testing.T) {
	svc, _, userID := newProfileService(t)
	createProfile(t, svc, userID)

	_, err := svc.AddExperience(context.Background(), userID, ExperienceInput{Title: "Eng", From: "yesterday"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	params := []string{}
	for _, f := range verr.Fields {
		params = append(params, f.Param)
	}
	assert.Equal(t, []string{"company", "from"}, params)
}

func TestProfileService_ExperienceRoundTrip(t *testing.T) {
	svc, _, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	_, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Intern", Company: "Y", From: "2018-06"})
	require.NoError(t, err)
	before, err := svc.GetMine(ctx, userID)
	require.NoError(t, err)

	added, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Eng", Company: "X", From: "2020"})
	require.NoError(t, err)
	require.Len(t, added.Experience, 2)
	assert.Equal(t, "Eng", added.Experience[0].Title)

	removed, err := svc.RemoveExperience(ctx, userID, added.Experience[0].ID)
	require.NoError(t, err)
	assert.Equal(t, before.Experience, removed.Experience)
}

func TestProfileService_RemoveMissingEntryIsNotFound(t *testing.T) {
	svc, _, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	_, err := svc.AddExperience(ctx, userID, ExperienceInput{Title: "Eng", Company: "X", From: "2020"})
	require.NoError(t, err)
	_, err = svc.AddEducation(ctx, userID, EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2014-09-01"})
	require.NoError(t, err)

	_, err = svc.RemoveExperience(ctx, userID, "wrong-id")
	assert.ErrorIs(t, err, ErrExperienceNotFound)
	_, err = svc.RemoveEducation(ctx, userID, "wrong-id")
	assert.ErrorIs(t, err, ErrEducationNotFound)

	got, err := svc.GetMine(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, got.Experience, 1)
	assert.Len(t, got.Education, 1)
}

func TestProfileService_EducationRoundTrip(t *testing.T) {
	svc, _, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	p, err := svc.AddEducation(ctx, userID, EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2014", To: "2018", Current: false})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "id-1", p.Education[0].ID)

	p, err = svc.RemoveEducation(ctx, userID, "id-1")
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestProfileService_GetByUserID(t *testing.T) {
	svc, _, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	got, err := svc.GetByUserID(ctx, fmt.Sprint(userID))
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)

	for _, raw := range []string{"abc", "", "-1", "0", "999"} {
		_, err := svc.GetByUserID(ctx, raw)
		assert.ErrorIs(t, err, ErrProfileNotFound, "raw id %q", raw)
	}
}

func TestProfileService_ListAllJoinsUsers(t *testing.T) {
	svc, store, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	other := &model.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, store.Users().Create(ctx, other))
	createProfile(t, svc, other.ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ada", all[0].User.Name)
	assert.Equal(t, "Bob", all[1].User.Name)
}

func TestProfileService_DeleteAccount(t *testing.T) {
	svc, store, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	require.NoError(t, svc.DeleteAccount(ctx, userID))

	_, err := svc.GetMine(ctx, userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"php", "js", "java"}, SplitSkills("php,js, java,"))
	assert.Empty(t, SplitSkills(""))
	assert.Empty(t, SplitSkills(" , ,"))
}

// deletedAfterRead removes the account right after the profile is read,
// as a concurrent DELETE /profile would.
type deletedAfterRead struct {
	*testkit.ProfileStore
}

func (d deletedAfterRead) GetByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	p, err := d.ProfileStore.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return p, err
	}
	return p, d.ProfileStore.DeleteAccount(ctx, userID)
}

func TestProfileService_WriteAfterAccountDeletionIsNotFound(t *testing.T) {
	svc, store, userID := newProfileService(t)
	ctx := context.Background()
	createProfile(t, svc, userID)

	racing := NewProfileService(deletedAfterRead{store.Profiles()})
	_, err := racing.AddExperience(ctx, userID, ExperienceInput{Title: "Dev", Company: "Acme", From: "2020-01-01"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	got, err := store.Profiles().GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
