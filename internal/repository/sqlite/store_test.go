package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textshare/textshare/internal/model"
	"github.com/textshare/textshare/internal/repository"
)

func newTestStore(t *testing.T) (context.Context, *Store) {
	t.Helper()

	ctx := context.Background()
	store, err := New(ctx, ":memory:", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return ctx, store
}

func createUser(t *testing.T, ctx context.Context, store *Store, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, store.CreateUser(ctx, user))
	return user
}

func TestStore_CreateUser(t *testing.T) {
	ctx, store := newTestStore(t)

	user := createUser(t, ctx, store, "a@x.com")
	assert.Positive(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	ctx, store := newTestStore(t)

	createUser(t, ctx, store, "a@x.com")

	err := store.CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestStore_GetUserByEmail_CaseSensitive(t *testing.T) {
	ctx, store := newTestStore(t)

	createUser(t, ctx, store, "a@x.com")

	_, err := store.GetUserByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStore_CreateUser_Concurrent(t *testing.T) {
	ctx, store := newTestStore(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.CreateUser(ctx, &model.User{Email: "race@x.com", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrEmailExists)
	}
	assert.Equal(t, 1, created)
}

func TestStore_PasteLifecycle(t *testing.T) {
	ctx, store := newTestStore(t)

	owner := createUser(t, ctx, store, "a@x.com")
	paste := &model.Paste{UUID: uuid.NewString(), Content: "  hello\n", OwnerID: &owner.ID}
	require.NoError(t, store.CreatePaste(ctx, paste))
	assert.Positive(t, paste.ID)

	got, err := store.GetPasteByUUID(ctx, paste.UUID)
	require.NoError(t, err)
	assert.Equal(t, "  hello\n", got.Content)
	assert.True(t, got.IsOwnedBy(owner.ID))

	require.NoError(t, store.DeletePasteForOwner(ctx, paste.UUID, owner.ID))

	_, err = store.GetPasteByUUID(ctx, paste.UUID)
	assert.ErrorIs(t, err, repository.ErrPasteNotFound)

	err = store.DeletePasteForOwner(ctx, paste.UUID, owner.ID)
	assert.ErrorIs(t, err, repository.ErrPasteNotFound)
}

func TestStore_AnonymousPaste(t *testing.T) {
	ctx, store := newTestStore(t)

	paste := &model.Paste{UUID: uuid.NewString(), Content: "anon"}
	require.NoError(t, store.CreatePaste(ctx, paste))

	got, err := store.GetPasteByUUID(ctx, paste.UUID)
	require.NoError(t, err)
	assert.True(t, got.IsAnonymous())
}

func TestStore_CreatePaste_DuplicateUUID(t *testing.T) {
	ctx, store := newTestStore(t)

	id := uuid.NewString()
	require.NoError(t, store.CreatePaste(ctx, &model.Paste{UUID: id, Content: "one"}))

	err := store.CreatePaste(ctx, &model.Paste{UUID: id, Content: "two"})
	assert.ErrorIs(t, err, repository.ErrPasteUUIDTaken)
}

func TestStore_ListPastesByOwner(t *testing.T) {
	ctx, store := newTestStore(t)

	alice := createUser(t, ctx, store, "alice@x.com")
	bob := createUser(t, ctx, store, "bob@x.com")

	for _, content := range []string{"A", "B", "C"} {
		require.NoError(t, store.CreatePaste(ctx, &model.Paste{UUID: uuid.NewString(), Content: content, OwnerID: &alice.ID}))
	}
	require.NoError(t, store.CreatePaste(ctx, &model.Paste{UUID: uuid.NewString(), Content: "bob's", OwnerID: &bob.ID}))
	require.NoError(t, store.CreatePaste(ctx, &model.Paste{UUID: uuid.NewString(), Content: "anon"}))

	pastes, err := store.ListPastesByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, pastes, 3)

	var contents []string
	for _, p := range pastes {
		contents = append(contents, p.Content)
	}
	assert.Equal(t, []string{"C", "B", "A"}, contents)

	empty, err := store.ListPastesByOwner(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStore_DeletePasteForOwner_WrongOwner(t *testing.T) {
	ctx, store := newTestStore(t)

	alice := createUser(t, ctx, store, "alice@x.com")
	bob := createUser(t, ctx, store, "bob@x.com")

	paste := &model.Paste{UUID: uuid.NewString(), Content: "mine", OwnerID: &alice.ID}
	require.NoError(t, store.CreatePaste(ctx, paste))

	err := store.DeletePasteForOwner(ctx, paste.UUID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrPasteNotFound)

	_, err = store.GetPasteByUUID(ctx, paste.UUID)
	assert.NoError(t, err, "paste must survive a delete by another user")
}

func TestStore_DeletePasteForOwner_Anonymous(t *testing.T) {
	ctx, store := newTestStore(t)

	alice := createUser(t, ctx, store, "alice@x.com")
	paste := &model.Paste{UUID: uuid.NewString(), Content: "anon"}
	require.NoError(t, store.CreatePaste(ctx, paste))

	err := store.DeletePasteForOwner(ctx, paste.UUID, alice.ID)
	assert.ErrorIs(t, err, repository.ErrPasteNotFound)
}

func TestStore_LargeContent(t *testing.T) {
	ctx, store := newTestStore(t)

	content := fmt.Sprintf("%0100000d", 7)
	paste := &model.Paste{UUID: uuid.NewString(), Content: content}
	require.NoError(t, store.CreatePaste(ctx, paste))

	got, err := store.GetPasteByUUID(ctx, paste.UUID)
	require.NoError(t, err)
	assert.Equal(t, content, got.Content)
}
