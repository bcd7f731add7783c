package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantio/quadrant-api/internal/domain"
	"github.com/quadrantio/quadrant-api/internal/platform/postgres"
	"github.com/quadrantio/quadrant-api/internal/store"
	"github.com/quadrantio/quadrant-api/internal/testdb"
)

// openTestDB opens a migrated test database with all rows cleared.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := testdb.Open(t)
	testdb.Reset(t, db)
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(
		fmt.Sprintf("%s@example.com", username),
		username,
		"Test", "User",
		"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		"",
	)
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresUserStore(db).Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func draft(title string) domain.TaskDraft {
	return domain.TaskDraft{
		Title:       title,
		Description: "some details",
		Priority:    3,
		Category:    domain.CategoryDo,
	}
}

func TestUserStoreCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userStore := postgres.NewPostgresUserStore(db)

	created := createTestUser(t, db, "alice")

	got, err := userStore.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsActive)
	assert.Equal(t, domain.DefaultRole, got.Role)
	assert.NotEmpty(t, got.HashedPassword)

	_, err = userStore.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreDuplicates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userStore := postgres.NewPostgresUserStore(db)

	createTestUser(t, db, "alice")

	dupEmail, err := domain.NewUser("alice@example.com", "alice2", "", "", "hash", "")
	require.NoError(t, err)
	assert.ErrorIs(t, userStore.Create(ctx, dupEmail), store.ErrEmailExists)

	dupUsername, err := domain.NewUser("other@example.com", "alice", "", "", "hash", "")
	require.NoError(t, err)
	assert.ErrorIs(t, userStore.Create(ctx, dupUsername), store.ErrUsernameExists)
}

func TestTaskStoreCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	taskStore := postgres.NewPostgresTaskStore(db)

	owner := createTestUser(t, db, "alice")
	now := time.Now().UTC().Truncate(time.Microsecond)

	task := domain.NewTask(owner.ID, draft("Buy milk"), now)
	require.NoError(t, taskStore.Create(ctx, task))
	require.NotZero(t, task.ID)

	got, err := taskStore.GetByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.True(t, got.CreatedAt.Equal(now))

	// Full replacement of mutable fields.
	later := now.Add(time.Minute)
	next := draft("Buy oat milk")
	next.Complete = true
	got.Apply(next, later)
	require.NoError(t, taskStore.Update(ctx, got))

	updated, err := taskStore.GetByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.True(t, updated.Complete)
	assert.True(t, updated.CreatedAt.Equal(now), "created_at must not change")
	assert.True(t, updated.UpdatedAt.Equal(later), "updated_at must refresh")

	require.NoError(t, taskStore.Delete(ctx, owner.ID, task.ID))
	_, err = taskStore.GetByID(ctx, owner.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreOwnershipCollapsesToNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	taskStore := postgres.NewPostgresTaskStore(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	task := domain.NewTask(alice.ID, draft("Alice's task"), time.Now().UTC())
	require.NoError(t, taskStore.Create(ctx, task))

	// Bob can neither read, update nor delete Alice's task.
	_, err := taskStore.GetByID(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	hijack := *task
	hijack.OwnerID = bob.ID
	assert.ErrorIs(t, taskStore.Update(ctx, &hijack), store.ErrTaskNotFound)

	assert.ErrorIs(t, taskStore.Delete(ctx, bob.ID, task.ID), store.ErrTaskNotFound)

	// The task is untouched for Alice.
	_, err = taskStore.GetByID(ctx, alice.ID, task.ID)
	assert.NoError(t, err)
}

func TestTaskStoreListFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	taskStore := postgres.NewPostgresTaskStore(db)

	owner := createTestUser(t, db, "alice")
	now := time.Now().UTC()

	seed := []struct {
		title    string
		category domain.Category
		complete bool
		priority int
	}{
		{"one", domain.CategoryDo, true, 1},
		{"two", domain.CategoryDo, false, 2},
		{"three", domain.CategorySchedule, true, 1},
		{"four", domain.CategoryEliminate, false, 5},
	}
	for _, s := range seed {
		task := domain.NewTask(owner.ID, domain.TaskDraft{
			Title:       s.title,
			Description: "details",
			Priority:    s.priority,
			Complete:    s.complete,
			Category:    s.category,
		}, now)
		require.NoError(t, taskStore.Create(ctx, task))
	}

	all, err := taskStore.List(ctx, owner.ID, store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "listing is ordered by id")
	}

	completed := true
	done, err := taskStore.List(ctx, owner.ID, store.TaskFilter{Completed: &completed})
	require.NoError(t, err)
	assert.Len(t, done, 2)

	cat := domain.CategoryDo
	doneDo, err := taskStore.List(ctx, owner.ID, store.TaskFilter{Completed: &completed, Category: &cat})
	require.NoError(t, err)
	require.Len(t, doneDo, 1, "filters compose with AND")
	assert.Equal(t, "one", doneDo[0].Title)

	priority := 1
	p1, err := taskStore.List(ctx, owner.ID, store.TaskFilter{Priority: &priority})
	require.NoError(t, err)
	assert.Len(t, p1, 2)

	// Another user sees nothing.
	bob := createTestUser(t, db, "bob")
	empty, err := taskStore.List(ctx, bob.ID, store.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
