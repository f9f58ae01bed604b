package repository

import (
	"context"
	"testing"
	"time"

	"github.com/h4ks-com/expense-tracker/internal/database"
	"github.com/h4ks-com/expense-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RepositorySuite runs the same store contract against whatever database
// newDB opens.
type RepositorySuite struct {
	suite.Suite
	newDB    func(t *testing.T) *gorm.DB
	db       *gorm.DB
	users    *UserRepository
	expenses *ExpenseRepository
	ctx      context.Context
}

func (s *RepositorySuite) SetupTest() {
	s.db = s.newDB(s.T())
	require.NoError(s.T(), database.Migrate(s.db))
	s.users = NewUserRepository(s.db)
	s.expenses = NewExpenseRepository(s.db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) createUser(email, username string) *models.User {
	user := &models.User{Email: email, Username: username, PasswordHash: "hash"}
	require.NoError(s.T(), s.users.Create(s.ctx, user))
	return user
}

func (s *RepositorySuite) createExpense(userID uint, cents int64, date models.Date, category string) *models.Expense {
	expense := &models.Expense{
		UserID:          userID,
		Amount:          models.Amount(cents),
		TransactionDate: date,
		Category:        category,
		Description:     category + " expense",
	}
	require.NoError(s.T(), s.expenses.Create(s.ctx, expense))
	return expense
}

func (s *RepositorySuite) TestUserCreateAndFind() {
	user := s.createUser("a@x.com", "a")
	assert.NotZero(s.T(), user.ID)

	byEmail, err := s.users.FindByEmail(s.ctx, "a@x.com")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), byEmail)
	assert.Equal(s.T(), user.ID, byEmail.ID)
	assert.Equal(s.T(), "hash", byEmail.PasswordHash)

	byUsername, err := s.users.FindByUsername(s.ctx, "a")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), byUsername)
	assert.Equal(s.T(), user.ID, byUsername.ID)
}

func (s *RepositorySuite) TestUserNotFound() {
	user, err := s.users.FindByEmail(s.ctx, "missing@x.com")
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), user)

	user, err = s.users.FindByUsername(s.ctx, "missing")
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), user)
}

func (s *RepositorySuite) TestUserDuplicateEmail() {
	s.createUser("a@x.com", "a")

	err := s.users.Create(s.ctx, &models.User{Email: "a@x.com", Username: "other", PasswordHash: "hash"})
	assert.ErrorIs(s.T(), err, ErrDuplicate)
}

func (s *RepositorySuite) TestFindByUsernameReturnsOldest() {
	first := s.createUser("one@x.com", "shared")
	s.createUser("two@x.com", "shared")

	user, err := s.users.FindByUsername(s.ctx, "shared")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first.ID, user.ID)
}

func (s *RepositorySuite) TestExpenseRoundTrip() {
	user := s.createUser("a@x.com", "a")
	created := s.createExpense(user.ID, 1250, models.NewDate(2024, time.May, 1), "food")

	expenses, err := s.expenses.FindByUserID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), expenses, 1)
	assert.Equal(s.T(), created.ID, expenses[0].ID)
	assert.Equal(s.T(), models.Amount(1250), expenses[0].Amount)
	assert.Equal(s.T(), "2024-05-01", expenses[0].TransactionDate.String())
	assert.Equal(s.T(), "food", expenses[0].Category)
}

func (s *RepositorySuite) TestExpensesAreOwnerScoped() {
	alice := s.createUser("alice@x.com", "alice")
	bob := s.createUser("bob@x.com", "bob")
	s.createExpense(alice.ID, 100, models.NewDate(2024, time.January, 1), "food")
	bobExpense := s.createExpense(bob.ID, 200, models.NewDate(2024, time.January, 2), "rent")

	aliceExpenses, err := s.expenses.FindByUserID(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), aliceExpenses, 1)
	assert.Equal(s.T(), alice.ID, aliceExpenses[0].UserID)

	updated, err := s.expenses.Update(s.ctx, bobExpense.ID, alice.ID, models.Expense{
		Amount:          999,
		TransactionDate: models.NewDate(2024, time.February, 1),
		Category:        "stolen",
		Description:     "nope",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), updated)

	deleted, err := s.expenses.Delete(s.ctx, bobExpense.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), deleted)

	bobExpenses, err := s.expenses.FindByUserID(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), bobExpenses, 1)
	assert.Equal(s.T(), models.Amount(200), bobExpenses[0].Amount)
	assert.Equal(s.T(), "rent", bobExpenses[0].Category)
}

func (s *RepositorySuite) TestExpenseUpdateAndDelete() {
	user := s.createUser("a@x.com", "a")
	expense := s.createExpense(user.ID, 100, models.NewDate(2024, time.January, 1), "food")

	updated, err := s.expenses.Update(s.ctx, expense.ID, user.ID, models.Expense{
		Amount:          450,
		TransactionDate: models.NewDate(2024, time.June, 9),
		Category:        "travel",
		Description:     "train",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), updated)

	expenses, err := s.expenses.FindByUserID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), expenses, 1)
	assert.Equal(s.T(), models.Amount(450), expenses[0].Amount)
	assert.Equal(s.T(), "2024-06-09", expenses[0].TransactionDate.String())
	assert.Equal(s.T(), "travel", expenses[0].Category)
	assert.Equal(s.T(), "train", expenses[0].Description)

	deleted, err := s.expenses.Delete(s.ctx, expense.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), deleted)

	expenses, err = s.expenses.FindByUserID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), expenses)
	assert.NotNil(s.T(), expenses)
}

func (s *RepositorySuite) TestHistoryOrderedByDateDescending() {
	user := s.createUser("a@x.com", "a")
	other := s.createUser("b@x.com", "b")
	s.createExpense(user.ID, 100, models.NewDate(2024, time.January, 1), "jan")
	s.createExpense(user.ID, 300, models.NewDate(2024, time.March, 1), "mar")
	s.createExpense(user.ID, 200, models.NewDate(2024, time.February, 1), "feb")
	s.createExpense(other.ID, 500, models.NewDate(2024, time.December, 1), "other")

	history, err := s.expenses.History(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), history, 3)

	assert.Equal(s.T(), "2024-03-01", history[0].Date.String())
	assert.Equal(s.T(), "mar", history[0].Category)
	assert.Equal(s.T(), models.Amount(300), history[0].Amount)
	assert.Equal(s.T(), "mar expense", history[0].Description)
	assert.Equal(s.T(), "2024-02-01", history[1].Date.String())
	assert.Equal(s.T(), "2024-01-01", history[2].Date.String())
}

func (s *RepositorySuite) TestHistoryEmpty() {
	user := s.createUser("a@x.com", "a")

	history, err := s.expenses.History(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), history)
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositorySuite{
		newDB: func(t *testing.T) *gorm.DB {
			db, err := database.Connect(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { database.Close(db) })
			return db
		},
	})
}
