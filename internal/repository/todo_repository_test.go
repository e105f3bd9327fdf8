package repository

import (
	"testing"
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TodoRepositoryTestSuite defines the test suite for GormTodoRepository
type TodoRepositoryTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repo   TodoRepository
	userID uint64
}

// SetupTest runs before each test
func (suite *TodoRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Todo{},
	)
	suite.Require().NoError(err)

	user := models.User{Email: "test@example.com", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(&user).Error)
	suite.userID = user.ID

	suite.repo = NewTodoRepository(suite.db)
}

// TearDownTest runs after each test
func (suite *TodoRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TodoRepositoryTestSuite) createTodo(todo models.Todo) models.Todo {
	if todo.UserID == 0 {
		todo.UserID = suite.userID
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	if todo.Recurrence == "" {
		todo.Recurrence = models.RecurrenceNone
	}
	suite.Require().NoError(suite.repo.Create(&todo))
	return todo
}

func (suite *TodoRepositoryTestSuite) TestFindByID_ScopedToOwner() {
	todo := suite.createTodo(models.Todo{Title: "mine"})

	found, err := suite.repo.FindByID(todo.ID, suite.userID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "mine", found.Title)

	_, err = suite.repo.FindByID(todo.ID, suite.userID+1)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *TodoRepositoryTestSuite) TestList_TagMatchIsExact() {
	tagged := suite.createTodo(models.Todo{Title: "a", Tags: models.TagList{"work"}})
	suite.createTodo(models.Todo{Title: "b", Tags: models.TagList{"homework"}})

	todos, total, err := suite.repo.List(TodoFilter{UserID: suite.userID, Tag: "work"})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(todos, 1)
	assert.Equal(suite.T(), tagged.ID, todos[0].ID)
}

func (suite *TodoRepositoryTestSuite) TestList_SortByTitle() {
	suite.createTodo(models.Todo{Title: "banana"})
	suite.createTodo(models.Todo{Title: "apple"})
	suite.createTodo(models.Todo{Title: "cherry"})

	todos, _, err := suite.repo.List(TodoFilter{
		UserID:    suite.userID,
		SortBy:    SortByTitle,
		SortOrder: SortAsc,
	})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 3)
	assert.Equal(suite.T(), "apple", todos[0].Title)
	assert.Equal(suite.T(), "banana", todos[1].Title)
	assert.Equal(suite.T(), "cherry", todos[2].Title)
}

func (suite *TodoRepositoryTestSuite) TestList_TotalIgnoresPagination() {
	for _, title := range []string{"a", "b", "c"} {
		suite.createTodo(models.Todo{Title: title})
	}

	todos, total, err := suite.repo.List(TodoFilter{
		UserID: suite.userID,
		Page:   1,
		Limit:  2,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), total)
	assert.Len(suite.T(), todos, 2)
}

func (suite *TodoRepositoryTestSuite) TestList_TiesBrokenByID() {
	created := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	first := suite.createTodo(models.Todo{Title: "same", CreatedAt: created})
	second := suite.createTodo(models.Todo{Title: "same", CreatedAt: created})

	todos, _, err := suite.repo.List(TodoFilter{
		UserID:    suite.userID,
		SortBy:    SortByCreatedAt,
		SortOrder: SortDesc,
	})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 2)
	assert.Equal(suite.T(), first.ID, todos[0].ID)
	assert.Equal(suite.T(), second.ID, todos[1].ID)
}

func (suite *TodoRepositoryTestSuite) TestFindDueSoon_OrderedByDueDate() {
	now := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	later := now.Add(2 * time.Hour)
	sooner := now.Add(1 * time.Hour)

	second := suite.createTodo(models.Todo{Title: "later", DueDate: &later})
	first := suite.createTodo(models.Todo{Title: "sooner", DueDate: &sooner})
	suite.createTodo(models.Todo{Title: "no due date"})

	todos, err := suite.repo.FindDueSoon(suite.userID, now, now.Add(3*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(todos, 2)
	assert.Equal(suite.T(), first.ID, todos[0].ID)
	assert.Equal(suite.T(), second.ID, todos[1].ID)
}

func (suite *TodoRepositoryTestSuite) TestDelete_ReportsWhetherRowExisted() {
	todo := suite.createTodo(models.Todo{Title: "x"})

	deleted, err := suite.repo.Delete(todo.ID, suite.userID)
	suite.Require().NoError(err)
	assert.True(suite.T(), deleted)

	deleted, err = suite.repo.Delete(todo.ID, suite.userID)
	suite.Require().NoError(err)
	assert.False(suite.T(), deleted)
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TodoRepositoryTestSuite))
}
