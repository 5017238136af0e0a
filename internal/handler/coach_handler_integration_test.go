package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/fitbook/fitbook/internal/handler"
	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/internal/testutil"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CoachHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *CoachHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	coachRepo := repository.NewCoachRepository(s.testDB.DB)
	courseRepo := repository.NewCourseRepository(s.testDB.DB)

	coachService := service.NewCoachService(coachRepo, userRepo, courseRepo)
	coachHandler := handler.NewCoachHandler(coachService)

	s.router = gin.New()
	coaches := s.router.Group("/api/coaches")
	{
		coaches.GET("", coachHandler.GetCoaches)
		coaches.GET("/:coachId", coachHandler.GetCoach)
		coaches.GET("/:coachId/courses", coachHandler.GetCoachCourses)
	}
}

func (s *CoachHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *CoachHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *CoachHandlerIntegrationTestSuite) seedCoach(name string) (*models.User, *models.Coach) {
	user, err := testutil.CreateTestUser(name, uuid.NewString()+"@example.com", "Aa123456", models.RoleCoach)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)

	coach := testutil.CreateTestCoach(user.ID, 5, "資深教練")
	s.Require().NoError(s.testDB.DB.Create(coach).Error)
	return user, coach
}

func (s *CoachHandlerIntegrationTestSuite) listCoaches(query string) []struct {
	ID   string `json:"id"`
	Name string `json:"name"`
} {
	w, env := doJSON(s.router, http.MethodGet, "/api/coaches"+query, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	return data
}

func (s *CoachHandlerIntegrationTestSuite) TestGetCoaches() {
	s.seedCoach("教練一")
	s.seedCoach("教練二")

	data := s.listCoaches("")
	assert.Len(s.T(), data, 2)
	for _, row := range data {
		assert.NotEmpty(s.T(), row.ID)
		assert.NotEmpty(s.T(), row.Name)
	}
}

func (s *CoachHandlerIntegrationTestSuite) TestGetCoachesPagination() {
	for i := 0; i < 12; i++ {
		s.seedCoach(fmt.Sprintf("教練%d", i))
	}

	// Defaults to 10 per page
	assert.Len(s.T(), s.listCoaches(""), 10)
	assert.Len(s.T(), s.listCoaches("?per=10&page=2"), 2)
	assert.Len(s.T(), s.listCoaches("?per=5&page=1"), 5)

	// Junk params fall back to the defaults
	assert.Len(s.T(), s.listCoaches("?per=abc&page=-1"), 10)
}

func (s *CoachHandlerIntegrationTestSuite) TestGetCoach() {
	user, coach := s.seedCoach("教練小明")

	w, env := doJSON(s.router, http.MethodGet, "/api/coaches/"+coach.ID.String(), nil, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var data struct {
		User struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
		Coach struct {
			ID              string `json:"id"`
			ExperienceYears int    `json:"experience_years"`
		} `json:"coach"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	assert.Equal(s.T(), user.Name, data.User.Name)
	assert.Equal(s.T(), "COACH", data.User.Role)
	assert.Equal(s.T(), coach.ID.String(), data.Coach.ID)
	assert.Equal(s.T(), 5, data.Coach.ExperienceYears)
}

func (s *CoachHandlerIntegrationTestSuite) TestGetCoachNotFound() {
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		w, env := doJSON(s.router, http.MethodGet, "/api/coaches/"+id, nil, "")
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "找不到該教練", env.Message)
	}
}

func (s *CoachHandlerIntegrationTestSuite) TestGetCoachCourses() {
	user, coach := s.seedCoach("教練小明")

	skill := testutil.CreateTestSkill("瑜伽")
	s.Require().NoError(s.testDB.DB.Create(skill).Error)
	course := testutil.CreateTestCourse(user.ID, skill.ID, "早晨瑜伽", 10)
	s.Require().NoError(s.testDB.DB.Create(course).Error)

	w, env := doJSON(s.router, http.MethodGet, "/api/coaches/"+coach.ID.String()+"/courses", nil, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var data []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price int    `json:"price"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().Len(data, 1)
	assert.Equal(s.T(), course.ID.String(), data[0].ID)
	assert.Equal(s.T(), "早晨瑜伽", data[0].Name)
	assert.Equal(s.T(), 200, data[0].Price)
}

func (s *CoachHandlerIntegrationTestSuite) TestGetCoachCoursesUnknownCoach() {
	w, env := doJSON(s.router, http.MethodGet, "/api/coaches/"+uuid.NewString()+"/courses", nil, "")

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "找不到該教練", env.Message)
}

func TestCoachHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CoachHandlerIntegrationTestSuite))
}
