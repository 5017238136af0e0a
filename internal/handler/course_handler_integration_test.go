package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fitbook/fitbook/internal/handler"
	"github.com/fitbook/fitbook/internal/middleware"
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

type CourseHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine

	coach  *models.User
	member *models.User
	skill  *models.Skill
}

func (s *CourseHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	courseRepo := repository.NewCourseRepository(s.testDB.DB)
	bookingRepo := repository.NewBookingRepository(s.testDB.DB)
	purchaseRepo := repository.NewCreditPurchaseRepository(s.testDB.DB)

	courseService := service.NewCourseService(courseRepo, bookingRepo, purchaseRepo)
	courseHandler := handler.NewCourseHandler(courseService)

	auth := middleware.AuthMiddleware(testJWTSecret, userRepo)

	s.router = gin.New()
	courses := s.router.Group("/api/courses")
	{
		courses.GET("", courseHandler.GetCourses)
		courses.POST("/:courseId", auth, courseHandler.PostBooking)
		courses.DELETE("/:courseId", auth, courseHandler.DeleteBooking)
	}
}

func (s *CourseHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *CourseHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	coach, err := testutil.CreateTestUser("教練小明", "coach-"+uuid.NewString()[:8]+"@example.com", "Aa123456", models.RoleCoach)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(coach).Error)
	s.coach = coach

	member, err := testutil.CreateTestUser("會員小美", "member-"+uuid.NewString()[:8]+"@example.com", "Aa123456", models.RoleUser)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(member).Error)
	s.member = member

	s.skill = testutil.CreateTestSkill("瑜伽")
	s.Require().NoError(s.testDB.DB.Create(s.skill).Error)
}

func (s *CourseHandlerIntegrationTestSuite) seedCourse(name string, maxParticipants int) *models.Course {
	course := testutil.CreateTestCourse(s.coach.ID, s.skill.ID, name, maxParticipants)
	s.Require().NoError(s.testDB.DB.Create(course).Error)
	return course
}

func (s *CourseHandlerIntegrationTestSuite) buyCredits(userID uuid.UUID, credits int) {
	pkg := testutil.CreateTestPackage("組合包-"+uuid.NewString()[:8], credits, credits*100)
	s.Require().NoError(s.testDB.DB.Create(pkg).Error)
	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestPurchase(userID, pkg)).Error)
}

func (s *CourseHandlerIntegrationTestSuite) memberAuth() string {
	return testutil.BearerToken(s.T(), s.member.ID, testJWTSecret)
}

func (s *CourseHandlerIntegrationTestSuite) TestGetCourses() {
	s.seedCourse("早晨瑜伽", 10)

	w, env := doJSON(s.router, http.MethodGet, "/api/courses", nil, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var data []struct {
		CoachName       string `json:"coach_name"`
		SkillName       string `json:"skill_name"`
		Name            string `json:"name"`
		MaxParticipants int    `json:"max_participants"`
		Price           int    `json:"price"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().Len(data, 1)
	assert.Equal(s.T(), "教練小明", data[0].CoachName)
	assert.Equal(s.T(), "瑜伽", data[0].SkillName)
	assert.Equal(s.T(), "早晨瑜伽", data[0].Name)
	assert.Equal(s.T(), 10, data[0].MaxParticipants)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookCourse() {
	course := s.seedCourse("早晨瑜伽", 10)
	s.buyCredits(s.member.ID, 3)

	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Equal(s.T(), "success", env.Status)

	var booking models.CourseBooking
	s.Require().NoError(s.testDB.DB.Where("user_id = ? AND course_id = ?", s.member.ID, course.ID).First(&booking).Error)
	assert.Nil(s.T(), booking.CancelledAt)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookUnknownCourse() {
	s.buyCredits(s.member.ID, 3)

	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+uuid.NewString(), nil, s.memberAuth())

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "ID錯誤", env.Message)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookTwiceRejected() {
	course := s.seedCourse("早晨瑜伽", 10)
	s.buyCredits(s.member.ID, 3)

	w, _ := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusCreated, w.Code)

	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "已經報名過此課程", env.Message)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookFullCourse() {
	course := s.seedCourse("熱門課程", 1)

	other, err := testutil.CreateTestUser("另一位會員", "other-"+uuid.NewString()[:8]+"@example.com", "Aa123456", models.RoleUser)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(other).Error)
	s.buyCredits(other.ID, 1)

	otherAuth := testutil.BearerToken(s.T(), other.ID, testJWTSecret)
	w, _ := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, otherAuth)
	s.Require().Equal(http.StatusCreated, w.Code)

	s.buyCredits(s.member.ID, 1)
	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "已達最大參加人數", env.Message)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookWithoutCredits() {
	course := s.seedCourse("早晨瑜伽", 10)

	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "已無可使用堂數", env.Message)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookingsConsumeCredits() {
	s.buyCredits(s.member.ID, 1)
	first := s.seedCourse("課程一", 10)
	second := s.seedCourse("課程二", 10)

	w, _ := doJSON(s.router, http.MethodPost, "/api/courses/"+first.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusCreated, w.Code)

	// The single credit is now held by the active booking
	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+second.ID.String(), nil, s.memberAuth())
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "已無可使用堂數", env.Message)
}

func (s *CourseHandlerIntegrationTestSuite) TestCancelBooking() {
	course := s.seedCourse("早晨瑜伽", 10)
	s.buyCredits(s.member.ID, 1)

	w, _ := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusCreated, w.Code)

	w, env := doJSON(s.router, http.MethodDelete, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "success", env.Status)

	// Soft cancel: the row survives with cancelled_at set
	var booking models.CourseBooking
	s.Require().NoError(s.testDB.DB.Where("user_id = ? AND course_id = ?", s.member.ID, course.ID).First(&booking).Error)
	s.Require().NotNil(booking.CancelledAt)
	assert.WithinDuration(s.T(), time.Now(), *booking.CancelledAt, time.Minute)
}

func (s *CourseHandlerIntegrationTestSuite) TestCancelTwiceRejected() {
	course := s.seedCourse("早晨瑜伽", 10)
	s.buyCredits(s.member.ID, 1)

	w, _ := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusCreated, w.Code)
	w, _ = doJSON(s.router, http.MethodDelete, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusOK, w.Code)

	w, env := doJSON(s.router, http.MethodDelete, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "ID錯誤", env.Message)
}

func (s *CourseHandlerIntegrationTestSuite) TestCancelFreesTheSeatAndCredit() {
	course := s.seedCourse("早晨瑜伽", 1)
	s.buyCredits(s.member.ID, 1)

	w, _ := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusCreated, w.Code)
	w, _ = doJSON(s.router, http.MethodDelete, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	s.Require().Equal(http.StatusOK, w.Code)

	// After cancelling, both the seat and the credit are available again
	w, _ = doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, s.memberAuth())
	assert.Equal(s.T(), http.StatusCreated, w.Code)
}

func (s *CourseHandlerIntegrationTestSuite) TestBookingRequiresAuth() {
	course := s.seedCourse("早晨瑜伽", 10)

	w, env := doJSON(s.router, http.MethodPost, "/api/courses/"+course.ID.String(), nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "請先登入", env.Message)
}

func TestCourseHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourseHandlerIntegrationTestSuite))
}
