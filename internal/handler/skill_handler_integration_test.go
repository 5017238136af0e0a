package handler_test

import (
	"encoding/json"
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

type SkillHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *SkillHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	skillService := service.NewSkillService(repository.NewSkillRepository(s.testDB.DB))
	skillHandler := handler.NewSkillHandler(skillService)

	s.router = gin.New()
	coaches := s.router.Group("/api/coaches")
	{
		coaches.POST("/skill", skillHandler.PostSkill)
		coaches.GET("/skill", skillHandler.GetSkills)
		coaches.DELETE("/skill/:skillId", skillHandler.DeleteSkill)
	}
}

func (s *SkillHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *SkillHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *SkillHandlerIntegrationTestSuite) TestPostSkill() {
	w, env := doJSON(s.router, http.MethodPost, "/api/coaches/skill", map[string]string{"name": "重訓"}, "")

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Equal(s.T(), "success", env.Status)

	var data struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	assert.Equal(s.T(), "重訓", data.Name)
	assert.NotEmpty(s.T(), data.ID)
}

func (s *SkillHandlerIntegrationTestSuite) TestPostSkillDuplicateName() {
	w, _ := doJSON(s.router, http.MethodPost, "/api/coaches/skill", map[string]string{"name": "瑜伽"}, "")
	s.Require().Equal(http.StatusCreated, w.Code)

	w, env := doJSON(s.router, http.MethodPost, "/api/coaches/skill", map[string]string{"name": "瑜伽"}, "")
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.Equal(s.T(), "資料重複", env.Message)

	var count int64
	s.testDB.DB.Model(&models.Skill{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *SkillHandlerIntegrationTestSuite) TestPostSkillValidation() {
	for _, body := range []interface{}{
		map[string]string{"name": ""},
		map[string]string{"name": "   "},
		map[string]interface{}{},
	} {
		w, env := doJSON(s.router, http.MethodPost, "/api/coaches/skill", body, "")
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "欄位未填寫正確", env.Message)
	}
}

func (s *SkillHandlerIntegrationTestSuite) TestGetSkills() {
	for _, name := range []string{"重訓", "瑜伽"} {
		s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestSkill(name)).Error)
	}

	w, env := doJSON(s.router, http.MethodGet, "/api/coaches/skill", nil, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	assert.Len(s.T(), data, 2)
}

func (s *SkillHandlerIntegrationTestSuite) TestGetSkillsEmpty() {
	w, env := doJSON(s.router, http.MethodGet, "/api/coaches/skill", nil, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "[]", string(env.Data))
}

func (s *SkillHandlerIntegrationTestSuite) TestDeleteSkill() {
	skill := testutil.CreateTestSkill("有氧運動")
	s.Require().NoError(s.testDB.DB.Create(skill).Error)

	w, env := doJSON(s.router, http.MethodDelete, "/api/coaches/skill/"+skill.ID.String(), nil, "")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "success", env.Status)

	var count int64
	s.testDB.DB.Model(&models.Skill{}).Count(&count)
	assert.Zero(s.T(), count)
}

func (s *SkillHandlerIntegrationTestSuite) TestDeleteSkillNotFound() {
	w, env := doJSON(s.router, http.MethodDelete, "/api/coaches/skill/"+uuid.NewString(), nil, "")

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), "找不到技能", env.Message)
}

func (s *SkillHandlerIntegrationTestSuite) TestDeleteSkillMalformedID() {
	w, env := doJSON(s.router, http.MethodDelete, "/api/coaches/skill/not-a-uuid", nil, "")

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), "找不到技能", env.Message)
}

func TestSkillHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SkillHandlerIntegrationTestSuite))
}
