package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayatsuji/taskboard/internal/constants"
	"github.com/ayatsuji/taskboard/internal/media"
	"github.com/ayatsuji/taskboard/internal/models"
	"github.com/ayatsuji/taskboard/internal/repository"
	"github.com/ayatsuji/taskboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubUploader stands in for the media host.
type stubUploader struct {
	result      *media.UploadResult
	err         error
	calls       int
	gotFilename string
}

func (s *stubUploader) Upload(ctx context.Context, data []byte, filename, contentType string) (*media.UploadResult, error) {
	s.calls++
	s.gotFilename = filename
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// UploadHandlerTestSuite defines the test suite for UploadHandler
type UploadHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	uploader *stubUploader
	handler  *UploadHandler
}

func (suite *UploadHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Image{})
	suite.Require().NoError(err)

	suite.uploader = &stubUploader{
		result: &media.UploadResult{
			URL:      "https://media.example/imgs/pic.png",
			PublicID: "imgs/pic",
		},
	}
	suite.handler = NewUploadHandler(services.NewUploadService(suite.uploader, repository.NewImageRepository(suite.db)))

	gin.SetMode(gin.TestMode)
}

func (suite *UploadHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UploadHandlerTestSuite) multipartContext(fieldName string, payload []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, "pic.png")
		suite.Require().NoError(err)
		_, err = part.Write(payload)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func (suite *UploadHandlerTestSuite) TestUploadImage_Success() {
	c, w := suite.multipartContext("image", []byte("fake image bytes"), "user_a")

	suite.handler.UploadImage(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://media.example/imgs/pic.png", response["imageUrl"])
	assert.NotEmpty(suite.T(), response["imageId"])
	assert.Equal(suite.T(), 1, suite.uploader.calls)
	assert.Equal(suite.T(), "pic.png", suite.uploader.gotFilename)

	// The upload is recorded for the caller
	var image models.Image
	err = suite.db.First(&image, "id = ?", response["imageId"]).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user_a", image.UserID)
	assert.Equal(suite.T(), "https://media.example/imgs/pic.png", image.URL)
}

func (suite *UploadHandlerTestSuite) TestUploadImage_NoFile() {
	c, w := suite.multipartContext("", nil, "user_a")

	suite.handler.UploadImage(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), 0, suite.uploader.calls)
}

func (suite *UploadHandlerTestSuite) TestUploadImage_WrongFieldName() {
	c, w := suite.multipartContext("file", []byte("bytes"), "user_a")

	suite.handler.UploadImage(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *UploadHandlerTestSuite) TestUploadImage_TooLarge() {
	oversized := make([]byte, constants.MaxUploadSize+1)
	c, w := suite.multipartContext("image", oversized, "user_a")

	suite.handler.UploadImage(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), 0, suite.uploader.calls)
}

func (suite *UploadHandlerTestSuite) TestUploadImage_UpstreamFailure() {
	suite.uploader.err = media.ErrUploadFailed

	c, w := suite.multipartContext("image", []byte("bytes"), "user_a")

	suite.handler.UploadImage(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)

	// No record is kept for a failed upload
	var count int64
	suite.db.Model(&models.Image{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *UploadHandlerTestSuite) TestUploadImage_Unauthorized() {
	c, w := suite.multipartContext("image", []byte("bytes"), "")

	suite.handler.UploadImage(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), 0, suite.uploader.calls)
}

func (suite *UploadHandlerTestSuite) listContext(userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/uploads", nil)
	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}
	return c, w
}

func (suite *UploadHandlerTestSuite) TestListUploads_ScopedToOwner() {
	suite.db.Create(&models.Image{UserID: "user_a", URL: "https://media.example/imgs/a.png"})
	suite.db.Create(&models.Image{UserID: "user_a", URL: "https://media.example/imgs/b.png"})
	suite.db.Create(&models.Image{UserID: "user_b", URL: "https://media.example/imgs/c.png"})

	c, w := suite.listContext("user_a")

	suite.handler.ListUploads(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var images []models.Image
	err := json.Unmarshal(w.Body.Bytes(), &images)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), images, 2)
	for _, image := range images {
		assert.Equal(suite.T(), "user_a", image.UserID)
	}
}

func (suite *UploadHandlerTestSuite) TestListUploads_Empty() {
	c, w := suite.listContext("user_a")

	suite.handler.ListUploads(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "[]", w.Body.String())
}

func (suite *UploadHandlerTestSuite) TestListUploads_Unauthorized() {
	c, w := suite.listContext("")

	suite.handler.ListUploads(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestUploadHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UploadHandlerTestSuite))
}
