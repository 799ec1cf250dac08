package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
	"github.com/nyagah254/job_board/routes"
)

const testSecret = "test-secret"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Submission{},
		&models.Answer{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.JobRoutes(app)
	routes.ApplicationRoutes(app)
	routes.QuizRoutes(app)
	routes.MessagingRoutes(app)
	routes.NotificationRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func authCookies(t *testing.T, user models.User) []*http.Cookie {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return []*http.Cookie{
		{Name: "auth_token", Value: token},
		{Name: "user_email", Value: user.Email},
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func doMultipart(t *testing.T, app *fiber.App, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte, cookies []*http.Cookie) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(raw)
}

func countRows(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := database.DB.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

// seedQuiz creates a two-question quiz directly in the database:
// question 1 with correct option A and wrong option B, question 2 with
// correct option C and wrong option D.
type seededQuiz struct {
	Quiz models.Quiz
	Q1   models.Question
	Q2   models.Question
	O1A  models.Option // correct for Q1
	O1B  models.Option
	O2C  models.Option // correct for Q2
	O2D  models.Option
}

func seedQuiz(t *testing.T, employer models.User, jobID *uuid.UUID) seededQuiz {
	t.Helper()
	quiz := models.Quiz{Title: "Screening Quiz", Description: "Basics", EmployerID: employer.ID, JobID: jobID}
	if err := database.DB.Create(&quiz).Error; err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}

	q1 := models.Question{QuizID: quiz.ID, Text: "What is 2+2?"}
	q2 := models.Question{QuizID: quiz.ID, Text: "Capital of France?"}
	for _, q := range []*models.Question{&q1, &q2} {
		if err := database.DB.Create(q).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}

	o1a := models.Option{QuestionID: q1.ID, Text: "4", IsCorrect: true}
	o1b := models.Option{QuestionID: q1.ID, Text: "5"}
	o2c := models.Option{QuestionID: q2.ID, Text: "Paris", IsCorrect: true}
	o2d := models.Option{QuestionID: q2.ID, Text: "Berlin"}
	for _, o := range []*models.Option{&o1a, &o1b, &o2c, &o2d} {
		if err := database.DB.Create(o).Error; err != nil {
			t.Fatalf("failed to seed option: %v", err)
		}
	}

	return seededQuiz{Quiz: quiz, Q1: q1, Q2: q2, O1A: o1a, O1B: o1b, O2C: o2c, O2D: o2d}
}
