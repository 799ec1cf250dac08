package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
	"github.com/nyagah254/job_board/services"
	"gorm.io/gorm"
)

type QuizOptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestionRequest struct {
	Text    string              `json:"text" validate:"required"`
	Options []QuizOptionRequest `json:"options" validate:"required,min=1,dive"`
}

type QuizRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description"`
	Questions   []QuizQuestionRequest `json:"questions" validate:"required,min=1,dive"`
	JobID       *string               `json:"jobId"`
}

// CreateQuiz inserts the quiz, its questions, and their options in one
// transaction. A question without a correct option aborts the whole
// thing; callers never see a partially created quiz.
func CreateQuiz(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	employerID, _ := uuid.Parse(claims["user_id"].(string))

	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	for i, question := range req.Questions {
		hasCorrect := false
		for _, option := range question.Options {
			if option.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Question %d must have at least one correct option", i+1),
			})
		}
	}

	var jobID *uuid.UUID
	if req.JobID != nil && *req.JobID != "" {
		parsed, err := uuid.Parse(*req.JobID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
		}
		jobID = &parsed
	}

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		EmployerID:  employerID,
		JobID:       jobID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for _, q := range req.Questions {
			question := models.Question{QuizID: quiz.ID, Text: q.Text}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for _, o := range q.Options {
				option := models.Option{
					QuestionID: question.ID,
					Text:       o.Text,
					IsCorrect:  o.IsCorrect,
				}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Quiz creation failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"quizId": quiz.ID})
}

type QuizSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	QuestionCount   int       `json:"question_count"`
	SubmissionCount int       `json:"submission_count"`
}

func ListEmployerQuizzes(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	employerID, _ := uuid.Parse(claims["user_id"].(string))

	var quizzes []QuizSummary
	err := database.DB.Model(&models.Quiz{}).
		Select(`quizzes.id, quizzes.title, quizzes.description, quizzes.created_at,
			(SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id) AS question_count,
			(SELECT COUNT(*) FROM submissions WHERE submissions.quiz_id = quizzes.id) AS submission_count`).
		Where("quizzes.employer_id = ?", employerID).
		Order("quizzes.created_at desc").
		Scan(&quizzes).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quizzes"})
	}

	return c.JSON(fiber.Map{"quizzes": quizzes})
}

type AvailableQuiz struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"question_count"`
	JobTitle      string    `json:"job_title"`
	CompanyName   string    `json:"company_name"`
}

// ListAvailableQuizzes returns quizzes attached to jobs the caller has
// applied to. Read-only aggregation.
func ListAvailableQuizzes(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var quizzes []AvailableQuiz
	err := database.DB.Model(&models.Quiz{}).
		Select(`quizzes.id, quizzes.title, quizzes.description,
			(SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id) AS question_count,
			jobs.title AS job_title, jobs.company AS company_name`).
		Joins("JOIN jobs ON quizzes.job_id = jobs.id").
		Where("quizzes.job_id IN (?)",
			database.DB.Model(&models.Application{}).Select("job_id").Where("applicant_email = ?", email)).
		Scan(&quizzes).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quizzes"})
	}

	return c.JSON(fiber.Map{"quizzes": quizzes})
}

// Option correctness flags never leave the server on the quiz-taker
// path, hence the dedicated payload types here.
type takerOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type takerQuestion struct {
	ID      uuid.UUID     `json:"id"`
	Text    string        `json:"text"`
	Options []takerOption `json:"options"`
}

type takerQuiz struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []takerQuestion `json:"questions"`
}

func GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	var quiz models.Quiz
	if err := database.DB.Preload("Questions.Options").First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	payload := takerQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]takerQuestion, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		question := takerQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: make([]takerOption, len(q.Options)),
		}
		for j, o := range q.Options {
			question.Options[j] = takerOption{ID: o.ID, Text: o.Text}
		}
		payload.Questions[i] = question
	}

	return c.JSON(fiber.Map{"quiz": payload})
}

type SubmitQuizRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

// SubmitQuiz grades the caller's answers against the full question set
// of the quiz, then persists the submission and its answer snapshots in
// one transaction. Unanswered questions are tolerated: they are skipped
// entirely while totalQuestions still counts them. Submitting twice
// creates two independent submissions.
func SubmitQuiz(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	quizID := c.Params("quizId")

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var questions []models.Question
	if err := database.DB.Where("quiz_id = ?", quiz.ID).Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load quiz questions"})
	}
	totalQuestions := len(questions)
	if totalQuestions == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quiz has no questions"})
	}

	score := 0
	var pending []models.Answer

	for _, question := range questions {
		raw, ok := req.Answers[question.ID.String()]
		if !ok || raw == "" {
			continue
		}
		optionID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}

		isCorrect := false
		var option models.Option
		if err := database.DB.First(&option, "id = ?", optionID).Error; err == nil {
			isCorrect = option.IsCorrect
		}
		if isCorrect {
			score++
		}

		pending = append(pending, models.Answer{
			QuestionID: question.ID,
			OptionID:   optionID,
			IsCorrect:  isCorrect,
		})
	}

	submission := models.Submission{
		QuizID:         quiz.ID,
		UserID:         userID,
		Score:          score,
		TotalQuestions: totalQuestions,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		for i := range pending {
			pending[i].SubmissionID = submission.ID
		}
		if len(pending) > 0 {
			if err := tx.Create(&pending).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save submission"})
	}

	return c.JSON(fiber.Map{"score": score, "totalQuestions": totalQuestions})
}

type SubmissionResult struct {
	ID             uuid.UUID `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	// Filled by a separate per-submission query; gorm must not treat
	// this as an association when scanning the submission rows.
	Answers []services.AnswerRow `gorm:"-" json:"answers"`
}

func loadQuizResults(quizID string) (*models.Quiz, []SubmissionResult, error) {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, nil, err
	}

	var submissions []SubmissionResult
	err := database.DB.Model(&models.Submission{}).
		Select(`submissions.id, submissions.score, submissions.total_questions,
			submissions.submitted_at, users.name AS user_name, users.email AS user_email`).
		Joins("JOIN users ON submissions.user_id = users.id").
		Where("submissions.quiz_id = ?", quiz.ID).
		Order("submissions.submitted_at desc").
		Scan(&submissions).Error
	if err != nil {
		return nil, nil, err
	}

	for i := range submissions {
		var answers []services.AnswerRow
		err := database.DB.Model(&models.Answer{}).
			Select(`answers.id, questions.text AS question_text, options.text AS option_text,
				answers.is_correct,
				(SELECT text FROM options co WHERE co.question_id = questions.id AND co.is_correct = ? LIMIT 1) AS correct_answer`, true).
			Joins("JOIN questions ON answers.question_id = questions.id").
			Joins("JOIN options ON answers.option_id = options.id").
			Where("answers.submission_id = ?", submissions[i].ID).
			Scan(&answers).Error
		if err != nil {
			return nil, nil, err
		}
		submissions[i].Answers = answers
	}

	return &quiz, submissions, nil
}

func GetQuizResults(c *fiber.Ctx) error {
	quiz, submissions, err := loadQuizResults(c.Params("quizId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quiz results"})
	}

	return c.JSON(fiber.Map{
		"quiz":        fiber.Map{"id": quiz.ID, "title": quiz.Title, "description": quiz.Description},
		"submissions": submissions,
	})
}

// ExportQuizResults renders the results view to a PDF report.
func ExportQuizResults(c *fiber.Ctx) error {
	quiz, submissions, err := loadQuizResults(c.Params("quizId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quiz results"})
	}

	report := services.QuizReport{
		Title:       quiz.Title,
		Description: quiz.Description,
		GeneratedAt: time.Now(),
	}
	for _, s := range submissions {
		report.Submissions = append(report.Submissions, services.ReportSubmission{
			UserName:       s.UserName,
			UserEmail:      s.UserEmail,
			Score:          s.Score,
			TotalQuestions: s.TotalQuestions,
			SubmittedAt:    s.SubmittedAt,
			Answers:        s.Answers,
		})
	}

	pdfBytes, err := services.GenerateQuizReportPDF(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "quiz_results_"+quiz.ID.String()+".pdf"))
	return c.Send(pdfBytes)
}
