package handler

import (
	"net/http"
	"strconv"

	"github.com/deppfellow/world-api/internal/errs"
	"github.com/deppfellow/world-api/internal/server"
	"github.com/deppfellow/world-api/internal/service"
	"github.com/deppfellow/world-api/internal/validation"
	"github.com/labstack/echo/v4"
)

type HelloRequest struct {
	Username string `param:"username"`
	Lang     string `query:"lang"`
	Page     string `query:"page"`
}

func (r *HelloRequest) Validate() error {
	return nil
}

type FizzBuzzRequest struct {
	Count string `query:"count"`
}

func (r *FizzBuzzRequest) Validate() error {
	return nil
}

type AddRequest struct {
	Left  *float64 `json:"left" validate:"required"`
	Right *float64 `json:"right" validate:"required"`
}

func (r *AddRequest) Validate() error {
	return validation.Struct(r)
}

type AddResponse struct {
	Answer int64 `json:"answer"`
}

type StudentRequest struct {
	ClassNumber   int `param:"classNumber"`
	StudentNumber int `param:"studentNumber"`
}

func (r *StudentRequest) Validate() error {
	return nil
}

// JSONData is the fixed document served by GET /json and echoed by POST /json.
type JSONData struct {
	Number int    `json:"number"`
	String string `json:"string"`
	Bool   bool   `json:"bool"`
}

func (r *JSONData) Validate() error {
	return nil
}

// ExerciseHandler serves the small demonstration routes.
type ExerciseHandler struct {
	Handler
	students *service.StudentService
}

func NewExerciseHandler(s *server.Server, services *service.Services) *ExerciseHandler {
	return &ExerciseHandler{
		Handler:  NewHandler(s),
		students: services.Students,
	}
}

func (h *ExerciseHandler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong\n")
}

func (h *ExerciseHandler) Hello(c echo.Context) error {
	return c.String(http.StatusOK, "Hello, World.\n")
}

func (h *ExerciseHandler) HelloUser(c echo.Context, req *HelloRequest) (string, error) {
	return "Hello, " + req.Username + "!\nlanguage: " + req.Lang + "\npage: " + req.Page + "\n", nil
}

func (h *ExerciseHandler) FizzBuzz(c echo.Context, req *FizzBuzzRequest) (string, error) {
	count := service.DefaultFizzBuzzCount
	if req.Count != "" {
		n, err := strconv.Atoi(req.Count)
		if err != nil {
			return "", errs.NewBadRequestError("Bad Request", true, nil, nil, nil)
		}
		count = n
	}
	return service.FizzBuzz(count), nil
}

// Add answers POST /add. Any malformed body is reported as a bare
// "Bad Request".
func (h *ExerciseHandler) Add(c echo.Context) error {
	var req AddRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return errs.NewBadRequestError("Bad Request", true, nil, nil, nil)
	}
	return c.JSON(http.StatusOK, AddResponse{Answer: service.Add(*req.Left, *req.Right)})
}

func (h *ExerciseHandler) GetStudent(c echo.Context, req *StudentRequest) (service.Student, error) {
	student, ok := h.students.Find(req.ClassNumber, req.StudentNumber)
	if !ok {
		return service.Student{}, errs.NewBadRequestError("Student Not Found", true, nil, nil, nil)
	}
	return student, nil
}

func (h *ExerciseHandler) GetJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, JSONData{Number: 42, String: "hello", Bool: true})
}

func (h *ExerciseHandler) EchoJSON(c echo.Context, req *JSONData) (*JSONData, error) {
	return req, nil
}
