package service

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultFizzBuzzCount is used when no count is given.
const DefaultFizzBuzzCount = 30

// FizzBuzz returns the FizzBuzz sequence from 1 to n, one entry per line.
// A non-positive n yields an empty string.
func FizzBuzz(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		switch {
		case i%15 == 0:
			b.WriteString("FizzBuzz")
		case i%3 == 0:
			b.WriteString("Fizz")
		case i%5 == 0:
			b.WriteString("Buzz")
		default:
			b.WriteString(strconv.Itoa(i))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Add sums two numbers and truncates the result toward zero.
func Add(left, right float64) int64 {
	return int64(left + right)
}

//go:embed students.json
var studentRoster []byte

type Student struct {
	StudentNumber int    `json:"student_number"`
	Name          string `json:"name"`
}

type class struct {
	ClassNumber int       `json:"class_number"`
	Students    []Student `json:"students"`
}

type studentKey struct {
	class, student int
}

// StudentService answers lookups against the static class roster.
type StudentService struct {
	students map[studentKey]Student
}

func NewStudentService() (*StudentService, error) {
	var classes []class
	if err := json.Unmarshal(studentRoster, &classes); err != nil {
		return nil, fmt.Errorf("failed to parse student roster: %w", err)
	}

	students := make(map[studentKey]Student)
	for _, c := range classes {
		for _, s := range c.Students {
			students[studentKey{c.ClassNumber, s.StudentNumber}] = s
		}
	}

	return &StudentService{students: students}, nil
}

// Find returns the student with the given number in the given class.
func (s *StudentService) Find(classNumber, studentNumber int) (Student, bool) {
	student, ok := s.students[studentKey{classNumber, studentNumber}]
	return student, ok
}
