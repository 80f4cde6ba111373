package controllers

import (
	"errors"

	"github.com/Minhaj225/NutriGoal/services"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	students *services.StudentService
}

func NewStudentController(students *services.StudentService) *StudentController {
	return &StudentController{students: students}
}

func (ctl *StudentController) UpsertStudent(c *gin.Context) {
	var body services.StudentInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "error": err.Error()})
		return
	}

	student, err := ctl.students.UpsertByEmail(body)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			c.JSON(400, gin.H{"success": false, "error": "Validation error", "details": details})
			return
		}
		if errors.Is(err, services.ErrDuplicate) {
			c.JSON(409, gin.H{"success": false, "error": "Duplicate entry", "details": "A record with this information already exists"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Student profile updated successfully", "student": student})
}

func (ctl *StudentController) GetStudent(c *gin.Context) {
	student, err := ctl.students.GetByEmail(c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Student not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "student": student})
}

func (ctl *StudentController) ListStudents(c *gin.Context) {
	students, err := ctl.students.ListAll()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "count": len(students), "students": students})
}

type feedbackBody struct {
	MealID string `json:"mealId"`
	Liked  *bool  `json:"liked"`
}

func (ctl *StudentController) RecordFeedback(c *gin.Context) {
	var body feedbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "error": err.Error()})
		return
	}
	if body.MealID == "" || body.Liked == nil {
		c.JSON(400, gin.H{"success": false, "error": "mealId and liked (boolean) are required"})
		return
	}

	err := ctl.students.RecordFeedback(c.Param("email"), body.MealID, *body.Liked)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Student not found"})
			return
		}
		if details, ok := validationDetails(err); ok {
			c.JSON(400, gin.H{"success": false, "error": "Validation error", "details": details})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Feedback recorded successfully"})
}

func (ctl *StudentController) DeleteStudent(c *gin.Context) {
	if err := ctl.students.DeleteByEmail(c.Param("email")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Student not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Student profile deleted successfully"})
}
