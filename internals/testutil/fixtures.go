package testutil

import (
	"net/http"
)

// Create posts body and fails the test unless the answer is 201. Returns the new id.
func (h *Harness) Create(path, token string, body any) uint {
	h.T.Helper()
	res := h.Do(http.MethodPost, path, token, body)
	if res.Status != http.StatusCreated {
		h.T.Fatalf("POST %s: %d %s", path, res.Status, res.Raw)
	}
	id := ID(res.Data())
	if id == 0 {
		h.T.Fatalf("POST %s: no id in %s", path, res.Raw)
	}
	return id
}

// Tree is one department with a single programme, course, faculty member and batch.
type Tree struct {
	DepartmentID uint
	LevelID      uint
	ProgrammeID  uint
	CourseID     uint
	FacultyID    uint
	BatchID      uint
}

// Academics builds a Tree through the API.
func (h *Harness) Academics(token string) Tree {
	h.T.Helper()
	var t Tree
	t.DepartmentID = h.Create("/api/departments", token, map[string]any{"name": "Computer Science"})
	t.LevelID = h.Create("/api/levels", token, map[string]any{"name": "UG"})
	t.ProgrammeID = h.Create("/api/programmes", token, map[string]any{
		"name": "B.Sc Computer Science", "department_id": t.DepartmentID, "level_id": t.LevelID, "duration": 3,
	})
	t.CourseID = h.Create("/api/courses", token, map[string]any{
		"code": "CS101", "title": "Programming in C", "department_id": t.DepartmentID, "programme_id": t.ProgrammeID, "semester": 1, "credits": 4,
	})
	t.FacultyID = h.Create("/api/faculty", token, map[string]any{
		"name": "Ada Lovelace", "department_id": t.DepartmentID, "email": "ada@uni.edu", "phone": "9876543210",
	})
	t.BatchID = h.Create("/api/batches", token, map[string]any{
		"course_id": t.CourseID, "faculty_id": t.FacultyID, "year": 2024, "part": "A",
	})
	return t
}

// Student creates a student in the tree's programme.
func (h *Harness) Student(token string, t Tree, registerNo, name string) uint {
	h.T.Helper()
	return h.Create("/api/students", token, map[string]any{
		"register_no": registerNo, "name": name, "programme_id": t.ProgrammeID,
	})
}
