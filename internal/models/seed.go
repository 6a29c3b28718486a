package models

func scorePtr(v float64) *float64 { return &v }

// SeedStore builds the demo dataset used when the persistence backend holds
// no snapshot yet: one teacher, four students, two classes with categories,
// assignments and a partially graded gradebook.
func SeedStore() *Store {
	s := NewStore()

	s.Profiles = []Profile{
		{ID: "teacher1", Email: "teacher@demo", Name: "Ms. Johnson", Role: RoleTeacher},
		{ID: "student1", Email: "student@demo", Name: "Alex Chen", Role: RoleStudent},
		{ID: "student2", Email: "student2@demo", Name: "Jordan Smith", Role: RoleStudent},
		{ID: "student3", Email: "student3@demo", Name: "Taylor Brown", Role: RoleStudent},
		{ID: "student4", Email: "student4@demo", Name: "Morgan Davis", Role: RoleStudent},
	}
	s.Classes = []Class{
		{ID: "class1", Name: "Algebra I", Section: "Period 2", TeacherID: "teacher1"},
		{ID: "class2", Name: "Biology", Section: "Period 4", TeacherID: "teacher1"},
	}
	s.Enrollments = []Enrollment{
		{ID: "enroll1", StudentID: "student1", ClassID: "class1"},
		{ID: "enroll2", StudentID: "student2", ClassID: "class1"},
		{ID: "enroll3", StudentID: "student3", ClassID: "class1"},
		{ID: "enroll4", StudentID: "student1", ClassID: "class2"},
		{ID: "enroll5", StudentID: "student4", ClassID: "class2"},
	}
	s.Categories = []Category{
		{ID: "cat1", ClassID: "class1", Name: "Homework", Weight: 0.3},
		{ID: "cat2", ClassID: "class1", Name: "Tests", Weight: 0.5},
		{ID: "cat3", ClassID: "class2", Name: "Labs", Weight: 0.4},
		{ID: "cat4", ClassID: "class2", Name: "Exams", Weight: 0.6},
	}
	s.Assignments = []Assignment{
		{ID: "assign1", ClassID: "class1", CategoryID: "cat1", Title: "HW 1", Points: 10, DueDate: "2024-01-15"},
		{ID: "assign2", ClassID: "class1", CategoryID: "cat1", Title: "HW 2", Points: 10, DueDate: "2024-01-22"},
		{ID: "assign3", ClassID: "class1", CategoryID: "cat2", Title: "Test 1", Points: 100, DueDate: "2024-01-25"},
		{ID: "assign4", ClassID: "class2", CategoryID: "cat3", Title: "Lab 1", Points: 50, DueDate: "2024-01-18"},
		{ID: "assign5", ClassID: "class2", CategoryID: "cat3", Title: "Lab 2", Points: 50, DueDate: "2024-01-25"},
		{ID: "assign6", ClassID: "class2", CategoryID: "cat4", Title: "Midterm", Points: 200, DueDate: "2024-02-01"},
	}
	s.Grades = []Grade{
		{ID: "grade1", AssignmentID: "assign1", StudentID: "student1", Score: scorePtr(9)},
		{ID: "grade2", AssignmentID: "assign1", StudentID: "student2", Score: scorePtr(8)},
		{ID: "grade3", AssignmentID: "assign1", StudentID: "student3", Score: scorePtr(10)},
		{ID: "grade4", AssignmentID: "assign2", StudentID: "student1", Score: scorePtr(10)},
		{ID: "grade5", AssignmentID: "assign2", StudentID: "student2", Score: scorePtr(7)},
		{ID: "grade6", AssignmentID: "assign3", StudentID: "student1", Score: scorePtr(85)},
		{ID: "grade7", AssignmentID: "assign3", StudentID: "student2", Score: scorePtr(78)},
		{ID: "grade8", AssignmentID: "assign3", StudentID: "student3", Score: scorePtr(92)},
		{ID: "grade9", AssignmentID: "assign4", StudentID: "student1", Score: scorePtr(45)},
		{ID: "grade10", AssignmentID: "assign4", StudentID: "student4", Score: scorePtr(48)},
		{ID: "grade11", AssignmentID: "assign5", StudentID: "student1", Score: scorePtr(50)},
		{ID: "grade12", AssignmentID: "assign6", StudentID: "student1", Score: scorePtr(180)},
	}

	return s
}
