// Package memory is an in-process implementation of the per-entity store
// contracts. It backs local runs when Mongo is disabled in config and the
// service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"SchoolDesk/entity"
)

type Store struct {
	mu         sync.RWMutex
	schools    map[string]entity.School
	users      map[string]entity.User
	classrooms map[string]entity.Classroom
	students   map[string]entity.Student
	tokens     map[string]entity.Token
}

func New() *Store {
	return &Store{
		schools:    make(map[string]entity.School),
		users:      make(map[string]entity.User),
		classrooms: make(map[string]entity.Classroom),
		students:   make(map[string]entity.Student),
		tokens:     make(map[string]entity.Token),
	}
}

// Schools

func (s *Store) InsertSchool(_ context.Context, school *entity.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schools[school.ID] = *school
	return nil
}

func (s *Store) GetSchoolByID(_ context.Context, id string) (*entity.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	school, ok := s.schools[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &school, nil
}

func (s *Store) ListSchools(_ context.Context) ([]entity.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schools := make([]entity.School, 0, len(s.schools))
	for _, school := range s.schools {
		schools = append(schools, school)
	}
	sort.Slice(schools, func(i, j int) bool { return schools[i].Name < schools[j].Name })
	return schools, nil
}

func (s *Store) UpdateSchool(_ context.Context, id string, patch entity.SchoolPatch) (*entity.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	school, ok := s.schools[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if patch.Name != nil {
		school.Name = *patch.Name
	}
	if patch.Address != nil {
		school.Address = *patch.Address
	}
	if patch.Phone != nil {
		school.Phone = *patch.Phone
	}
	if patch.Email != nil {
		school.Email = *patch.Email
	}
	if patch.Website != nil {
		school.Website = *patch.Website
	}
	if patch.EstablishedDate != nil {
		school.EstablishedDate = *patch.EstablishedDate
	}
	if patch.AdminID != nil {
		school.AdminID = *patch.AdminID
	}
	s.schools[id] = school
	return &school, nil
}

func (s *Store) DeleteSchool(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schools[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.schools, id)
	return nil
}

// Users

func (s *Store) InsertUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *Store) CountUsersBySchool(_ context.Context, schoolID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, user := range s.users {
		if user.SchoolID == schoolID {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.SchoolID != nil {
		user.SchoolID = *patch.SchoolID
	}
	s.users[id] = user
	return &user, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// Classrooms

func (s *Store) InsertClassroom(_ context.Context, classroom *entity.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classrooms[classroom.ID] = *classroom
	return nil
}

func (s *Store) GetClassroomByID(_ context.Context, id string) (*entity.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classroom, ok := s.classrooms[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &classroom, nil
}

func (s *Store) ListClassrooms(_ context.Context) ([]entity.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterClassrooms(func(entity.Classroom) bool { return true }), nil
}

func (s *Store) ListClassroomsBySchool(_ context.Context, schoolID string) ([]entity.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterClassrooms(func(c entity.Classroom) bool { return c.SchoolID == schoolID }), nil
}

func (s *Store) filterClassrooms(keep func(entity.Classroom) bool) []entity.Classroom {
	classrooms := make([]entity.Classroom, 0)
	for _, classroom := range s.classrooms {
		if keep(classroom) {
			classrooms = append(classrooms, classroom)
		}
	}
	sort.Slice(classrooms, func(i, j int) bool { return classrooms[i].Name < classrooms[j].Name })
	return classrooms
}

func (s *Store) CountClassroomsBySchool(_ context.Context, schoolID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, classroom := range s.classrooms {
		if classroom.SchoolID == schoolID {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdateClassroom(_ context.Context, id string, patch entity.ClassroomPatch) (*entity.Classroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	classroom, ok := s.classrooms[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if patch.Name != nil {
		classroom.Name = *patch.Name
	}
	if patch.SchoolID != nil {
		classroom.SchoolID = *patch.SchoolID
	}
	if patch.Capacity != nil {
		classroom.Capacity = *patch.Capacity
	}
	if patch.Resources != nil {
		classroom.Resources = append([]string(nil), (*patch.Resources)...)
	}
	s.classrooms[id] = classroom
	return &classroom, nil
}

func (s *Store) DeleteClassroom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classrooms[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.classrooms, id)
	return nil
}

// Students

func (s *Store) InsertStudent(_ context.Context, student *entity.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[student.ID] = *student
	return nil
}

func (s *Store) GetStudentByID(_ context.Context, id string) (*entity.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &student, nil
}

func (s *Store) ListStudents(_ context.Context) ([]entity.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterStudents(func(entity.Student) bool { return true }), nil
}

func (s *Store) ListStudentsByClassroom(_ context.Context, classroomID string) ([]entity.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterStudents(func(st entity.Student) bool { return st.ClassroomID == classroomID }), nil
}

func (s *Store) filterStudents(keep func(entity.Student) bool) []entity.Student {
	students := make([]entity.Student, 0)
	for _, student := range s.students {
		if keep(student) {
			students = append(students, student)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students
}

func (s *Store) CountStudentsByClassroom(_ context.Context, classroomID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, student := range s.students {
		if student.ClassroomID == classroomID {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdateStudent(_ context.Context, id string, patch entity.StudentPatch) (*entity.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.students[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Email != nil {
		student.Email = *patch.Email
	}
	if patch.Address != nil {
		student.Address = *patch.Address
	}
	if patch.Age != nil {
		student.Age = *patch.Age
	}
	if patch.ClassroomID != nil {
		student.ClassroomID = *patch.ClassroomID
	}
	s.students[id] = student
	return &student, nil
}

func (s *Store) DeleteStudent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.students, id)
	return nil
}

// Tokens

func (s *Store) InsertToken(_ context.Context, token entity.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = token
	return nil
}

func (s *Store) GetToken(_ context.Context, token string) (*entity.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.tokens[token]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &stored, nil
}

func (s *Store) DeleteToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
