package repository

import (
	"context"

	"SchoolDesk/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) InsertStudent(ctx context.Context, student *entity.Student) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	_, err = m.collection(connection, studentsCollection).InsertOne(ctx, student)
	if err != nil {
		return entity.StorageErr(err)
	}
	return nil
}

func (m *MongoDB) GetStudentByID(ctx context.Context, id string) (*entity.Student, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	var student entity.Student
	err = m.collection(connection, studentsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&student)
	if err != nil {
		return nil, findError(err)
	}
	return &student, nil
}

func (m *MongoDB) ListStudents(ctx context.Context) ([]entity.Student, error) {
	return m.findStudents(ctx, bson.D{})
}

func (m *MongoDB) ListStudentsByClassroom(ctx context.Context, classroomID string) ([]entity.Student, error) {
	return m.findStudents(ctx, bson.D{{Key: "classroom_id", Value: classroomID}})
}

func (m *MongoDB) findStudents(ctx context.Context, filter bson.D) ([]entity.Student, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.collection(connection, studentsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer cursor.Close(ctx)

	var students []entity.Student
	if err = cursor.All(ctx, &students); err != nil {
		return nil, entity.StorageErr(err)
	}
	return students, nil
}

func (m *MongoDB) CountStudentsByClassroom(ctx context.Context, classroomID string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	count, err := m.collection(connection, studentsCollection).
		CountDocuments(ctx, bson.D{{Key: "classroom_id", Value: classroomID}})
	if err != nil {
		return 0, entity.StorageErr(err)
	}
	return count, nil
}

func (m *MongoDB) UpdateStudent(ctx context.Context, id string, patch entity.StudentPatch) (*entity.Student, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Address != nil {
		set = append(set, bson.E{Key: "address", Value: *patch.Address})
	}
	if patch.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *patch.Age})
	}
	if patch.ClassroomID != nil {
		set = append(set, bson.E{Key: "classroom_id", Value: *patch.ClassroomID})
	}

	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var student entity.Student
	err = m.collection(connection, studentsCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(&student)
	if err != nil {
		return nil, findError(err)
	}
	return &student, nil
}

func (m *MongoDB) DeleteStudent(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	result, err := m.collection(connection, studentsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return entity.StorageErr(err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
