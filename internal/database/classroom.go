package repository

import (
	"context"

	"SchoolDesk/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) InsertClassroom(ctx context.Context, classroom *entity.Classroom) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	_, err = m.collection(connection, classroomsCollection).InsertOne(ctx, classroom)
	if err != nil {
		return entity.StorageErr(err)
	}
	return nil
}

func (m *MongoDB) GetClassroomByID(ctx context.Context, id string) (*entity.Classroom, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	var classroom entity.Classroom
	err = m.collection(connection, classroomsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&classroom)
	if err != nil {
		return nil, findError(err)
	}
	return &classroom, nil
}

func (m *MongoDB) ListClassrooms(ctx context.Context) ([]entity.Classroom, error) {
	return m.findClassrooms(ctx, bson.D{})
}

func (m *MongoDB) ListClassroomsBySchool(ctx context.Context, schoolID string) ([]entity.Classroom, error) {
	return m.findClassrooms(ctx, bson.D{{Key: "school_id", Value: schoolID}})
}

func (m *MongoDB) findClassrooms(ctx context.Context, filter bson.D) ([]entity.Classroom, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.collection(connection, classroomsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer cursor.Close(ctx)

	var classrooms []entity.Classroom
	if err = cursor.All(ctx, &classrooms); err != nil {
		return nil, entity.StorageErr(err)
	}
	return classrooms, nil
}

func (m *MongoDB) CountClassroomsBySchool(ctx context.Context, schoolID string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	count, err := m.collection(connection, classroomsCollection).
		CountDocuments(ctx, bson.D{{Key: "school_id", Value: schoolID}})
	if err != nil {
		return 0, entity.StorageErr(err)
	}
	return count, nil
}

func (m *MongoDB) UpdateClassroom(ctx context.Context, id string, patch entity.ClassroomPatch) (*entity.Classroom, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.SchoolID != nil {
		set = append(set, bson.E{Key: "school_id", Value: *patch.SchoolID})
	}
	if patch.Capacity != nil {
		set = append(set, bson.E{Key: "capacity", Value: *patch.Capacity})
	}
	if patch.Resources != nil {
		set = append(set, bson.E{Key: "resources", Value: *patch.Resources})
	}

	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var classroom entity.Classroom
	err = m.collection(connection, classroomsCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(&classroom)
	if err != nil {
		return nil, findError(err)
	}
	return &classroom, nil
}

func (m *MongoDB) DeleteClassroom(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	result, err := m.collection(connection, classroomsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return entity.StorageErr(err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
