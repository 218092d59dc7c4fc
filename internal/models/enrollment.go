package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const StatusEnrolled = "Enrolled"

type Enrollment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentName string             `bson:"name" json:"name"`
	Program     string             `bson:"program" json:"program"`
	Subjects    []string           `bson:"subjects" json:"subjects"`
	TimeSlot    string             `bson:"time" json:"time"`
	Status      string             `bson:"enrollmentStatus" json:"enrollmentStatus"`
	OwnerID     primitive.ObjectID `bson:"userId" json:"userId"`
}
