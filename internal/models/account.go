package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleDoctor
}

// MaxWatchHistory bounds the number of video IDs kept per account.
const MaxWatchHistory = 50

// Account is the shared shape of users and doctors. Only the profile that
// matches Role is populated; the other one is left zero and omitted on write.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone" json:"phone"`
	Role         Role               `bson:"role" json:"role"`
	WatchHistory []string           `bson:"watch_history" json:"watch_history"`

	UserProfile   `bson:",inline"`
	DoctorProfile `bson:",inline"`
}

type UserProfile struct {
	DeliveryStatus string `bson:"deliveryStatus,omitempty" json:"deliveryStatus,omitempty"` // "postpartum", "preconception", "pregnancy"
}

type DoctorProfile struct {
	MedicalID       string `bson:"medicalID,omitempty" json:"medicalID,omitempty"`
	WorkExperience  string `bson:"workExperience,omitempty" json:"workExperience,omitempty"`
	ClinicName      string `bson:"clinicName,omitempty" json:"clinicName,omitempty"`
	MotherhoodStage string `bson:"motherhoodStage,omitempty" json:"motherhoodStage,omitempty"`
}
