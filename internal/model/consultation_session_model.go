package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConsultationSession is the Postgres document-store row. The id is generated by
// the database.
type ConsultationSession struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind            string                      `gorm:"type:varchar(32);not null;index"`
	LinkedSessionId *string                     `gorm:"type:varchar(64);index"`
	UserName        string                      `gorm:"type:varchar(255)"`
	UserEmail       string                      `gorm:"type:varchar(255);index"`
	CompanySize     string                      `gorm:"type:varchar(64)"`
	Budget          string                      `gorm:"type:varchar(64)"`
	Problem         string                      `gorm:"type:text"`
	Recommendations string                      `gorm:"type:text"`
	ToolNames       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	SelectedTools   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Rating          int                         `gorm:"not null;default:0"`
	UserFeedback    string                      `gorm:"type:text"`
	Status          string                      `gorm:"type:varchar(32);not null"`
	CreatedAt       time.Time                   `gorm:"not null;index"`
	StoredAt        time.Time                   `gorm:"autoCreateTime"`
}

func (ConsultationSession) TableName() string {
	return "consultation_sessions"
}

// ConsultationDocument is the MongoDB shape. Field names follow the payload the
// frontend sends so documents from both entry points line up.
type ConsultationDocument struct {
	Kind            string           `bson:"kind"`
	LinkedSessionId string           `bson:"linked_session_id,omitempty"`
	User            ConsultationUser `bson:"user"`
	Problem         string           `bson:"problem"`
	Recommendations string           `bson:"recommendations"`
	ToolNames       []string         `bson:"tool_names"`
	SelectedTools   []string         `bson:"selected_tools"`
	Rating          int              `bson:"rating"`
	UserFeedback    string           `bson:"user_feedback"`
	Status          string           `bson:"status"`
	CreatedAt       time.Time        `bson:"createdAt"`
}

type ConsultationUser struct {
	Name        string `bson:"name"`
	Email       string `bson:"email"`
	CompanySize string `bson:"company_size"`
	Budget      string `bson:"budget"`
}
