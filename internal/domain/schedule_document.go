package domain

import "time"

// ScheduleDocument points at an extracted plan schedule stored in object storage.
// The text behind ObjectKey follows the line grammar accepted by the importer.
type ScheduleDocument struct {
	PlanID      string    `json:"planId"`
	ObjectKey   string    `json:"objectKey"`
	ContentType string    `json:"contentType"`
	UploadURL   string    `json:"uploadUrl,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
