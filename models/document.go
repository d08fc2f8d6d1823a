package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by the pointer type of every stored entity.
type Document interface {
	SetID(primitive.ObjectID)
	GetID() primitive.ObjectID
	CreatedTime() time.Time
	SetCreatedTime(time.Time)
	Touch(now time.Time)
	Validate() error
}

// Sanitizer strips fields that must not leave the server.
type Sanitizer interface {
	Sanitize()
}

// Preparer runs before a document is written.
type Preparer interface {
	BeforeSave() error
}
