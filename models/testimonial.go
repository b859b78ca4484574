package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxTestimonialCommentLength = 500

type Testimonial struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type TestimonialAuthor struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Image     string `bson:"image,omitempty" json:"image,omitempty"`
}

type TestimonialWithAuthor struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Author    TestimonialAuthor  `bson:"author" json:"author"`
}
