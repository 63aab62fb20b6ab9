package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultAbout          = "Default about me"
	DefaultProfilePicture = "https://www.mauicardiovascularsymposium.com/wp-content/uploads/2019/08/dummy-profile-pic-300x300.png"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type User struct {
	ID             string    `json:"id" bson:"_id" gorm:"primaryKey;size:24"`
	FirstName      string    `json:"firstName" bson:"firstName" gorm:"size:20;not null"`
	LastName       string    `json:"lastName,omitempty" bson:"lastName,omitempty" gorm:"size:20"`
	Email          string    `json:"email" bson:"email" gorm:"uniqueIndex;not null"`
	Password       string    `json:"-" bson:"password" gorm:"not null"`
	Age            int       `json:"age,omitempty" bson:"age,omitempty"`
	Gender         Gender    `json:"gender,omitempty" bson:"gender,omitempty" gorm:"size:10"`
	About          string    `json:"about" bson:"about"`
	ProfilePicture string    `json:"profilePicture" bson:"profilePicture"`
	Skills         []string  `json:"skills" bson:"skills" gorm:"serializer:json"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DisplayName joins first and last name, skipping a missing last name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ToDto projects the user onto the fields other users are allowed to see.
func (u User) ToDto() UserDto {
	return UserDto{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Age:            u.Age,
		Gender:         u.Gender,
		ProfilePicture: u.ProfilePicture,
	}
}

type UserDto struct {
	ID             string `json:"id" bson:"_id"`
	FirstName      string `json:"firstName" bson:"firstName"`
	LastName       string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Age            int    `json:"age,omitempty" bson:"age,omitempty"`
	Gender         Gender `json:"gender,omitempty" bson:"gender,omitempty"`
	ProfilePicture string `json:"profilePicture" bson:"profilePicture"`
}

// PublicProjection lists the stored fields backing UserDto.
var PublicProjection = []string{"firstName", "lastName", "age", "gender", "profilePicture"}

type SignupInput struct {
	FirstName      string   `json:"firstName" validate:"required,min=4,max=20"`
	LastName       string   `json:"lastName" validate:"omitempty,min=4,max=20"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,strongpassword"`
	Age            int      `json:"age" validate:"omitempty,min=18"`
	Gender         Gender   `json:"gender" validate:"omitempty,oneof=male female other"`
	About          string   `json:"about"`
	ProfilePicture string   `json:"profilePicture"`
	Skills         []string `json:"skills"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EditableProfileFields is the whitelist accepted by a profile edit.
var EditableProfileFields = []string{"firstName", "lastName", "age", "gender", "about", "profilePicture", "skills"}

// ProfileUpdate holds a partial profile edit; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName      *string   `json:"firstName" validate:"omitnil,min=4,max=20"`
	LastName       *string   `json:"lastName" validate:"omitnil,min=4,max=20"`
	Age            *int      `json:"age" validate:"omitnil,min=18"`
	Gender         *Gender   `json:"gender" validate:"omitnil,oneof=male female other"`
	About          *string   `json:"about"`
	ProfilePicture *string   `json:"profilePicture"`
	Skills         *[]string `json:"skills"`
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Age == nil && p.Gender == nil &&
		p.About == nil && p.ProfilePicture == nil && p.Skills == nil
}

// ApplyTo copies every set field onto u.
func (p ProfileUpdate) ApplyTo(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
	if p.Skills != nil {
		u.Skills = append([]string{}, *p.Skills...)
	}
}

// SetDocument builds the $set document for the fields present in the update.
func (p ProfileUpdate) SetDocument() bson.M {
	set := bson.M{}
	if p.FirstName != nil {
		set["firstName"] = *p.FirstName
	}
	if p.LastName != nil {
		set["lastName"] = *p.LastName
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.Gender != nil {
		set["gender"] = *p.Gender
	}
	if p.About != nil {
		set["about"] = *p.About
	}
	if p.ProfilePicture != nil {
		set["profilePicture"] = *p.ProfilePicture
	}
	if p.Skills != nil {
		set["skills"] = append([]string{}, *p.Skills...)
	}
	return set
}
