package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postingDateLayout renders dates like "January 5, 2024"
const postingDateLayout = "January 2, 2006"

// FileInfo describes an uploaded object in external storage
type FileInfo struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
}

// User represents a registered user. It doubles as the public profile:
// the password hash is never serialized.
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id"`
	FirstName    string               `json:"firstName" bson:"firstName"`
	LastName     string               `json:"lastName" bson:"lastName"`
	Email        string               `json:"email" bson:"email"`
	PasswordHash string               `json:"-" bson:"passwordHash"`
	Photo        *FileInfo            `json:"photo,omitempty" bson:"photo,omitempty"`
	Jobs         []primitive.ObjectID `json:"jobs" bson:"jobs"`
	Friends      []primitive.ObjectID `json:"friends" bson:"friends"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasFriend reports whether id is in the user's friend list
func (u *User) HasFriend(id primitive.ObjectID) bool {
	return containsID(u.Friends, id)
}

// JobPost represents a job offer published by a user
type JobPost struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id"`
	JobTitle        string               `json:"jobTitle" bson:"jobTitle"`
	CompanyName     string               `json:"companyName" bson:"companyName"`
	MinimumSalary   float64              `json:"minimumSalary" bson:"minimumSalary"`
	MaximumSalary   float64              `json:"maximumSalary" bson:"maximumSalary"`
	SalaryType      string               `json:"salaryType" bson:"salaryType"`
	JobLocation     string               `json:"jobLocation" bson:"jobLocation"`
	CompanyAddress  string               `json:"companyAddress,omitempty" bson:"companyAddress,omitempty"`
	JobPostingDate  time.Time            `json:"jobPostingDate" bson:"jobPostingDate"`
	ExperienceLevel string               `json:"experienceLevel" bson:"experienceLevel"`
	EmploymentType  string               `json:"employmentType" bson:"employmentType"`
	JobDescription  string               `json:"jobDescription" bson:"jobDescription"`
	CompanyLogo     *FileInfo            `json:"companyLogo,omitempty" bson:"companyLogo,omitempty"`
	PostedBy        string               `json:"postedBy" bson:"postedBy"`
	UserID          primitive.ObjectID   `json:"userId" bson:"userId"`
	Applicants      []primitive.ObjectID `json:"applicants" bson:"applicants"`
}

// HasApplicant reports whether id is in the job post's applicant list
func (j *JobPost) HasApplicant(id primitive.ObjectID) bool {
	return containsID(j.Applicants, id)
}

// Applicant represents an application submitted for a job post
type Applicant struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	CoverLetter string             `json:"coverLetter" bson:"coverLetter"`
	Phone       string             `json:"phone" bson:"phone"`
	Address     string             `json:"address" bson:"address"`
	Position    string             `json:"position" bson:"position"`
	Resume      FileInfo           `json:"resume" bson:"resume"`
	JobPost     primitive.ObjectID `json:"jobPost" bson:"jobPost"`
}

// ListedJobPost is a job post with its posting date rendered for display
type ListedJobPost struct {
	JobPost
	JobPostingDate string `json:"jobPostingDate"`
}

// NewListedJobPost renders the posting date of j
func NewListedJobPost(j *JobPost) ListedJobPost {
	return ListedJobPost{
		JobPost:        *j,
		JobPostingDate: FormatPostingDate(j.JobPostingDate),
	}
}

// FormatPostingDate renders t as a long-form en-US date
func FormatPostingDate(t time.Time) string {
	return t.UTC().Format(postingDateLayout)
}

// OwnedJobPost is a job post with its owner resolved
type OwnedJobPost struct {
	JobPost
	UserID *User `json:"userId"`
}

// PopulatedJobPost is a job post with its applicants resolved
type PopulatedJobPost struct {
	JobPost
	Applicants []*Applicant `json:"applicants"`
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// RemoveID returns ids without any occurrence of id
func RemoveID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
