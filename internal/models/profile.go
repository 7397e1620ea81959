package models

import (
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/collection"
)

// SocialPlatforms lists the keys accepted in Profile.Social.
var SocialPlatforms = []string{"youtube", "twitter", "facebook", "linkedin", "instagram"}

type Profile struct {
	ID             string         `json:"id" db:"id"`
	UserID         string         `json:"-" db:"user_id"`
	User           Owner          `json:"user" db:"user"`
	Handle         string         `json:"handle" db:"handle"`
	Company        string         `json:"company,omitempty" db:"company"`
	Website        string         `json:"website,omitempty" db:"website"`
	Location       string         `json:"location,omitempty" db:"location"`
	Bio            string         `json:"bio,omitempty" db:"bio"`
	Status         string         `json:"status" db:"status"`
	GithubUsername string         `json:"githubusername,omitempty" db:"github_username"`
	Skills         pq.StringArray `json:"skills" db:"skills"`
	Social         SocialLinks    `json:"social" db:"social"`
	Experience     Experiences    `json:"experience" db:"experience"`
	Education      Educations     `json:"education" db:"education"`
	CreatedAt      time.Time      `json:"date" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type Experiences []Experience

type Educations []Education

// SocialLinks maps a platform name to a URL.
type SocialLinks map[string]string

func (p *Profile) OwnerID() string { return p.UserID }

// ProfileUpdate carries the fields present in an upsert; nil means untouched.
type ProfileUpdate struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	Social         map[string]string
}

// Apply copies the present fields of u onto p.
func (p *Profile) Apply(u ProfileUpdate) {
	setString(&p.Handle, u.Handle)
	setString(&p.Company, u.Company)
	setString(&p.Website, u.Website)
	setString(&p.Location, u.Location)
	setString(&p.Bio, u.Bio)
	setString(&p.Status, u.Status)
	setString(&p.GithubUsername, u.GithubUsername)

	if u.Skills != nil {
		p.Skills = pq.StringArray(u.Skills)
	}

	if len(u.Social) > 0 {
		if p.Social == nil {
			p.Social = SocialLinks{}
		}
		for platform, link := range u.Social {
			p.Social[platform] = link
		}
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func experienceWithID(id string) func(Experience) bool {
	return func(e Experience) bool { return e.ID == id }
}

func educationWithID(id string) func(Education) bool {
	return func(e Education) bool { return e.ID == id }
}

// AddExperience inserts e at the front, assigning a fresh id.
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = collection.NewID()
	p.Experience = collection.Prepend(p.Experience, e)
	return e
}

func (p *Profile) RemoveExperience(id string) error {
	out, err := collection.RemoveFunc(p.Experience, experienceWithID(id))
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.ErrExperienceNotFound
	}
	p.Experience = out
	return nil
}

// AddEducation inserts e at the front, assigning a fresh id.
func (p *Profile) AddEducation(e Education) Education {
	e.ID = collection.NewID()
	p.Education = collection.Prepend(p.Education, e)
	return e
}

func (p *Profile) RemoveEducation(id string) error {
	out, err := collection.RemoveFunc(p.Education, educationWithID(id))
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.ErrEducationNotFound
	}
	p.Education = out
	return nil
}
